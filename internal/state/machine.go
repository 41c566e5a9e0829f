package state

import (
	"recwatch/internal/models"
)

// Transition describes the effect of applying one status report.
type Transition struct {
	From models.RecordingMode
	To   models.RecordingMode
}

// Changed reports whether the mode moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Started reports a move from idle into any recording mode.
func (t Transition) Started() bool {
	return t.From == models.RecordingModeNone && t.To != models.RecordingModeNone
}

// Stopped reports a move from any recording mode back to idle.
func (t Transition) Stopped() bool {
	return t.From != models.RecordingModeNone && t.To == models.RecordingModeNone
}

// Machine derives the recording mode from status reports. It is not safe for
// concurrent use; the console only touches it from the scheduler loop.
type Machine struct {
	current models.RecordingState
}

func NewMachine() *Machine {
	return &Machine{current: models.RecordingState{Mode: models.RecordingModeNone}}
}

// ModeFor maps the per-channel flags to a recording mode.
func ModeFor(channel1, channel2 bool) models.RecordingMode {
	switch {
	case channel1 && channel2:
		return models.RecordingModeDual
	case channel1 || channel2:
		return models.RecordingModeSingle
	default:
		return models.RecordingModeNone
	}
}

// Apply folds a successful status report into the machine.
func (m *Machine) Apply(status models.RemoteStatus) Transition {
	from := m.current.Mode
	m.current = models.RecordingState{
		Mode:     ModeFor(status.Channel1Active, status.Channel2Active),
		Channel1: status.Channel1Active,
		Channel2: status.Channel2Active,
	}
	return Transition{From: from, To: m.current.Mode}
}

// State returns the current derived state.
func (m *Machine) State() models.RecordingState {
	return m.current
}
