package state

import (
	"time"

	"recwatch/internal/models"
	"recwatch/internal/recorder"
)

// Health tracks connectivity to the recording service. Every status poll
// flips it immediately: one failure is enough to go offline and one success
// is enough to come back.
type Health struct {
	status models.ConnectionStatus
}

// NewHealth starts offline until the first poll succeeds.
func NewHealth(now time.Time) *Health {
	return &Health{status: models.ConnectionStatus{Online: false, Since: now}}
}

// Succeed records a successful poll and reports whether the state changed.
func (h *Health) Succeed(at time.Time) bool {
	changed := !h.status.Online
	h.status.LastError = ""
	if changed {
		h.status.Online = true
		h.status.Since = at
	}
	return changed
}

// Fail records a failed poll and reports whether the state changed.
func (h *Health) Fail(err error, at time.Time) bool {
	changed := h.status.Online
	h.status.LastError = recorder.Describe(err)
	if changed {
		h.status.Online = false
		h.status.Since = at
	}
	return changed
}

// Status returns the current connection status.
func (h *Health) Status() models.ConnectionStatus {
	return h.status
}
