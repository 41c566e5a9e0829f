package models

import "time"

type RecordingMode string

const (
	RecordingModeNone   RecordingMode = "not_recording"
	RecordingModeSingle RecordingMode = "single_channel"
	RecordingModeDual   RecordingMode = "dual_channel"
)

// RecordingState is derived solely from the latest applied RemoteStatus.
type RecordingState struct {
	Mode     RecordingMode `json:"mode"`
	Channel1 bool          `json:"channel1"`
	Channel2 bool          `json:"channel2"`
}

// IsRecording reports whether any channel is recording.
func (s RecordingState) IsRecording() bool {
	return s.Mode == RecordingModeSingle || s.Mode == RecordingModeDual
}

// ActiveChannels lists the channels currently recording.
func (s RecordingState) ActiveChannels() []Channel {
	var channels []Channel
	if s.Channel1 {
		channels = append(channels, ChannelA)
	}
	if s.Channel2 {
		channels = append(channels, ChannelB)
	}
	return channels
}

// OnActiveChannels keeps the files that belong to a recording channel.
func (s RecordingState) OnActiveChannels(files []FileRecord) []FileRecord {
	out := make([]FileRecord, 0, len(files))
	for _, f := range files {
		if (f.Channel == ChannelA && s.Channel1) || (f.Channel == ChannelB && s.Channel2) {
			out = append(out, f)
		}
	}
	return out
}

// ConnectionStatus reflects the outcome of the most recent status poll.
type ConnectionStatus struct {
	Online    bool      `json:"online"`
	LastError string    `json:"last_error,omitempty"`
	Since     time.Time `json:"since"`
}

// DurationEstimate is a best-effort elapsed recording time. Known is false
// when no estimate could be made; it is then displayed as zero.
type DurationEstimate struct {
	Elapsed time.Duration `json:"elapsed"`
	Known   bool          `json:"known"`
}

// UnknownDuration is the zero estimate.
var UnknownDuration = DurationEstimate{}

// View is the console page an operator is looking at.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewRecording View = "recording"
	ViewFiles     View = "files"
	ViewUpload    View = "upload"
	ViewPreview   View = "preview"
	ViewMonitor   View = "monitor"
	ViewConfig    View = "config"
)

// ParseView validates a view name.
func ParseView(s string) (View, bool) {
	switch v := View(s); v {
	case ViewDashboard, ViewRecording, ViewFiles, ViewUpload, ViewPreview, ViewMonitor, ViewConfig:
		return v, true
	}
	return "", false
}

type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelSuccess LogLevel = "success"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// LogEntry is one operator-visible log line.
type LogEntry struct {
	ID        string    `json:"id" db:"id"`
	Level     LogLevel  `json:"level" db:"level"`
	Source    string    `json:"source" db:"source"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LogFilter narrows operator log queries.
type LogFilter struct {
	Levels []LogLevel `json:"levels,omitempty"`
	Limit  int        `json:"limit,omitempty"`
}

// Snapshot is the immutable derived view handed to presenters.
type Snapshot struct {
	Connection       ConnectionStatus `json:"connection"`
	Recording        RecordingState   `json:"recording"`
	Status           *RemoteStatus    `json:"status,omitempty"`
	StorageAvailable bool             `json:"storage_available"`
	Files            []FileRecord     `json:"files"`
	ActiveFileCount  int              `json:"active_file_count"`
	TotalFileCount   int              `json:"total_file_count"`
	TotalSizeBytes   int64            `json:"total_size_bytes"`
	Duration         DurationEstimate `json:"duration"`
	DurationDisplay  string           `json:"duration_display"`
	View             View             `json:"view"`
	Filter           FileFilter       `json:"filter"`
	System           *SystemMetrics   `json:"system,omitempty"`
	InventoryAt      time.Time        `json:"inventory_at,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// RecentFiles returns at most n of the newest files in the snapshot.
func (s *Snapshot) RecentFiles(n int) []FileRecord {
	if n > len(s.Files) {
		n = len(s.Files)
	}
	out := make([]FileRecord, n)
	copy(out, s.Files[:n])
	return out
}
