package interfaces

import (
	"context"
	"time"

	"recwatch/internal/models"
)

// LogStore persists the operator log
type LogStore interface {
	AddLogEntry(entry *models.LogEntry) error
	GetLogEntries(filter models.LogFilter) ([]*models.LogEntry, error)
}

// DownloadRepository provides database access for download history
type DownloadRepository interface {
	CreateDownload(d *models.Download) error
	UpdateDownload(d *models.Download) error
	GetDownload(id string) (*models.Download, error)
	GetDownloads(filter models.DownloadFilter) ([]*models.Download, error)
}

// DownloadGate decides whether a recording may be copied to local disk
type DownloadGate interface {
	CanDownload(sizeBytes int64) GateDecision
	GetResourceStatus() DiskStatus
}

// GateDecision represents whether an operation can proceed
type GateDecision struct {
	Allowed bool                   `json:"allowed"`
	Reason  string                 `json:"reason"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// DiskStatus describes the download volume
type DiskStatus struct {
	Path         string  `json:"path"`
	FreeBytes    int64   `json:"free_bytes"`
	TotalBytes   int64   `json:"total_bytes"`
	UsagePercent float64 `json:"usage_percent"`
	MaxPercent   int     `json:"max_percent"`
	MinFreeBytes int64   `json:"min_free_bytes"`
}

// Archiver uploads a local recording to long-term storage and returns its key
type Archiver interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}

// Notifier sends operator notifications
type Notifier interface {
	IsEnabled() bool
	NotifyConnectionLost(reason string) error
	NotifyConnectionRestored(offlineSince time.Time) error
	NotifyRecordingStarted(state models.RecordingState) error
	NotifyRecordingStopped(elapsed string) error
	NotifyStorageUnavailable(storage models.StorageInfo) error
	NotifyDownloadFailed(d *models.Download) error
}
