package models

import "time"

type DownloadStatus string

const (
	DownloadStatusPending   DownloadStatus = "pending"
	DownloadStatusCompleted DownloadStatus = "completed"
	DownloadStatusArchived  DownloadStatus = "archived"
	DownloadStatusFailed    DownloadStatus = "failed"
)

// Download records one recording copied from the recorder to local disk.
type Download struct {
	ID           string         `json:"id" db:"id"`
	RelativePath string         `json:"relative_path" db:"relative_path"`
	LocalPath    string         `json:"local_path" db:"local_path"`
	SizeBytes    int64          `json:"size_bytes" db:"size_bytes"`
	Status       DownloadStatus `json:"status" db:"status"`
	ArchiveKey   string         `json:"archive_key,omitempty" db:"archive_key"`
	ErrorMessage string         `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty" db:"completed_at"`
}

// IsTerminal reports whether the download will not change again.
func (d *Download) IsTerminal() bool {
	return d.Status == DownloadStatusCompleted || d.Status == DownloadStatusArchived || d.Status == DownloadStatusFailed
}

// DownloadFilter narrows download history queries.
type DownloadFilter struct {
	Status []DownloadStatus `json:"status,omitempty"`
	Limit  int              `json:"limit,omitempty"`
}
