package testutil

import (
	"fmt"
	"time"

	"recwatch/internal/models"
)

// CreateTestFile creates a recording segment named after its start time.
func CreateTestFile(channel models.Channel, start time.Time, overrides ...func(*models.FileRecord)) models.FileRecord {
	name := start.Format("2006-01-02_15-04-05") + ".mp4"
	file := models.FileRecord{
		Name:               name,
		Channel:            channel,
		SizeBytes:          10 * 1024 * 1024,
		SizeDisplay:        "10.0 MB",
		TimeDisplay:        start.Format("2006-01-02 15:04:05"),
		ModifyEpochSeconds: start.Unix(),
		FullPath:           fmt.Sprintf("/mnt/tfcard/%s/%s", channel, name),
		RelativePath:       fmt.Sprintf("%s/%s", channel, name),
	}

	for _, override := range overrides {
		override(&file)
	}

	return file
}

// Recording marks a fixture file as still being written, last modified at mtime.
func Recording(mtime time.Time) func(*models.FileRecord) {
	return func(f *models.FileRecord) {
		f.IsRecording = true
		f.ModifyEpochSeconds = mtime.Unix()
	}
}

// CreateTestDownload creates a pending download with default values
func CreateTestDownload(overrides ...func(*models.Download)) *models.Download {
	download := &models.Download{
		RelativePath: "videos1/2025-06-23_15-23-16.mp4",
		LocalPath:    "/downloads/videos1/2025-06-23_15-23-16.mp4",
		SizeBytes:    1024,
		Status:       models.DownloadStatusPending,
	}

	for _, override := range overrides {
		override(download)
	}

	return download
}
