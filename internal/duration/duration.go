package duration

import (
	"fmt"
	"regexp"
	"time"

	"recwatch/internal/models"
)

const (
	startLayout = "2006-01-02_15-04-05"

	// RecentWriteWindow is how fresh a file's mtime must be for the fallback
	// estimate to treat it as still being written.
	RecentWriteWindow = 5 * time.Second
)

var startPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})_(\d{2}-\d{2}-\d{2})`)

// ParseStart extracts the segment start time embedded in a recording file
// name such as "2025-06-23_15-23-16.mp4".
func ParseStart(name string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	m := startPattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(startLayout, m[1]+"_"+m[2], loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Estimate infers how long the current segment has been recording from the
// file listing of the active channels. It never fails: anything it cannot
// work out is reported as unknown.
func Estimate(now time.Time, files []models.FileRecord, loc *time.Location) models.DurationEstimate {
	latest, ok := latestRecording(files)
	if !ok {
		return models.UnknownDuration
	}

	if start, ok := ParseStart(latest.Name, loc); ok {
		if elapsed := now.Sub(start); elapsed > 0 {
			return models.DurationEstimate{Elapsed: elapsed, Known: true}
		}
	}

	// mtime fallback: only a file written within the window counts as live
	if now.Sub(latest.ModifyTime()) < RecentWriteWindow {
		if start, ok := ParseStart(latest.Name, loc); ok {
			if elapsed := now.Sub(start); elapsed > 0 {
				return models.DurationEstimate{Elapsed: elapsed, Known: true}
			}
		}
	}

	return models.UnknownDuration
}

// latestRecording picks the recording file with the newest mtime. The first
// one encountered wins ties.
func latestRecording(files []models.FileRecord) (models.FileRecord, bool) {
	var (
		latest models.FileRecord
		found  bool
	)
	for _, f := range files {
		if !f.IsRecording {
			continue
		}
		if !found || f.ModifyEpochSeconds > latest.ModifyEpochSeconds {
			latest = f
			found = true
		}
	}
	return latest, found
}

// Format renders an estimate as HH:MM:SS. Hours are not wrapped at 24.
func Format(d models.DurationEstimate) string {
	if !d.Known || d.Elapsed <= 0 {
		return "00:00:00"
	}
	total := int64(d.Elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
