package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Channel identifies one of the two recording inputs.
type Channel string

const (
	ChannelA Channel = "videos1"
	ChannelB Channel = "videos2"
)

// ParseChannel maps the wire channel name to a Channel.
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelA, ChannelB:
		return Channel(s), nil
	default:
		return "", fmt.Errorf("unknown channel %q", s)
	}
}

// Label returns the operator-facing channel name.
func (c Channel) Label() string {
	switch c {
	case ChannelA:
		return "channel 1"
	case ChannelB:
		return "channel 2"
	default:
		return string(c)
	}
}

// FileRecord is one recording segment on the service's storage.
type FileRecord struct {
	Name               string  `json:"name"`
	Channel            Channel `json:"channel"`
	SizeBytes          int64   `json:"size_bytes"`
	SizeDisplay        string  `json:"size_display"`
	TimeDisplay        string  `json:"time_display"`
	ModifyEpochSeconds int64   `json:"modify_epoch_seconds"`
	IsRecording        bool    `json:"is_recording"`
	FullPath           string  `json:"full_path"`
	RelativePath       string  `json:"relative_path"`
}

// ModifyTime returns the modification time as a time.Time.
func (f FileRecord) ModifyTime() time.Time {
	return time.Unix(f.ModifyEpochSeconds, 0)
}

// SortNewestFirst orders files by modification time, newest first. The sort is
// stable so equal timestamps keep the service order.
func SortNewestFirst(files []FileRecord) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModifyEpochSeconds > files[j].ModifyEpochSeconds
	})
}

// TotalSize sums SizeBytes over files.
func TotalSize(files []FileRecord) int64 {
	var total int64
	for _, f := range files {
		total += f.SizeBytes
	}
	return total
}

// FileFilter narrows an inventory the way the file management and preview
// pages do. Dates are inclusive YYYY-MM-DD bounds on the modify date.
type FileFilter struct {
	Channel   Channel `json:"channel,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
	Search    string  `json:"search,omitempty"`
}

// IsZero reports whether the filter lets every file through.
func (f FileFilter) IsZero() bool {
	return f == FileFilter{}
}

// Apply returns the files matching the filter, preserving order.
func (f FileFilter) Apply(files []FileRecord, loc *time.Location) []FileRecord {
	if loc == nil {
		loc = time.Local
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]FileRecord, 0, len(files))
	for _, file := range files {
		if f.Channel != "" && file.Channel != f.Channel {
			continue
		}
		day := file.ModifyTime().In(loc).Format("2006-01-02")
		if f.StartDate != "" && day < f.StartDate {
			continue
		}
		if f.EndDate != "" && day > f.EndDate {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(file.Name), search) {
			continue
		}
		out = append(out, file)
	}
	return out
}
