package models

import (
	"errors"
	"strings"
	"time"
)

// RemoteStatus is one aggregate status snapshot reported by the recording service.
type RemoteStatus struct {
	Channel1Active bool        `json:"channel1_active"`
	Channel2Active bool        `json:"channel2_active"`
	Storage        StorageInfo `json:"storage"`
	ReceivedAt     time.Time   `json:"received_at"`
}

// StorageInfo mirrors the TF card block of /api/status. Sizes are kept as the
// human-readable strings the service produces.
type StorageInfo struct {
	MountPath    string `json:"mount_path"`
	TotalSpace   string `json:"total_space"`
	UsedSpace    string `json:"used_space"`
	FreeSpace    string `json:"free_space"`
	UsagePercent string `json:"usage_percent"`
}

// Available reports whether the card still has usable free space.
func (s StorageInfo) Available() bool {
	return s.FreeSpace != "" && !strings.HasPrefix(s.FreeSpace, "0")
}

// AnyActive reports whether at least one channel is recording.
func (s RemoteStatus) AnyActive() bool {
	return s.Channel1Active || s.Channel2Active
}

// SystemMetrics is the payload of /api/system-monitor.
type SystemMetrics struct {
	CPUUsage    float64   `json:"cpu_usage"`
	MemoryUsage float64   `json:"memory_usage"`
	DiskUsage   float64   `json:"disk_usage"`
	NetworkRx   int64     `json:"network_rx"`
	NetworkTx   int64     `json:"network_tx"`
	LoadAverage float64   `json:"load_average"`
	Uptime      string    `json:"uptime"`
	Temperature float64   `json:"temperature"`
	ReceivedAt  time.Time `json:"received_at"`
}

// RecorderConfig is the remote recorder configuration exchanged with /api/config.
type RecorderConfig struct {
	RTSPURL1          string `json:"rtsp_url1"`
	RTSPURL2          string `json:"rtsp_url2"`
	SavePath1         string `json:"save_path1"`
	SavePath2         string `json:"save_path2"`
	SegmentTime       int    `json:"segment_time"`
	DualStreamEnabled bool   `json:"dual_stream_enabled"`
}

// DefaultRecorderConfig returns the values the recording service falls back to.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		RTSPURL1:          "rtsp://192.168.1.63:554/media/video1",
		RTSPURL2:          "rtsp://192.168.1.63:554/media/video2",
		SavePath1:         "/mnt/tfcard/videos1",
		SavePath2:         "/mnt/tfcard/videos2",
		SegmentTime:       600,
		DualStreamEnabled: true,
	}
}

const (
	MinSegmentTime = 60
	MaxSegmentTime = 3600
)

// Validate checks the fields the recording service cannot run without.
func (c RecorderConfig) Validate() error {
	if strings.TrimSpace(c.RTSPURL1) == "" {
		return errors.New("rtsp_url1 is required")
	}
	if c.SegmentTime < MinSegmentTime || c.SegmentTime > MaxSegmentTime {
		return errors.New("segment_time must be between 60 and 3600 seconds")
	}
	return nil
}

// CommandResult is the {success, message} envelope returned by mutating endpoints.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
