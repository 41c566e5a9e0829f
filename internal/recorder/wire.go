package recorder

import (
	"errors"
	"fmt"

	"recwatch/internal/models"
)

// Wire payloads use pointer fields so missing required keys can be told apart
// from zero values.

type tfCardPayload struct {
	MountPath    string `json:"mountPath"`
	TotalSpace   string `json:"totalSpace"`
	UsedSpace    string `json:"usedSpace"`
	FreeSpace    string `json:"freeSpace"`
	UsagePercent string `json:"usagePercent"`
}

type statusPayload struct {
	Recording1 *bool          `json:"recording1"`
	Recording2 *bool          `json:"recording2"`
	TFCard     *tfCardPayload `json:"tfcard"`
}

func (p statusPayload) toModel() (*models.RemoteStatus, error) {
	if p.Recording1 == nil || p.Recording2 == nil {
		return nil, errors.New("missing recording1/recording2")
	}

	status := &models.RemoteStatus{
		Channel1Active: *p.Recording1,
		Channel2Active: *p.Recording2,
	}
	if p.TFCard != nil {
		status.Storage = models.StorageInfo{
			MountPath:    p.TFCard.MountPath,
			TotalSpace:   p.TFCard.TotalSpace,
			UsedSpace:    p.TFCard.UsedSpace,
			FreeSpace:    p.TFCard.FreeSpace,
			UsagePercent: p.TFCard.UsagePercent,
		}
	}
	return status, nil
}

type filePayload struct {
	Name         string `json:"name"`
	Channel      string `json:"channel"`
	SizeStr      string `json:"sizeStr"`
	Size         *int64 `json:"size"`
	TimeStr      string `json:"timeStr"`
	ModifyTime   *int64 `json:"modifyTime"`
	IsRecording  *bool  `json:"isRecording"`
	FullPath     string `json:"fullPath"`
	RelativePath string `json:"relativePath"`
}

func (p filePayload) toModel() (models.FileRecord, error) {
	if p.Name == "" {
		return models.FileRecord{}, errors.New("file entry without name")
	}
	if p.ModifyTime == nil {
		return models.FileRecord{}, fmt.Errorf("file %q: missing modifyTime", p.Name)
	}
	if p.IsRecording == nil {
		return models.FileRecord{}, fmt.Errorf("file %q: missing isRecording", p.Name)
	}
	channel, err := models.ParseChannel(p.Channel)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("file %q: %w", p.Name, err)
	}

	record := models.FileRecord{
		Name:               p.Name,
		Channel:            channel,
		SizeDisplay:        p.SizeStr,
		TimeDisplay:        p.TimeStr,
		ModifyEpochSeconds: *p.ModifyTime,
		IsRecording:        *p.IsRecording,
		FullPath:           p.FullPath,
		RelativePath:       p.RelativePath,
	}
	if p.Size != nil {
		record.SizeBytes = *p.Size
	}
	return record, nil
}

type filesPayload struct {
	Success *bool          `json:"success"`
	Message string         `json:"message"`
	Files   *[]filePayload `json:"files"`
}

func (p filesPayload) toModel(requireSuccess bool) ([]models.FileRecord, error) {
	if requireSuccess && (p.Success == nil || !*p.Success) {
		if p.Message != "" {
			return nil, fmt.Errorf("success=false: %s", p.Message)
		}
		return nil, errors.New("success flag missing or false")
	}
	if p.Files == nil {
		return nil, errors.New("missing files array")
	}

	records := make([]models.FileRecord, 0, len(*p.Files))
	for _, f := range *p.Files {
		record, err := f.toModel()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

type commandPayload struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

type systemPayload struct {
	Success     *bool    `json:"success"`
	Message     string   `json:"message"`
	CPUUsage    *float64 `json:"cpu_usage"`
	MemoryUsage *float64 `json:"memory_usage"`
	DiskUsage   *float64 `json:"disk_usage"`
	NetworkRx   int64    `json:"network_rx"`
	NetworkTx   int64    `json:"network_tx"`
	LoadAverage float64  `json:"load_average"`
	Uptime      string   `json:"uptime"`
	Temperature float64  `json:"temperature"`
}

func (p systemPayload) toModel() (*models.SystemMetrics, error) {
	if p.Success == nil {
		return nil, errors.New("missing success flag")
	}
	if !*p.Success {
		return nil, fmt.Errorf("success=false: %s", p.Message)
	}
	if p.CPUUsage == nil || p.MemoryUsage == nil || p.DiskUsage == nil {
		return nil, errors.New("missing cpu/memory/disk usage")
	}
	return &models.SystemMetrics{
		CPUUsage:    *p.CPUUsage,
		MemoryUsage: *p.MemoryUsage,
		DiskUsage:   *p.DiskUsage,
		NetworkRx:   p.NetworkRx,
		NetworkTx:   p.NetworkTx,
		LoadAverage: p.LoadAverage,
		Uptime:      p.Uptime,
		Temperature: p.Temperature,
	}, nil
}

type deleteFileRequest struct {
	FilePath string `json:"filePath"`
}

type uploadRequest struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}
