package gatekeeper

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"recwatch/internal/config"
	"recwatch/internal/interfaces"
)

// Gatekeeper decides whether a recording can be downloaded to the local
// volume without filling it.
type Gatekeeper struct {
	config *config.Config
	statfs func(path string, stat *unix.Statfs_t) error
}

func New(cfg *config.Config) *Gatekeeper {
	return &Gatekeeper{
		config: cfg,
		statfs: unix.Statfs,
	}
}

// CanDownload checks whether sizeBytes more data fits on the download volume.
// An unknown size (zero) only checks the current usage.
func (g *Gatekeeper) CanDownload(sizeBytes int64) interfaces.GateDecision {
	cfg := g.config.GetDownloads()

	minFree, err := parseSize(cfg.MinFreeSpace)
	if err != nil {
		slog.Error("invalid min_free_space", "value", cfg.MinFreeSpace, "error", err)
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  "Invalid minimum free space setting",
		}
	}

	stat, err := g.diskStats(cfg.LocalPath)
	if err != nil {
		slog.Error("failed to check download disk stats", "error", err)
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  "Unable to verify disk space",
		}
	}

	availableBytes := int64(stat.Bavail * uint64(stat.Bsize))
	totalBytes := int64(stat.Blocks * uint64(stat.Bsize))

	// Rule 1: Check current usage
	maxPercent := float64(cfg.MaxUsagePercent)
	usagePercent := usage(totalBytes, availableBytes)
	if usagePercent >= maxPercent {
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  "Download disk usage too high",
			Details: map[string]interface{}{
				"current_percent": usagePercent,
				"max_percent":     maxPercent,
			},
		}
	}

	if sizeBytes <= 0 {
		return interfaces.GateDecision{
			Allowed: true,
			Reason:  "All checks passed",
		}
	}

	// Rule 2: Keep the minimum free space after the download
	if availableBytes-sizeBytes < minFree {
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  "Not enough free space for recording",
			Details: map[string]interface{}{
				"file_size":      humanize.IBytes(uint64(sizeBytes)),
				"available":      humanize.IBytes(uint64(availableBytes)),
				"min_free_space": humanize.IBytes(uint64(minFree)),
			},
		}
	}

	// Rule 3: Check projected usage
	projectedUsagePercent := float64(totalBytes-availableBytes+sizeBytes) / float64(totalBytes) * 100
	if projectedUsagePercent > maxPercent {
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  "File size would exceed disk limit",
			Details: map[string]interface{}{
				"file_size_bytes":         sizeBytes,
				"available_bytes":         availableBytes,
				"projected_usage_percent": projectedUsagePercent,
				"max_percent":             maxPercent,
			},
		}
	}

	return interfaces.GateDecision{
		Allowed: true,
		Reason:  "All checks passed",
	}
}

// GetResourceStatus returns the current state of the download volume
func (g *Gatekeeper) GetResourceStatus() interfaces.DiskStatus {
	cfg := g.config.GetDownloads()

	status := interfaces.DiskStatus{
		Path:       cfg.LocalPath,
		MaxPercent: cfg.MaxUsagePercent,
	}
	if minFree, err := parseSize(cfg.MinFreeSpace); err == nil {
		status.MinFreeBytes = minFree
	}

	if stat, err := g.diskStats(cfg.LocalPath); err == nil {
		status.FreeBytes = int64(stat.Bavail * uint64(stat.Bsize))
		status.TotalBytes = int64(stat.Blocks * uint64(stat.Bsize))
		status.UsagePercent = usage(status.TotalBytes, status.FreeBytes)
	}

	return status
}

func (g *Gatekeeper) diskStats(path string) (*unix.Statfs_t, error) {
	var stat unix.Statfs_t
	if err := g.statfs(path, &stat); err != nil {
		return nil, fmt.Errorf("failed to stat download disk: %w", err)
	}
	if stat.Blocks == 0 {
		return nil, fmt.Errorf("download disk %s reports zero size", path)
	}
	return &stat, nil
}

func usage(totalBytes, availableBytes int64) float64 {
	if totalBytes <= 0 {
		return 0
	}
	return float64(totalBytes-availableBytes) / float64(totalBytes) * 100
}

// parseSize accepts sizes like "500MB", "10GB" or "1 TiB".
func parseSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}
