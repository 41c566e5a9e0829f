package downloader

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

const progressInterval = 2 * time.Second

// Progress is a point-in-time view of one transfer.
type Progress struct {
	TransferredBytes int64
	TotalBytes       int64
	Percentage       float64
	BytesPerSecond   int64
	ETA              time.Duration
}

// progressCounter counts bytes as they are written to disk.
type progressCounter struct {
	downloadID string
	file       string
	total      int64
	started    time.Time
	written    atomic.Int64
}

func newProgressCounter(downloadID, file string, total int64, started time.Time) *progressCounter {
	return &progressCounter{downloadID: downloadID, file: file, total: total, started: started}
}

func (p *progressCounter) Write(b []byte) (int, error) {
	p.written.Add(int64(len(b)))
	return len(b), nil
}

// Stats computes progress as of now. Percentage and ETA stay zero while the
// size is unknown.
func (p *progressCounter) Stats(now time.Time) Progress {
	progress := Progress{
		TransferredBytes: p.written.Load(),
		TotalBytes:       p.total,
	}

	if elapsed := now.Sub(p.started); elapsed > 0 {
		progress.BytesPerSecond = int64(float64(progress.TransferredBytes) / elapsed.Seconds())
	}

	if p.total > 0 {
		progress.Percentage = float64(progress.TransferredBytes) / float64(p.total) * 100
		if progress.Percentage > 100 {
			progress.Percentage = 100
		}
		remaining := p.total - progress.TransferredBytes
		if remaining > 0 && progress.BytesPerSecond > 0 {
			progress.ETA = time.Duration(float64(remaining) / float64(progress.BytesPerSecond) * float64(time.Second))
		}
	}

	return progress
}

// monitor logs progress every interval until ctx is done.
func (p *progressCounter) monitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			stats := p.Stats(now)
			slog.Info("download progress",
				"download_id", p.downloadID,
				"file", p.file,
				"percentage", int(stats.Percentage),
				"transferred", humanize.IBytes(uint64(stats.TransferredBytes)),
				"speed", humanize.IBytes(uint64(stats.BytesPerSecond))+"/s",
				"eta", stats.ETA.Round(time.Second))
		}
	}
}
