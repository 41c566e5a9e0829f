package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"recwatch/internal/config"
	"recwatch/internal/interfaces"
	"recwatch/internal/models"
	"recwatch/internal/sanitizer"
)

// ErrBlocked is returned when the gatekeeper refuses a download.
var ErrBlocked = errors.New("download blocked")

// Fetcher streams a recording from the recorder.
type Fetcher interface {
	Download(ctx context.Context, relativePath string, w io.Writer) (int64, error)
}

// Downloader copies recordings from the recorder to local disk and, when an
// archiver is configured, on to long-term storage.
type Downloader struct {
	baseDir  string
	fetcher  Fetcher
	gate     interfaces.DownloadGate
	repo     interfaces.DownloadRepository
	archiver interfaces.Archiver
	notifier interfaces.Notifier
}

// New builds a Downloader. archiver and notifier may be nil.
func New(cfg *config.Config, fetcher Fetcher, gate interfaces.DownloadGate, repo interfaces.DownloadRepository, archiver interfaces.Archiver, notifier interfaces.Notifier) *Downloader {
	return &Downloader{
		baseDir:  cfg.GetDownloads().LocalPath,
		fetcher:  fetcher,
		gate:     gate,
		repo:     repo,
		archiver: archiver,
		notifier: notifier,
	}
}

// Download fetches one recording. The returned record reflects the final
// state even when an error is returned after the record was created.
func (d *Downloader) Download(ctx context.Context, file models.FileRecord) (*models.Download, error) {
	localPath, err := sanitizer.LocalPath(d.baseDir, file.RelativePath)
	if err != nil {
		return nil, err
	}

	decision := d.gate.CanDownload(file.SizeBytes)
	if !decision.Allowed {
		slog.Warn("download blocked by gatekeeper",
			"file", file.RelativePath,
			"reason", decision.Reason,
			"details", decision.Details)
		return nil, fmt.Errorf("%w: %s", ErrBlocked, decision.Reason)
	}

	rec := &models.Download{
		RelativePath: file.RelativePath,
		LocalPath:    localPath,
		SizeBytes:    file.SizeBytes,
		Status:       models.DownloadStatusPending,
	}
	if err := d.repo.CreateDownload(rec); err != nil {
		return nil, fmt.Errorf("failed to record download: %w", err)
	}

	slog.Info("starting download",
		"download_id", rec.ID,
		"file", file.RelativePath,
		"local_path", localPath,
		"size", humanize.IBytes(uint64(file.SizeBytes)))

	written, err := d.fetch(ctx, rec)
	if err != nil {
		return rec, d.fail(rec, err)
	}

	rec.SizeBytes = written
	rec.Status = models.DownloadStatusCompleted

	slog.Info("download completed",
		"download_id", rec.ID,
		"file", file.RelativePath,
		"size", humanize.IBytes(uint64(written)))

	if d.archiver != nil {
		key, err := d.archiver.Upload(ctx, localPath, file.RelativePath)
		if err != nil {
			// the local copy is still good; keep the download completed
			slog.Warn("failed to archive download", "download_id", rec.ID, "error", err)
			rec.ErrorMessage = "archive failed: " + err.Error()
		} else {
			rec.Status = models.DownloadStatusArchived
			rec.ArchiveKey = key
		}
	}

	if err := d.repo.UpdateDownload(rec); err != nil {
		slog.Error("failed to persist download", "download_id", rec.ID, "error", err)
	}
	return rec, nil
}

// fetch writes the recording to a .part file and renames it into place,
// logging progress while the transfer runs.
func (d *Downloader) fetch(ctx context.Context, rec *models.Download) (int64, error) {
	localPath := rec.LocalPath
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create download directory: %w", err)
	}

	tmpPath := localPath + ".part"
	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	counter := newProgressCounter(rec.ID, rec.RelativePath, rec.SizeBytes, time.Now())
	monitorCtx, stopMonitor := context.WithCancel(ctx)
	go counter.monitor(monitorCtx, progressInterval)

	written, err := d.fetcher.Download(ctx, rec.RelativePath, io.MultiWriter(f, counter))
	stopMonitor()
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	if err := os.Rename(tmpPath, localPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to move download into place: %w", err)
	}
	return written, nil
}

func (d *Downloader) fail(rec *models.Download, cause error) error {
	rec.Status = models.DownloadStatusFailed
	rec.ErrorMessage = cause.Error()

	slog.Error("download failed", "download_id", rec.ID, "file", rec.RelativePath, "error", cause)

	if err := d.repo.UpdateDownload(rec); err != nil {
		slog.Error("failed to persist download failure", "download_id", rec.ID, "error", err)
	}

	if d.notifier != nil && d.notifier.IsEnabled() {
		if err := d.notifier.NotifyDownloadFailed(rec); err != nil {
			slog.Warn("failed to send download notification", "download_id", rec.ID, "error", err)
		}
	}

	return fmt.Errorf("failed to download %s: %w", rec.RelativePath, cause)
}

// History lists past downloads, newest first.
func (d *Downloader) History(filter models.DownloadFilter) ([]*models.Download, error) {
	return d.repo.GetDownloads(filter)
}

// DiskStatus reports the state of the download volume.
func (d *Downloader) DiskStatus() interfaces.DiskStatus {
	return d.gate.GetResourceStatus()
}
