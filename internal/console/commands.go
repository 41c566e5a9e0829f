package console

import (
	"context"
	"errors"
	"fmt"
	"path"

	"recwatch/internal/models"
	"recwatch/internal/recorder"
)

// SetView switches the operator page. Tasks bound to the view are armed or
// disarmed before it returns, and the page's data is refreshed on entry.
func (c *Console) SetView(ctx context.Context, view models.View) error {
	if _, ok := models.ParseView(string(view)); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidView, view)
	}

	return c.sched.Call(ctx, func() {
		if c.view == view {
			return
		}
		c.view = view
		c.sched.Reevaluate()
		c.enterView()
		c.publish()
	})
}

// enterView loads what the current view shows. The files and preview views
// refresh through their own tasks when those are armed. Loop only.
func (c *Console) enterView() {
	switch c.view {
	case models.ViewDashboard, models.ViewRecording:
		c.refreshInventory()
	case models.ViewMonitor:
		c.fetchSystemAsync()
	}
}

// SetFilter stores the file filter shown with every snapshot.
func (c *Console) SetFilter(ctx context.Context, filter models.FileFilter) error {
	return c.sched.Call(ctx, func() {
		c.filter = filter
		c.publish()
	})
}

// FilteredFiles applies filter, or the stored filter when filter is zero, to
// the latest inventory.
func (c *Console) FilteredFiles(filter models.FileFilter) []models.FileRecord {
	snap := c.Snapshot()
	if filter.IsZero() {
		filter = snap.Filter
	}
	return filter.Apply(snap.Files, c.loc)
}

// RefreshStatus polls the recorder now instead of waiting for the next tick.
func (c *Console) RefreshStatus() bool {
	return c.sched.Post(c.pollStatus)
}

// RefreshFiles reloads the file inventory now.
func (c *Console) RefreshFiles() bool {
	return c.sched.Post(c.refreshInventory)
}

// FetchSystem loads the recorder's system metrics and folds them into the
// next snapshot.
func (c *Console) FetchSystem(ctx context.Context) (*models.SystemMetrics, error) {
	metrics, err := c.client.SystemMonitor(ctx)
	if err != nil {
		c.logEvent(models.LogLevelError, "system", "failed to load system metrics: "+recorder.Describe(err))
		return nil, err
	}
	metrics.ReceivedAt = c.clock.Now()

	c.sched.Post(func() { c.applySystem(metrics) })
	c.logEvent(models.LogLevelInfo, "system", "system metrics updated")
	return metrics, nil
}

func (c *Console) fetchSystemAsync() {
	c.goWork(func(ctx context.Context) {
		c.FetchSystem(ctx)
	})
}

func (c *Console) applySystem(metrics *models.SystemMetrics) {
	c.system = metrics
	c.publish()
}

// StartRecording starts the recorder with its current configuration. It is
// refused while a recording is already running.
func (c *Console) StartRecording(ctx context.Context) (string, error) {
	if c.Snapshot().Recording.IsRecording() {
		return "", ErrAlreadyRecording
	}

	c.logEvent(models.LogLevelInfo, "recording", "starting recording")

	cfg, err := c.client.GetConfig(ctx)
	if err != nil {
		c.logEvent(models.LogLevelError, "recording", "failed to start recording: "+recorder.Describe(err))
		return "", fmt.Errorf("failed to load recorder config: %w", err)
	}

	msg, err := c.client.Start(ctx, *cfg)
	if err != nil {
		c.logEvent(models.LogLevelError, "recording", "failed to start recording: "+recorder.Describe(err))
		return "", err
	}

	c.logEvent(models.LogLevelSuccess, "recording", "recording start accepted")
	c.RefreshStatus()
	return msg, nil
}

// StopRecording stops the recorder. It is refused while idle.
func (c *Console) StopRecording(ctx context.Context) (string, error) {
	if !c.Snapshot().Recording.IsRecording() {
		return "", ErrNotRecording
	}

	c.logEvent(models.LogLevelInfo, "recording", "stopping recording")

	msg, err := c.client.Stop(ctx)
	if err != nil {
		c.logEvent(models.LogLevelError, "recording", "failed to stop recording: "+recorder.Describe(err))
		return "", err
	}

	c.logEvent(models.LogLevelSuccess, "recording", "recording stop accepted")
	c.RefreshStatus()
	return msg, nil
}

func (c *Console) GetConfig(ctx context.Context) (*models.RecorderConfig, error) {
	cfg, err := c.client.GetConfig(ctx)
	if err != nil {
		c.logEvent(models.LogLevelError, "config", "failed to load recorder config: "+recorder.Describe(err))
		return nil, err
	}
	return cfg, nil
}

// UpdateConfig validates and saves the recorder configuration.
func (c *Console) UpdateConfig(ctx context.Context, cfg models.RecorderConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		c.logEvent(models.LogLevelWarning, "config", "rejected recorder config: "+err.Error())
		return "", err
	}

	c.logEvent(models.LogLevelInfo, "config", "updating recorder config")

	msg, err := c.client.UpdateConfig(ctx, cfg)
	if err != nil {
		c.logEvent(models.LogLevelError, "config", "failed to update recorder config: "+recorder.Describe(err))
		return "", err
	}

	c.logEvent(models.LogLevelSuccess, "config", "recorder config updated")
	return msg, nil
}

// DeleteFile removes a recording on the recorder and reloads the inventory.
func (c *Console) DeleteFile(ctx context.Context, fullPath string) (string, error) {
	if fullPath == "" {
		return "", errors.New("file path is required")
	}

	msg, err := c.client.DeleteFile(ctx, fullPath)
	if err != nil {
		c.logEvent(models.LogLevelError, "files", fmt.Sprintf("failed to delete %s: %s", path.Base(fullPath), recorder.Describe(err)))
		return "", err
	}

	c.logEvent(models.LogLevelSuccess, "files", "deleted "+path.Base(fullPath))
	c.RefreshFiles()
	return msg, nil
}

// UploadToS3 asks the recorder to push one of its files to its own bucket.
func (c *Console) UploadToS3(ctx context.Context, fullPath, fileName string) (string, error) {
	if fullPath == "" {
		return "", errors.New("file path is required")
	}
	if fileName == "" {
		fileName = path.Base(fullPath)
	}

	c.logEvent(models.LogLevelInfo, "upload", "uploading "+fileName)

	msg, err := c.client.UploadToS3(ctx, fullPath, fileName)
	if err != nil {
		c.logEvent(models.LogLevelError, "upload", fmt.Sprintf("failed to upload %s: %s", fileName, recorder.Describe(err)))
		return "", err
	}

	c.logEvent(models.LogLevelSuccess, "upload", "uploaded "+fileName)
	return msg, nil
}

// Logs returns stored operator log entries, newest first.
func (c *Console) Logs(filter models.LogFilter) ([]*models.LogEntry, error) {
	if c.logs == nil {
		return []*models.LogEntry{}, nil
	}
	return c.logs.GetLogEntries(filter)
}
