package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"recwatch/internal/config"
	"recwatch/internal/duration"
	"recwatch/internal/interfaces"
	"recwatch/internal/models"
	"recwatch/internal/monitor"
	"recwatch/internal/recorder"
	"recwatch/internal/state"
)

var (
	ErrAlreadyRecording = errors.New("recording is already running")
	ErrNotRecording     = errors.New("recording is not running")
	ErrInvalidView      = errors.New("unknown view")
)

// DashboardFileCount is how many recent files the dashboard lists.
const DashboardFileCount = 5

// Presenter receives snapshots and operator log entries. OnSnapshot is called
// on the scheduler loop and must not block; OnLog may be called from any
// goroutine.
type Presenter interface {
	OnSnapshot(snap *models.Snapshot)
	OnLog(entry models.LogEntry)
}

// Intervals holds the cadence of each monitoring task.
type Intervals struct {
	Status         time.Duration
	RecordingFiles time.Duration
	FileManagement time.Duration
	Preview        time.Duration
	Duration       time.Duration
}

// DefaultIntervals matches the cadence of the original operator page.
func DefaultIntervals() Intervals {
	return Intervals{
		Status:         2 * time.Second,
		RecordingFiles: 2 * time.Second,
		FileManagement: 3 * time.Second,
		Preview:        5 * time.Second,
		Duration:       time.Second,
	}
}

// IntervalsFrom reads the task cadence out of the monitoring config.
func IntervalsFrom(cfg config.MonitoringConfig) Intervals {
	return Intervals{
		Status:         cfg.StatusInterval,
		RecordingFiles: cfg.RecordingFilesInterval,
		FileManagement: cfg.FileManagementInterval,
		Preview:        cfg.PreviewInterval,
		Duration:       cfg.DurationInterval,
	}
}

type Options struct {
	Clock       monitor.Clock
	Location    *time.Location
	Intervals   Intervals
	InitialView models.View
	LogStore    interfaces.LogStore
	Notifier    interfaces.Notifier
}

type requestKind int

const (
	kindStatus requestKind = iota
	kindInventory
	kindActive
	numKinds
)

func (k requestKind) String() string {
	switch k {
	case kindStatus:
		return "status"
	case kindInventory:
		return "inventory"
	case kindActive:
		return "active-files"
	}
	return "unknown"
}

// Console is the monitoring engine. Everything below the lock-free section is
// owned by the scheduler loop.
type Console struct {
	client   recorder.Commands
	sched    *monitor.Scheduler
	clock    monitor.Clock
	loc      *time.Location
	logs     interfaces.LogStore
	notifier interfaces.Notifier

	snapshot atomic.Pointer[models.Snapshot]

	presentersMu sync.RWMutex
	presenters   []Presenter

	runCtx context.Context
	wg     sync.WaitGroup

	machine          *state.Machine
	health           *state.Health
	everOnline       bool
	status           *models.RemoteStatus
	storageAvailable bool
	files            []models.FileRecord
	inventoryAt      time.Time
	activeFiles      []models.FileRecord
	activeCount      int
	duration         models.DurationEstimate
	view             models.View
	filter           models.FileFilter
	system           *models.SystemMetrics

	issued  [numKinds]uint64
	applied [numKinds]uint64
}

func New(client recorder.Commands, opts Options) (*Console, error) {
	if client == nil {
		return nil, errors.New("recorder client is required")
	}

	clock := opts.Clock
	if clock == nil {
		clock = monitor.RealClock{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	intervals := opts.Intervals
	if intervals == (Intervals{}) {
		intervals = DefaultIntervals()
	}
	view := opts.InitialView
	if view == "" {
		view = models.ViewDashboard
	}
	if _, ok := models.ParseView(string(view)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidView, view)
	}

	c := &Console{
		client:   client,
		sched:    monitor.NewScheduler(clock),
		clock:    clock,
		loc:      loc,
		logs:     opts.LogStore,
		notifier: opts.Notifier,
		runCtx:   context.Background(),
		machine:  state.NewMachine(),
		health:   state.NewHealth(clock.Now()),
		view:     view,
	}

	if err := c.registerTasks(intervals); err != nil {
		return nil, err
	}

	c.publish()
	return c, nil
}

func (c *Console) registerTasks(iv Intervals) error {
	recording := func() bool { return c.machine.State().IsRecording() }

	tasks := []monitor.Task{
		{
			ID:       monitor.TaskStatus,
			Interval: iv.Status,
			Run:      c.pollStatus,
			RunOnArm: true,
		},
		{
			ID:       monitor.TaskRecordingFiles,
			Interval: iv.RecordingFiles,
			Enabled:  recording,
			Run:      c.refreshActive,
			RunOnArm: true,
		},
		{
			ID:       monitor.TaskFileManagement,
			Interval: iv.FileManagement,
			Enabled:  func() bool { return c.view == models.ViewFiles },
			Run:      c.refreshInventory,
			RunOnArm: true,
		},
		{
			ID:       monitor.TaskVideoPreview,
			Interval: iv.Preview,
			Enabled:  func() bool { return c.view == models.ViewPreview },
			Run:      c.refreshInventory,
			RunOnArm: true,
		},
		{
			ID:       monitor.TaskDuration,
			Interval: iv.Duration,
			Enabled:  recording,
			Run:      c.updateDuration,
			RunOnArm: true,
		},
	}

	for _, task := range tasks {
		if err := c.sched.Register(task); err != nil {
			return fmt.Errorf("failed to register task: %w", err)
		}
	}
	return nil
}

// Run drives the engine until ctx is cancelled. It waits for in-flight
// requests to finish before returning.
func (c *Console) Run(ctx context.Context) error {
	c.runCtx = ctx
	c.logEvent(models.LogLevelInfo, "console", "monitoring started")

	// queued ahead of the loop, so it runs right after the first Reevaluate
	c.sched.Post(c.enterView)

	err := c.sched.Run(ctx)
	c.wg.Wait()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Snapshot returns the latest published view. It never blocks.
func (c *Console) Snapshot() *models.Snapshot {
	return c.snapshot.Load()
}

// Location is the zone file name timestamps are read in.
func (c *Console) Location() *time.Location {
	return c.loc
}

// Client exposes the recorder commands for callers that bypass the engine.
func (c *Console) Client() recorder.Commands {
	return c.client
}

func (c *Console) AddPresenter(p Presenter) {
	c.presentersMu.Lock()
	defer c.presentersMu.Unlock()
	c.presenters = append(c.presenters, p)
}

// LiveTasks lists the armed monitoring tasks.
func (c *Console) LiveTasks(ctx context.Context) ([]monitor.TaskID, error) {
	var ids []monitor.TaskID
	err := c.sched.Call(ctx, func() {
		ids = c.sched.LiveHandles()
	})
	return ids, err
}

// issue takes the next sequence number for a request kind. Loop only.
func (c *Console) issue(kind requestKind) uint64 {
	c.issued[kind]++
	return c.issued[kind]
}

// accept reports whether a response is newer than the last applied one of
// its kind and, if so, marks it applied. Loop only.
func (c *Console) accept(kind requestKind, seq uint64) bool {
	if seq <= c.applied[kind] {
		slog.Debug("dropping stale response", "kind", kind.String(), "seq", seq, "applied", c.applied[kind])
		return false
	}
	c.applied[kind] = seq
	return true
}

// goWork runs fn on a worker goroutine with the engine context.
func (c *Console) goWork(fn func(ctx context.Context)) {
	ctx := c.runCtx
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn(ctx)
	}()
}

func (c *Console) pollStatus() {
	seq := c.issue(kindStatus)
	c.goWork(func(ctx context.Context) {
		status, err := c.client.Poll(ctx)
		c.sched.Post(func() { c.applyStatus(seq, status, err) })
	})
}

func (c *Console) applyStatus(seq uint64, status *models.RemoteStatus, err error) {
	if !c.accept(kindStatus, seq) {
		return
	}
	now := c.clock.Now()

	if err != nil {
		if c.health.Fail(err, now) {
			reason := c.health.Status().LastError
			c.logEvent(models.LogLevelError, "connection", "lost connection to recorder: "+reason)
			c.notify(func(n interfaces.Notifier) error { return n.NotifyConnectionLost(reason) })
		} else {
			c.logEvent(models.LogLevelError, "status", "failed to load recorder status: "+recorder.Describe(err))
		}
		c.publish()
		return
	}

	offlineSince := c.health.Status().Since
	if c.health.Succeed(now) {
		c.logEvent(models.LogLevelSuccess, "connection", "connected to recorder")
		if c.everOnline {
			c.notify(func(n interfaces.Notifier) error { return n.NotifyConnectionRestored(offlineSince) })
		}
		c.everOnline = true
	}

	hadStatus := c.status != nil
	c.status = status

	available := status.Storage.Available()
	if hadStatus && c.storageAvailable && !available {
		storage := status.Storage
		c.logEvent(models.LogLevelWarning, "storage", "recorder storage is out of space")
		c.notify(func(n interfaces.Notifier) error { return n.NotifyStorageUnavailable(storage) })
	}
	c.storageAvailable = available

	tr := c.machine.Apply(*status)
	if tr.Changed() {
		c.onTransition(tr)
	}

	c.publish()
}

func (c *Console) onTransition(tr state.Transition) {
	slog.Info("recording mode changed", "from", tr.From, "to", tr.To)

	switch {
	case tr.Started():
		current := c.machine.State()
		c.logEvent(models.LogLevelSuccess, "recording", fmt.Sprintf("recording started (%s)", modeLabel(tr.To)))
		c.notify(func(n interfaces.Notifier) error { return n.NotifyRecordingStarted(current) })
	case tr.Stopped():
		elapsed := duration.Format(c.duration)
		c.duration = models.UnknownDuration
		c.activeFiles = nil
		c.activeCount = 0
		c.logEvent(models.LogLevelInfo, "recording", "recording stopped after "+elapsed)
		c.notify(func(n interfaces.Notifier) error { return n.NotifyRecordingStopped(elapsed) })
	default:
		c.logEvent(models.LogLevelInfo, "recording", fmt.Sprintf("recording mode changed to %s", modeLabel(tr.To)))
	}

	c.sched.Reevaluate()
}

// refreshActive reloads the active set and the full inventory while
// recording. A failed active listing falls back to the full one.
func (c *Console) refreshActive() {
	activeSeq := c.issue(kindActive)
	inventorySeq := c.issue(kindInventory)

	c.goWork(func(ctx context.Context) {
		active, err := c.client.ListActive(ctx)
		if err == nil {
			// totals on the dashboard follow the segments being written
			all, listErr := c.client.ListAll(ctx)
			c.sched.Post(func() {
				c.applyActive(activeSeq, active)
				c.applyInventory(inventorySeq, all, listErr)
			})
			return
		}

		slog.Debug("active file listing failed, falling back to full listing", "error", err)
		all, fallbackErr := c.client.ListAll(ctx)
		c.sched.Post(func() { c.applyActiveFallback(activeSeq, inventorySeq, all, err, fallbackErr) })
	})
}

func (c *Console) applyActive(seq uint64, active []models.FileRecord) {
	if !c.accept(kindActive, seq) {
		return
	}
	if !c.machine.State().IsRecording() {
		return
	}
	c.activeFiles = active
	c.activeCount = len(active)
	c.publish()
}

func (c *Console) applyActiveFallback(activeSeq, inventorySeq uint64, all []models.FileRecord, activeErr, fallbackErr error) {
	if !c.accept(kindActive, activeSeq) {
		return
	}

	if fallbackErr != nil {
		slog.Warn("failed to list recording files", "error", activeErr, "fallback_error", fallbackErr)
		c.activeFiles = nil
		c.activeCount = 0
		c.publish()
		return
	}

	if c.accept(kindInventory, inventorySeq) {
		c.setInventory(all)
	}
	if c.machine.State().IsRecording() {
		c.activeFiles = recorder.ActiveFrom(all)
		c.activeCount = len(c.activeFiles)
	}
	c.publish()
}

func (c *Console) refreshInventory() {
	seq := c.issue(kindInventory)
	c.goWork(func(ctx context.Context) {
		files, err := c.client.ListAll(ctx)
		c.sched.Post(func() { c.applyInventory(seq, files, err) })
	})
}

func (c *Console) applyInventory(seq uint64, files []models.FileRecord, err error) {
	if !c.accept(kindInventory, seq) {
		return
	}
	if err != nil {
		c.logEvent(models.LogLevelError, "files", "failed to refresh file list: "+recorder.Describe(err))
		return
	}
	c.setInventory(files)
	c.publish()
}

func (c *Console) setInventory(files []models.FileRecord) {
	sorted := make([]models.FileRecord, len(files))
	copy(sorted, files)
	models.SortNewestFirst(sorted)
	c.files = sorted
	c.inventoryAt = c.clock.Now()
}

// updateDuration re-estimates elapsed time from the cached active files of
// the channels that are recording. It never touches the network.
func (c *Console) updateDuration() {
	current := c.machine.State()
	if !current.IsRecording() {
		c.duration = models.UnknownDuration
		c.publish()
		return
	}

	files := current.OnActiveChannels(c.activeFiles)
	c.duration = duration.Estimate(c.clock.Now(), files, c.loc)
	c.publish()
}

func (c *Console) publish() {
	snap := c.buildSnapshot()
	c.snapshot.Store(snap)

	for _, p := range c.presenterList() {
		p.OnSnapshot(snap)
	}
}

func (c *Console) buildSnapshot() *models.Snapshot {
	files := make([]models.FileRecord, len(c.files))
	copy(files, c.files)

	snap := &models.Snapshot{
		Connection:       c.health.Status(),
		Recording:        c.machine.State(),
		StorageAvailable: c.storageAvailable,
		Files:            files,
		ActiveFileCount:  c.activeCount,
		TotalFileCount:   len(files),
		TotalSizeBytes:   models.TotalSize(files),
		Duration:         c.duration,
		DurationDisplay:  duration.Format(c.duration),
		View:             c.view,
		Filter:           c.filter,
		InventoryAt:      c.inventoryAt,
		UpdatedAt:        c.clock.Now(),
	}
	if c.status != nil {
		status := *c.status
		snap.Status = &status
	}
	if c.system != nil {
		system := *c.system
		snap.System = &system
	}
	return snap
}

func (c *Console) presenterList() []Presenter {
	c.presentersMu.RLock()
	defer c.presentersMu.RUnlock()
	out := make([]Presenter, len(c.presenters))
	copy(out, c.presenters)
	return out
}

// logEvent writes an operator log entry to slog, the log store and every
// presenter. Safe from any goroutine.
func (c *Console) logEvent(level models.LogLevel, source, message string) {
	entry := models.LogEntry{
		Level:     level,
		Source:    source,
		Message:   message,
		CreatedAt: c.clock.Now(),
	}

	switch level {
	case models.LogLevelError:
		slog.Error(message, "source", source)
	case models.LogLevelWarning:
		slog.Warn(message, "source", source)
	default:
		slog.Info(message, "source", source, "level", level)
	}

	if c.logs != nil {
		if err := c.logs.AddLogEntry(&entry); err != nil {
			slog.Warn("failed to store log entry", "error", err)
		}
	}

	for _, p := range c.presenterList() {
		p.OnLog(entry)
	}
}

// Record adds an operator log entry on behalf of another component.
func (c *Console) Record(level models.LogLevel, source, message string) {
	c.logEvent(level, source, message)
}

// notify sends a notification off the loop when a notifier is configured.
func (c *Console) notify(send func(n interfaces.Notifier) error) {
	if c.notifier == nil || !c.notifier.IsEnabled() {
		return
	}
	n := c.notifier
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := send(n); err != nil {
			slog.Warn("failed to send notification", "error", err)
		}
	}()
}

func modeLabel(mode models.RecordingMode) string {
	switch mode {
	case models.RecordingModeDual:
		return "dual channel"
	case models.RecordingModeSingle:
		return "single channel"
	default:
		return "not recording"
	}
}
