package console

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recwatch/internal/mocks"
	"recwatch/internal/models"
	"recwatch/internal/monitor"
	"recwatch/internal/recorder"
	"recwatch/internal/testutil"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

// 15:25:15 UTC, one second before a segment started at 15:23:16 is two
// minutes old.
var testStart = time.Date(2025, 6, 23, 15, 25, 15, 0, time.UTC)

type recordingPresenter struct {
	mu        sync.Mutex
	snapshots []*models.Snapshot
	logs      []models.LogEntry
}

func (p *recordingPresenter) OnSnapshot(snap *models.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, snap)
}

func (p *recordingPresenter) OnLog(entry models.LogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logs = append(p.logs, entry)
}

func (p *recordingPresenter) hasLog(message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, l := range p.logs {
		if l.Message == message {
			return true
		}
	}
	return false
}

func (p *recordingPresenter) snapshotCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snapshots)
}

func newTestConsole(t *testing.T, fake *testutil.FakeRecorder, opts Options) (*Console, *monitor.ManualClock) {
	t.Helper()

	clock := monitor.NewManualClock(testStart)
	opts.Clock = clock
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	c, err := New(recorder.NewClient(fake.URL()), opts)
	require.NoError(t, err)
	return c, clock
}

func runConsole(t *testing.T, c *Console) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(waitFor):
			t.Error("console did not stop")
		}
	})
}

func liveTasks(t *testing.T, c *Console) []monitor.TaskID {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	ids, err := c.LiveTasks(ctx)
	require.NoError(t, err)
	return ids
}

func recordingFile() models.FileRecord {
	start := time.Date(2025, 6, 23, 15, 23, 16, 0, time.UTC)
	return testutil.CreateTestFile(models.ChannelA, start, testutil.Recording(testStart))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)

	fake := testutil.NewFakeRecorder(t)
	_, err = New(recorder.NewClient(fake.URL()), Options{InitialView: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidView)
}

func TestNew_PublishesInitialSnapshot(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	c, _ := newTestConsole(t, fake, Options{})

	snap := c.Snapshot()
	require.NotNil(t, snap)
	assert.False(t, snap.Connection.Online)
	assert.Equal(t, models.RecordingModeNone, snap.Recording.Mode)
	assert.Equal(t, models.ViewDashboard, snap.View)
	assert.Equal(t, "00:00:00", snap.DurationDisplay)
}

func TestConsole_StartupDetectsRecording(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	fake.SetRecording(true, true)
	older := testutil.CreateTestFile(models.ChannelA, testStart.Add(-time.Hour))
	fake.SetFiles([]models.FileRecord{older, recordingFile()})

	c, clock := newTestConsole(t, fake, Options{})
	runConsole(t, c)

	require.Eventually(t, func() bool {
		snap := c.Snapshot()
		return snap.Connection.Online && snap.Recording.Mode == models.RecordingModeDual
	}, waitFor, tick)

	assert.Equal(t, []monitor.TaskID{
		monitor.TaskDuration,
		monitor.TaskRecordingFiles,
		monitor.TaskStatus,
	}, liveTasks(t, c))

	require.Eventually(t, func() bool {
		return c.Snapshot().ActiveFileCount == 1
	}, waitFor, tick)

	clock.Advance(time.Second)

	require.Eventually(t, func() bool {
		return c.Snapshot().DurationDisplay == "00:02:00"
	}, waitFor, tick)

	snap := c.Snapshot()
	assert.True(t, snap.Duration.Known)
	assert.Equal(t, 2*time.Minute, snap.Duration.Elapsed)
	assert.True(t, snap.StorageAvailable)
	require.NotNil(t, snap.Status)
	assert.Equal(t, "46G", snap.Status.Storage.FreeSpace)
}

func TestConsole_ConnectionFlipsImmediately(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)

	lost := make(chan string, 1)
	restored := make(chan time.Time, 1)
	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().IsEnabled().Return(true).Maybe()
	notifier.EXPECT().NotifyConnectionLost(mock.Anything).
		Run(func(reason string) { lost <- reason }).
		Return(nil).
		Once()
	notifier.EXPECT().NotifyConnectionRestored(mock.Anything).
		Run(func(offlineSince time.Time) { restored <- offlineSince }).
		Return(nil).
		Once()

	c, clock := newTestConsole(t, fake, Options{Notifier: notifier})
	runConsole(t, c)

	require.Eventually(t, func() bool { return c.Snapshot().Connection.Online }, waitFor, tick)

	fake.SetStatusCode(http.StatusInternalServerError)
	clock.Advance(2 * time.Second)

	require.Eventually(t, func() bool { return !c.Snapshot().Connection.Online }, waitFor, tick)
	assert.Equal(t, "recorder answered HTTP 500", c.Snapshot().Connection.LastError)

	select {
	case reason := <-lost:
		assert.Equal(t, "recorder answered HTTP 500", reason)
	case <-time.After(waitFor):
		t.Fatal("connection lost notification not sent")
	}

	fake.SetStatusCode(http.StatusOK)
	clock.Advance(2 * time.Second)

	require.Eventually(t, func() bool { return c.Snapshot().Connection.Online }, waitFor, tick)
	assert.Empty(t, c.Snapshot().Connection.LastError)

	select {
	case since := <-restored:
		assert.Equal(t, testStart.Add(2*time.Second), since)
	case <-time.After(waitFor):
		t.Fatal("connection restored notification not sent")
	}
}

func TestConsole_StartStopGuards(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	c, _ := newTestConsole(t, fake, Options{})
	runConsole(t, c)

	require.Eventually(t, func() bool { return c.Snapshot().Connection.Online }, waitFor, tick)

	ctx := context.Background()

	_, err := c.StopRecording(ctx)
	assert.ErrorIs(t, err, ErrNotRecording)

	msg, err := c.StartRecording(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Recording started", msg)

	require.Eventually(t, func() bool {
		return c.Snapshot().Recording.Mode == models.RecordingModeDual
	}, waitFor, tick)

	_, err = c.StartRecording(ctx)
	assert.ErrorIs(t, err, ErrAlreadyRecording)

	msg, err = c.StopRecording(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Recording stopped", msg)

	require.Eventually(t, func() bool {
		return c.Snapshot().Recording.Mode == models.RecordingModeNone
	}, waitFor, tick)

	snap := c.Snapshot()
	assert.Equal(t, "00:00:00", snap.DurationDisplay)
	assert.Equal(t, 0, snap.ActiveFileCount)
	assert.Equal(t, []monitor.TaskID{monitor.TaskStatus}, liveTasks(t, c))
}

func TestConsole_StartRejectedByRecorder(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	c, _ := newTestConsole(t, fake, Options{})
	runConsole(t, c)

	require.Eventually(t, func() bool { return c.Snapshot().Connection.Online }, waitFor, tick)

	// the recorder starts recording behind the console's back
	fake.SetRecording(true, false)

	_, err := c.StartRecording(context.Background())
	require.Error(t, err)
	assert.Equal(t, recorder.KindCommand, recorder.Kind(err))
	assert.Equal(t, "Already recording", recorder.Describe(err))
}

func TestConsole_RecordingNotifications(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)

	started := make(chan models.RecordingState, 1)
	stopped := make(chan string, 1)
	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().IsEnabled().Return(true).Maybe()
	notifier.EXPECT().NotifyRecordingStarted(mock.Anything).
		Run(func(state models.RecordingState) { started <- state }).
		Return(nil).
		Once()
	notifier.EXPECT().NotifyRecordingStopped(mock.Anything).
		Run(func(elapsed string) { stopped <- elapsed }).
		Return(nil).
		Once()

	c, clock := newTestConsole(t, fake, Options{Notifier: notifier})
	runConsole(t, c)

	require.Eventually(t, func() bool { return c.Snapshot().Connection.Online }, waitFor, tick)

	fake.SetRecording(true, false)
	clock.Advance(2 * time.Second)

	select {
	case state := <-started:
		assert.Equal(t, models.RecordingModeSingle, state.Mode)
		assert.True(t, state.Channel1)
	case <-time.After(waitFor):
		t.Fatal("recording started notification not sent")
	}

	fake.SetRecording(false, false)
	clock.Advance(2 * time.Second)

	select {
	case elapsed := <-stopped:
		assert.NotEmpty(t, elapsed)
	case <-time.After(waitFor):
		t.Fatal("recording stopped notification not sent")
	}
}

func TestConsole_ActiveFilesFallback(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	fake.SetRecording(true, false)
	fake.SetActiveFilesCode(http.StatusInternalServerError)
	older := testutil.CreateTestFile(models.ChannelA, testStart.Add(-time.Hour))
	fake.SetFiles([]models.FileRecord{older, recordingFile()})

	c, clock := newTestConsole(t, fake, Options{})
	runConsole(t, c)

	require.Eventually(t, func() bool {
		snap := c.Snapshot()
		return snap.ActiveFileCount == 1 && snap.TotalFileCount == 2
	}, waitFor, tick)

	fake.SetFilesCode(http.StatusInternalServerError)
	clock.Advance(2 * time.Second)

	require.Eventually(t, func() bool {
		return c.Snapshot().ActiveFileCount == 0
	}, waitFor, tick)

	assert.Equal(t, 2, c.Snapshot().TotalFileCount, "failed listing keeps the previous inventory")
}

func TestConsole_InventoryFollowsRecording(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	fake.SetRecording(true, false)
	current := recordingFile()
	fake.SetFiles([]models.FileRecord{current})

	c, clock := newTestConsole(t, fake, Options{})
	runConsole(t, c)

	require.Eventually(t, func() bool {
		snap := c.Snapshot()
		return snap.ActiveFileCount == 1 && snap.TotalFileCount == 1
	}, waitFor, tick)

	next := testutil.CreateTestFile(models.ChannelA, testStart.Add(-time.Second), testutil.Recording(testStart.Add(time.Second)))
	fake.SetFiles([]models.FileRecord{current, next})
	clock.Advance(2 * time.Second)

	require.Eventually(t, func() bool {
		snap := c.Snapshot()
		return snap.ActiveFileCount == 2 && snap.TotalFileCount == 2
	}, waitFor, tick)

	snap := c.Snapshot()
	assert.Equal(t, models.TotalSize(snap.Files), snap.TotalSizeBytes)
	assert.Equal(t, next.Name, snap.RecentFiles(DashboardFileCount)[0].Name)
}

func TestConsole_StaleStatusDropped(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	c, _ := newTestConsole(t, fake, Options{})

	// Nothing runs the loop here; the apply methods are driven directly.
	older := c.issue(kindStatus)
	newer := c.issue(kindStatus)

	c.applyStatus(newer, &models.RemoteStatus{Channel1Active: true, Channel2Active: true}, nil)
	c.applyStatus(older, &models.RemoteStatus{}, nil)

	assert.Equal(t, models.RecordingModeDual, c.Snapshot().Recording.Mode)
	assert.True(t, c.Snapshot().Connection.Online)

	older = c.issue(kindStatus)
	newer = c.issue(kindStatus)

	c.applyStatus(newer, nil, &recorder.TimeoutError{Op: "status", Timeout: 5 * time.Second})
	c.applyStatus(older, &models.RemoteStatus{Channel1Active: true, Channel2Active: true}, nil)

	snap := c.Snapshot()
	assert.False(t, snap.Connection.Online)
	assert.Equal(t, "request timed out", snap.Connection.LastError)
	assert.Equal(t, models.RecordingModeDual, snap.Recording.Mode, "failed polls leave the recording state alone")
}

func TestConsole_ActiveFilesIgnoredWhenIdle(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	c, _ := newTestConsole(t, fake, Options{})

	seq := c.issue(kindActive)
	c.applyActive(seq, []models.FileRecord{recordingFile()})

	assert.Equal(t, 0, c.Snapshot().ActiveFileCount)
}

func TestConsole_StaleInventoryDropped(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	c, _ := newTestConsole(t, fake, Options{})

	older := c.issue(kindInventory)
	newer := c.issue(kindInventory)

	c.applyInventory(newer, []models.FileRecord{recordingFile()}, nil)
	c.applyInventory(older, nil, nil)

	assert.Equal(t, 1, c.Snapshot().TotalFileCount)
}

func TestConsole_ViewArmsTasks(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	base := testStart.Add(-3 * time.Hour)
	fake.SetFiles([]models.FileRecord{
		testutil.CreateTestFile(models.ChannelA, base),
		testutil.CreateTestFile(models.ChannelB, base.Add(time.Hour)),
		testutil.CreateTestFile(models.ChannelA, base.Add(2*time.Hour)),
	})

	c, _ := newTestConsole(t, fake, Options{})
	runConsole(t, c)

	ctx := context.Background()

	require.NoError(t, c.SetView(ctx, models.ViewFiles))
	assert.Contains(t, liveTasks(t, c), monitor.TaskFileManagement)

	require.Eventually(t, func() bool { return c.Snapshot().TotalFileCount == 3 }, waitFor, tick)

	snap := c.Snapshot()
	assert.Equal(t, models.ViewFiles, snap.View)
	assert.Equal(t, base.Add(2*time.Hour).Unix(), snap.Files[0].ModifyEpochSeconds, "newest first")

	require.NoError(t, c.SetView(ctx, models.ViewPreview))
	tasks := liveTasks(t, c)
	assert.Contains(t, tasks, monitor.TaskVideoPreview)
	assert.NotContains(t, tasks, monitor.TaskFileManagement)

	require.NoError(t, c.SetView(ctx, models.ViewMonitor))
	assert.Equal(t, []monitor.TaskID{monitor.TaskStatus}, liveTasks(t, c))

	require.Eventually(t, func() bool { return c.Snapshot().System != nil }, waitFor, tick)
	assert.Equal(t, 12.5, c.Snapshot().System.CPUUsage)

	err := c.SetView(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrInvalidView)
}

func TestConsole_FilteredFiles(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	day1 := time.Date(2025, 6, 22, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 23, 10, 0, 0, 0, time.UTC)
	fake.SetFiles([]models.FileRecord{
		testutil.CreateTestFile(models.ChannelA, day1),
		testutil.CreateTestFile(models.ChannelB, day2),
	})

	c, _ := newTestConsole(t, fake, Options{InitialView: models.ViewFiles})
	runConsole(t, c)

	require.Eventually(t, func() bool { return c.Snapshot().TotalFileCount == 2 }, waitFor, tick)

	files := c.FilteredFiles(models.FileFilter{Channel: models.ChannelB})
	require.Len(t, files, 1)
	assert.Equal(t, models.ChannelB, files[0].Channel)

	require.NoError(t, c.SetFilter(context.Background(), models.FileFilter{EndDate: "2025-06-22"}))
	files = c.FilteredFiles(models.FileFilter{})
	require.Len(t, files, 1)
	assert.Equal(t, models.ChannelA, files[0].Channel)
	assert.Equal(t, "2025-06-22", c.Snapshot().Filter.EndDate)
}

func TestConsole_UpdateConfig(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	c, _ := newTestConsole(t, fake, Options{})
	runConsole(t, c)

	ctx := context.Background()

	bad := models.DefaultRecorderConfig()
	bad.SegmentTime = 10
	_, err := c.UpdateConfig(ctx, bad)
	assert.Error(t, err)
	assert.Equal(t, 600, fake.Config().SegmentTime)

	good := models.DefaultRecorderConfig()
	good.SegmentTime = 300
	good.DualStreamEnabled = false
	_, err = c.UpdateConfig(ctx, good)
	require.NoError(t, err)
	assert.Equal(t, good, fake.Config())

	cfg, err := c.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, good, *cfg)
}

func TestConsole_DeleteAndUpload(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	file := testutil.CreateTestFile(models.ChannelA, testStart.Add(-time.Hour))
	fake.SetFiles([]models.FileRecord{file})

	c, _ := newTestConsole(t, fake, Options{})
	runConsole(t, c)

	ctx := context.Background()

	_, err := c.UploadToS3(ctx, file.FullPath, "")
	require.NoError(t, err)
	assert.Equal(t, []string{file.FullPath}, fake.Uploads())

	_, err = c.DeleteFile(ctx, file.FullPath)
	require.NoError(t, err)

	_, err = c.DeleteFile(ctx, file.FullPath)
	require.Error(t, err)
	assert.Equal(t, "File not found", recorder.Describe(err))

	_, err = c.DeleteFile(ctx, "")
	assert.Error(t, err)
}

func TestConsole_PresentersAndLogStore(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	repo := testutil.SetupTestDB(t)

	c, _ := newTestConsole(t, fake, Options{LogStore: repo})
	p := &recordingPresenter{}
	c.AddPresenter(p)
	runConsole(t, c)

	require.Eventually(t, func() bool { return p.hasLog("connected to recorder") }, waitFor, tick)
	assert.Greater(t, p.snapshotCount(), 0)

	entries, err := c.Logs(models.LogFilter{Levels: []models.LogLevel{models.LogLevelSuccess}})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "connected to recorder", entries[0].Message)
	assert.Equal(t, "connection", entries[0].Source)
	assert.NotEmpty(t, entries[0].ID)
}

func TestConsole_LogStoreFailureDoesNotStopDelivery(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	store := mocks.NewMockLogStore(t)
	store.EXPECT().AddLogEntry(mock.Anything).Return(errors.New("database is locked"))
	store.EXPECT().GetLogEntries(models.LogFilter{Limit: 10}).Return(nil, errors.New("database is locked"))

	c, _ := newTestConsole(t, fake, Options{LogStore: store})
	p := &recordingPresenter{}
	c.AddPresenter(p)

	c.Record(models.LogLevelInfo, "download", "download queued")
	assert.True(t, p.hasLog("download queued"))

	_, err := c.Logs(models.LogFilter{Limit: 10})
	assert.EqualError(t, err, "database is locked")
}

func TestConsole_LogsWithoutStore(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	c, _ := newTestConsole(t, fake, Options{})

	entries, err := c.Logs(models.LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConsole_RunStopsCleanly(t *testing.T) {
	fake := testutil.NewFakeRecorder(t)
	release := fake.BlockStatus()
	defer release()

	c, _ := newTestConsole(t, fake, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return fake.Requests("/api/status") > 0 }, waitFor, tick)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("Run did not return after cancel")
	}

	assert.False(t, c.RefreshStatus(), "posting after stop fails")

	_, err := c.LiveTasks(context.Background())
	assert.True(t, errors.Is(err, monitor.ErrStopped))
}
