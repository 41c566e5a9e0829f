package presenter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"recwatch/internal/console"
	"recwatch/internal/models"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
	liveColor    = color.New(color.FgRed, color.Bold)
)

// dashboardKey is what has to change before watch mode redraws.
type dashboardKey struct {
	online      bool
	mode        models.RecordingMode
	storage     bool
	activeFiles int
	inventoryAt time.Time
	view        models.View
	known       bool
}

// Terminal renders console state as colored text. It doubles as a console
// presenter for the watch command.
type Terminal struct {
	mu       sync.Mutex
	w        io.Writer
	loc      *time.Location
	last     *dashboardKey
	duration string
}

func NewTerminal(w io.Writer, loc *time.Location) *Terminal {
	if loc == nil {
		loc = time.Local
	}
	return &Terminal{w: w, loc: loc}
}

// OnSnapshot redraws the dashboard when connection, recording, storage, the
// inventory or the duration estimate changed. Between redraws a running
// recording prints a one-line duration update.
func (t *Terminal) OnSnapshot(snap *models.Snapshot) {
	key := dashboardKey{
		online:      snap.Connection.Online,
		mode:        snap.Recording.Mode,
		storage:     snap.StorageAvailable,
		activeFiles: snap.ActiveFileCount,
		inventoryAt: snap.InventoryAt,
		view:        snap.View,
		known:       snap.Duration.Known,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil || *t.last != key {
		t.last = &key
		t.duration = snap.DurationDisplay
		t.dashboard(snap)
		return
	}

	if snap.Recording.IsRecording() && snap.DurationDisplay != t.duration {
		t.duration = snap.DurationDisplay
		liveColor.Fprint(t.w, "  ● ")
		fmt.Fprintf(t.w, "%s %s\n", snap.DurationDisplay, modeLabel(snap.Recording.Mode))
	}
}

func (t *Terminal) OnLog(entry models.LogEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ts := entry.CreatedAt.In(t.loc).Format("15:04:05")
	dimColor.Fprintf(t.w, "[%s] ", ts)
	levelColor(entry.Level).Fprintf(t.w, "%-7s", entry.Level)
	fmt.Fprintf(t.w, " %s: %s\n", entry.Source, entry.Message)
}

// Dashboard prints connection, recording and storage state plus the most
// recent recordings.
func (t *Terminal) Dashboard(snap *models.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dashboard(snap)
}

func (t *Terminal) dashboard(snap *models.Snapshot) {
	headerColor.Fprintln(t.w, "Recorder")

	if snap.Connection.Online {
		successColor.Fprint(t.w, "  ● online")
	} else {
		errorColor.Fprint(t.w, "  ● offline")
		if snap.Connection.LastError != "" {
			dimColor.Fprintf(t.w, " (%s)", snap.Connection.LastError)
		}
	}
	fmt.Fprintln(t.w)

	if snap.Recording.IsRecording() {
		liveColor.Fprintf(t.w, "  ● %s", modeLabel(snap.Recording.Mode))
		fmt.Fprintf(t.w, "  %s  %d active file(s)\n", snap.DurationDisplay, snap.ActiveFileCount)
	} else {
		dimColor.Fprintf(t.w, "  ○ %s\n", modeLabel(snap.Recording.Mode))
	}

	if snap.Status != nil {
		storage := snap.Status.Storage
		c := successColor
		if !snap.StorageAvailable {
			c = warningColor
		}
		c.Fprintf(t.w, "  storage %s free of %s (%s used)\n", storage.FreeSpace, storage.TotalSpace, storage.UsagePercent)
	}

	fmt.Fprintf(t.w, "  %d recording(s), %s\n", snap.TotalFileCount, humanize.IBytes(uint64(snap.TotalSizeBytes)))

	recent := snap.RecentFiles(console.DashboardFileCount)
	if len(recent) > 0 {
		headerColor.Fprintln(t.w, "Recent")
		for _, f := range recent {
			t.fileLine(f)
		}
	}
}

// Files prints one line per recording followed by a total.
func (t *Terminal) Files(files []models.FileRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(files) == 0 {
		dimColor.Fprintln(t.w, "No recordings found")
		return
	}
	for _, f := range files {
		t.fileLine(f)
	}
	dimColor.Fprintf(t.w, "%d file(s), %s\n", len(files), humanize.IBytes(uint64(models.TotalSize(files))))
}

func (t *Terminal) fileLine(f models.FileRecord) {
	mtime := f.ModifyTime().In(t.loc).Format("2006-01-02 15:04:05")
	fmt.Fprintf(t.w, "  %-9s %-26s %10s  %s", f.Channel.Label(), f.Name, humanize.IBytes(uint64(f.SizeBytes)), mtime)
	if f.IsRecording {
		liveColor.Fprint(t.w, "  REC")
	}
	fmt.Fprintln(t.w)
}

func (t *Terminal) Config(cfg *models.RecorderConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	headerColor.Fprintln(t.w, "Recorder configuration")
	fmt.Fprintf(t.w, "  rtsp_url1            %s\n", cfg.RTSPURL1)
	fmt.Fprintf(t.w, "  rtsp_url2            %s\n", cfg.RTSPURL2)
	fmt.Fprintf(t.w, "  save_path1           %s\n", cfg.SavePath1)
	fmt.Fprintf(t.w, "  save_path2           %s\n", cfg.SavePath2)
	fmt.Fprintf(t.w, "  segment_time         %ds\n", cfg.SegmentTime)
	fmt.Fprintf(t.w, "  dual_stream_enabled  %t\n", cfg.DualStreamEnabled)
}

func (t *Terminal) System(m *models.SystemMetrics) {
	t.mu.Lock()
	defer t.mu.Unlock()

	headerColor.Fprintln(t.w, "Recorder system")
	fmt.Fprintf(t.w, "  cpu          %.1f%%\n", m.CPUUsage)
	fmt.Fprintf(t.w, "  memory       %.1f%%\n", m.MemoryUsage)
	fmt.Fprintf(t.w, "  disk         %.1f%%\n", m.DiskUsage)
	fmt.Fprintf(t.w, "  load         %.2f\n", m.LoadAverage)
	fmt.Fprintf(t.w, "  temperature  %.1f°C\n", m.Temperature)
	fmt.Fprintf(t.w, "  network      rx %s  tx %s\n", humanize.IBytes(uint64(m.NetworkRx)), humanize.IBytes(uint64(m.NetworkTx)))
	fmt.Fprintf(t.w, "  uptime       %s\n", m.Uptime)
}

func (t *Terminal) Download(d *models.Download) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch d.Status {
	case models.DownloadStatusArchived:
		successColor.Fprintf(t.w, "✓ %s → %s (%s), archived as %s\n", d.RelativePath, d.LocalPath, humanize.IBytes(uint64(d.SizeBytes)), d.ArchiveKey)
	case models.DownloadStatusCompleted:
		successColor.Fprintf(t.w, "✓ %s → %s (%s)\n", d.RelativePath, d.LocalPath, humanize.IBytes(uint64(d.SizeBytes)))
		if d.ErrorMessage != "" {
			warningColor.Fprintf(t.w, "  %s\n", d.ErrorMessage)
		}
	default:
		errorColor.Fprintf(t.w, "✗ %s: %s\n", d.RelativePath, d.ErrorMessage)
	}
}

func (t *Terminal) Success(msg string) { t.line(successColor, "✓ ", msg) }
func (t *Terminal) Error(msg string)   { t.line(errorColor, "✗ ", msg) }
func (t *Terminal) Warning(msg string) { t.line(warningColor, "! ", msg) }
func (t *Terminal) Info(msg string)    { t.line(dimColor, "", msg) }

func (t *Terminal) line(c *color.Color, prefix, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c.Fprintln(t.w, prefix+msg)
}

func levelColor(level models.LogLevel) *color.Color {
	switch level {
	case models.LogLevelSuccess:
		return successColor
	case models.LogLevelWarning:
		return warningColor
	case models.LogLevelError:
		return errorColor
	default:
		return dimColor
	}
}

func modeLabel(mode models.RecordingMode) string {
	switch mode {
	case models.RecordingModeDual:
		return "recording (dual channel)"
	case models.RecordingModeSingle:
		return "recording (single channel)"
	default:
		return "not recording"
	}
}
