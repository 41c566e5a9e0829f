package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"recwatch/internal/config"
	"recwatch/internal/console"
	"recwatch/internal/interfaces"
	"recwatch/internal/models"
	"recwatch/internal/presenter"
	"recwatch/internal/recorder"
	"recwatch/internal/repository"
	"recwatch/internal/version"
)

// Dependencies is filled in by the root command before any subcommand runs.
type Dependencies struct {
	ConfigPath  string
	RecorderURL string
	Timeout     time.Duration

	Config *config.Config
	Client *recorder.Client
	Out    io.Writer
	LogOut io.Writer

	logMu   sync.Mutex
	logFile io.Closer
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.LogOut == nil {
		deps.LogOut = os.Stderr
	}

	rootCmd := &cobra.Command{
		Use:           "recwatch",
		Short:         "Monitor and control a dual-channel RTSP recorder",
		Long:          "recwatch polls a remote recording service, tracks what it is recording, and exposes control commands, a local API and a terminal dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return deps.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			deps.closeLog()
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.PersistentFlags().StringVarP(&deps.ConfigPath, "config", "c", "", "config file (default $"+config.EnvConfigPath+", /config/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&deps.RecorderURL, "recorder", "", "recorder base URL, overrides recorder.base_url")
	rootCmd.PersistentFlags().DurationVar(&deps.Timeout, "timeout", time.Minute, "overall timeout for one-shot commands")

	rootCmd.AddCommand(NewServeCmd(deps))
	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewStatusCmd(deps))
	rootCmd.AddCommand(NewFilesCmd(deps))
	rootCmd.AddCommand(NewStartCmd(deps))
	rootCmd.AddCommand(NewStopCmd(deps))
	rootCmd.AddCommand(NewConfigCmd(deps))
	rootCmd.AddCommand(NewSystemCmd(deps))
	rootCmd.AddCommand(NewDownloadCmd(deps))
	rootCmd.AddCommand(NewDeleteCmd(deps))
	rootCmd.AddCommand(NewUploadCmd(deps))
	rootCmd.AddCommand(NewVersionCmd(deps))

	return rootCmd
}

func (d *Dependencies) load() error {
	path := config.ResolvePath(d.ConfigPath)

	var cfg *config.Config
	if path == "" {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}
	if d.RecorderURL != "" {
		cfg.Recorder.BaseURL = d.RecorderURL
	}

	d.ConfigPath = path
	d.Config = cfg
	d.setupLogging()

	slog.Debug("configuration loaded", "config_path", path)

	rc := cfg.GetRecorder()
	d.Client = recorder.NewClient(rc.BaseURL, recorder.WithTimeouts(rc.StatusTimeout, rc.ActiveFilesTimeout, rc.CommandTimeout))
	return nil
}

// setupLogging (re)installs logging from the current config.
func (d *Dependencies) setupLogging() {
	d.logMu.Lock()
	defer d.logMu.Unlock()

	previous := d.logFile
	d.logFile = setupLogging(d.Config.GetLogging(), d.LogOut)
	if previous != nil {
		previous.Close()
	}
}

func (d *Dependencies) closeLog() {
	d.logMu.Lock()
	defer d.logMu.Unlock()
	if d.logFile != nil {
		d.logFile.Close()
		d.logFile = nil
	}
}

func (d *Dependencies) terminal() *presenter.Terminal {
	return presenter.NewTerminal(d.Out, d.Config.Location())
}

// commandContext bounds a one-shot command by --timeout.
func (d *Dependencies) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.Timeout)
}

func (d *Dependencies) openRepository() (*repository.Repository, error) {
	db := d.Config.GetDatabase()
	repo, err := repository.New(db.Path, repository.WithMaxLogEntries(db.MaxLogEntries))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("database initialized", "path", db.Path)
	return repo, nil
}

// newConsole builds the monitoring engine from config. view overrides
// monitoring.initial_view when set.
func (d *Dependencies) newConsole(view string, store interfaces.LogStore, notifier interfaces.Notifier) (*console.Console, error) {
	mon := d.Config.GetMonitoring()
	if view == "" {
		view = mon.InitialView
	}
	initial, ok := models.ParseView(view)
	if !ok {
		return nil, fmt.Errorf("%w: %q", console.ErrInvalidView, view)
	}

	return console.New(d.Client, console.Options{
		Location:    d.Config.Location(),
		Intervals:   console.IntervalsFrom(mon),
		InitialView: initial,
		LogStore:    store,
		Notifier:    notifier,
	})
}
