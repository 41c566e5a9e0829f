package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/spf13/cobra"

	"recwatch/internal/downloader"
	"recwatch/internal/duration"
	"recwatch/internal/gatekeeper"
	"recwatch/internal/models"
	"recwatch/internal/recorder"
	"recwatch/internal/state"
	"recwatch/internal/version"
)

func printJSON(deps *Dependencies, v interface{}) error {
	enc := json.NewEncoder(deps.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// snapshotOf derives a one-off snapshot from a single status poll and file
// listing, the way the console would after its first round of requests.
func snapshotOf(status *models.RemoteStatus, files []models.FileRecord, now time.Time, loc *time.Location) *models.Snapshot {
	machine := state.NewMachine()
	machine.Apply(*status)
	current := machine.State()

	models.SortNewestFirst(files)
	active := current.OnActiveChannels(recorder.ActiveFrom(files))

	estimate := models.UnknownDuration
	if current.IsRecording() {
		estimate = duration.Estimate(now, active, loc)
	}

	return &models.Snapshot{
		Connection:       models.ConnectionStatus{Online: true, Since: now},
		Recording:        current,
		Status:           status,
		StorageAvailable: status.Storage.Available(),
		Files:            files,
		ActiveFileCount:  len(active),
		TotalFileCount:   len(files),
		TotalSizeBytes:   models.TotalSize(files),
		Duration:         estimate,
		DurationDisplay:  duration.Format(estimate),
		View:             models.ViewDashboard,
		UpdatedAt:        now,
	}
}

func NewStatusCmd(deps *Dependencies) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recording state, storage and the most recent files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := deps.commandContext(cmd)
			defer cancel()

			status, err := deps.Client.Poll(ctx)
			if err != nil {
				return fmt.Errorf("recorder unavailable: %s", recorder.Describe(err))
			}

			files, err := deps.Client.ListAll(ctx)
			if err != nil {
				slog.Warn("failed to list recordings", "error", err)
			}

			snap := snapshotOf(status, files, time.Now(), deps.Config.Location())
			if asJSON {
				return printJSON(deps, snap)
			}
			deps.terminal().Dashboard(snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func NewFilesCmd(deps *Dependencies) *cobra.Command {
	var (
		channel string
		filter  models.FileFilter
		active  bool
		limit   int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List recordings on the recorder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := deps.commandContext(cmd)
			defer cancel()

			if channel != "" {
				ch, err := models.ParseChannel(channel)
				if err != nil {
					return err
				}
				filter.Channel = ch
			}

			var files []models.FileRecord
			var err error
			if active {
				files, err = deps.Client.ListActive(ctx)
			} else {
				files, err = deps.Client.ListAll(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list recordings: %s", recorder.Describe(err))
			}

			models.SortNewestFirst(files)
			files = filter.Apply(files, deps.Config.Location())
			if limit > 0 && limit < len(files) {
				files = files[:limit]
			}

			if asJSON {
				return printJSON(deps, files)
			}
			deps.terminal().Files(files)
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "only this channel (videos1 or videos2)")
	cmd.Flags().StringVar(&filter.StartDate, "from", "", "first modify date to include, YYYY-MM-DD")
	cmd.Flags().StringVar(&filter.EndDate, "to", "", "last modify date to include, YYYY-MM-DD")
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "case-insensitive name search")
	cmd.Flags().BoolVar(&active, "active", false, "only files still being written")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print files as JSON")
	return cmd
}

func NewStartCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start recording with the recorder's current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := deps.commandContext(cmd)
			defer cancel()
			term := deps.terminal()

			status, err := deps.Client.Poll(ctx)
			if err != nil {
				return fmt.Errorf("recorder unavailable: %s", recorder.Describe(err))
			}
			if status.AnyActive() {
				term.Warning("already recording")
				return nil
			}

			cfg, err := deps.Client.GetConfig(ctx)
			if err != nil {
				return fmt.Errorf("failed to load recorder config: %s", recorder.Describe(err))
			}

			msg, err := deps.Client.Start(ctx, *cfg)
			if err != nil {
				return fmt.Errorf("failed to start recording: %s", recorder.Describe(err))
			}
			term.Success(msg)
			return nil
		},
	}
}

func NewStopCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := deps.commandContext(cmd)
			defer cancel()
			term := deps.terminal()

			status, err := deps.Client.Poll(ctx)
			if err != nil {
				return fmt.Errorf("recorder unavailable: %s", recorder.Describe(err))
			}
			if !status.AnyActive() {
				term.Warning("not recording")
				return nil
			}

			msg, err := deps.Client.Stop(ctx)
			if err != nil {
				return fmt.Errorf("failed to stop recording: %s", recorder.Describe(err))
			}
			term.Success(msg)
			return nil
		},
	}
}

func NewSystemCmd(deps *Dependencies) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "system",
		Short: "Show the recorder host's resource usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := deps.commandContext(cmd)
			defer cancel()

			metrics, err := deps.Client.SystemMonitor(ctx)
			if err != nil {
				return fmt.Errorf("failed to load system metrics: %s", recorder.Describe(err))
			}
			if asJSON {
				return printJSON(deps, metrics)
			}
			deps.terminal().System(metrics)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print metrics as JSON")
	return cmd
}

// findRecording looks a relative path up in the recorder's inventory.
func findRecording(cmd *cobra.Command, deps *Dependencies, relativePath string) (models.FileRecord, error) {
	ctx, cancel := deps.commandContext(cmd)
	defer cancel()

	files, err := deps.Client.ListAll(ctx)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("failed to list recordings: %s", recorder.Describe(err))
	}
	for _, f := range files {
		if f.RelativePath == relativePath || f.FullPath == relativePath {
			return f, nil
		}
	}
	return models.FileRecord{}, fmt.Errorf("recording not found: %s", relativePath)
}

func NewDownloadCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <relative-path>...",
		Short: "Copy recordings to the local downloads directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			term := deps.terminal()

			repo, err := deps.openRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			archiver, err := newArchiver(cfg.GetArchive())
			if err != nil {
				return err
			}
			d := downloader.New(cfg, deps.Client, gatekeeper.New(cfg), repo, archiver, nil)

			failed := 0
			for _, rel := range args {
				file, err := findRecording(cmd, deps, rel)
				if err != nil {
					term.Error(err.Error())
					failed++
					continue
				}

				ctx, cancel := deps.commandContext(cmd)
				rec, err := d.Download(ctx, file)
				cancel()
				if rec != nil {
					term.Download(rec)
				} else if err != nil {
					term.Error(err.Error())
				}
				if err != nil {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d download(s) failed", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

func NewDeleteCmd(deps *Dependencies) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <full-path>",
		Short: "Delete a recording on the recorder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", args[0])
			}

			ctx, cancel := deps.commandContext(cmd)
			defer cancel()

			msg, err := deps.Client.DeleteFile(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete %s: %s", args[0], recorder.Describe(err))
			}
			deps.terminal().Success(msg)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}

func NewUploadCmd(deps *Dependencies) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "upload <full-path>",
		Short: "Ask the recorder to upload a recording to its S3 bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := deps.commandContext(cmd)
			defer cancel()

			if name == "" {
				name = path.Base(args[0])
			}
			msg, err := deps.Client.UploadToS3(ctx, args[0], name)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %s", args[0], recorder.Describe(err))
			}
			deps.terminal().Success(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "object name (default the file's base name)")
	return cmd
}

func NewVersionCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(deps.Out, version.Full())
		},
	}
}
