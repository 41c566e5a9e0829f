package cli

import (
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the recorder in the terminal (Ctrl+C to stop)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// operator log lines already reach the terminal; keep slog to the log file
			deps.LogOut = io.Discard
			deps.setupLogging()

			repo, err := deps.openRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			engine, err := deps.newConsole(view, repo, nil)
			if err != nil {
				return err
			}
			engine.AddPresenter(deps.terminal())

			return engine.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&view, "view", "", "console view, e.g. recording or files (default monitoring.initial_view)")

	return cmd
}
