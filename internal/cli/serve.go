package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"recwatch/internal/api"
	"recwatch/internal/archive"
	"recwatch/internal/config"
	"recwatch/internal/downloader"
	"recwatch/internal/gatekeeper"
	"recwatch/internal/interfaces"
	"recwatch/internal/notifications"
	"recwatch/internal/version"
)

func NewServeCmd(deps *Dependencies) *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Monitor the recorder and serve the local console API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, deps, view)
		},
	}

	cmd.Flags().StringVar(&view, "view", "", "initial console view (default monitoring.initial_view)")

	return cmd
}

// newArchiver returns nil when archiving is disabled.
func newArchiver(cfg config.ArchiveConfig) (interfaces.Archiver, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	a, err := archive.NewS3Archiver(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize archiver: %w", err)
	}
	slog.Info("archiving downloads", "bucket", cfg.Bucket, "prefix", cfg.Prefix)
	return a, nil
}

func runServe(ctx context.Context, deps *Dependencies, view string) error {
	cfg := deps.Config

	repo, err := deps.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	notifier := notifications.NewPushoverNotifier(cfg)

	engine, err := deps.newConsole(view, repo, notifier)
	if err != nil {
		return err
	}

	archiver, err := newArchiver(cfg.GetArchive())
	if err != nil {
		return err
	}
	downloads := downloader.New(cfg, deps.Client, gatekeeper.New(cfg), repo, archiver, notifier)

	hub := api.NewHub()
	engine.AddPresenter(hub)

	router := mux.NewRouter()
	handlers := api.NewHandlers(engine, downloads, hub, version.Version)
	handlers.RegisterRoutes(router)

	serverConfig := cfg.GetServer()
	server := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// downloads stream whole segments before answering
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	engineCtx, cancelEngine := context.WithCancel(ctx)
	defer cancelEngine()

	engineDone := make(chan error, 1)
	go func() {
		engineDone <- engine.Run(engineCtx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting HTTP server", "addr", server.Addr, "recorder", cfg.GetRecorder().BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if deps.ConfigPath != "" {
		go cfg.Watch(engineCtx, deps.ConfigPath)
		go func() {
			changes := cfg.WatchForChanges()
			for {
				select {
				case <-engineCtx.Done():
					return
				case <-changes:
					slog.Info("configuration changed, updating logging")
					deps.setupLogging()
				}
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, initiating graceful shutdown")
	case err := <-serverErr:
		runErr = fmt.Errorf("HTTP server error: %w", err)
	case err := <-engineDone:
		engineDone <- err
		if err != nil {
			runErr = fmt.Errorf("monitoring stopped: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer shutdownCancel()

	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	cancelEngine()
	if err := <-engineDone; err != nil && runErr == nil {
		runErr = err
	}

	// the recorder keeps going without us; say so if it was mid-recording
	snap := engine.Snapshot()
	if snap.Recording.IsRecording() && notifier.IsEnabled() {
		message := fmt.Sprintf("recwatch is shutting down while the recorder is %s (%s elapsed).",
			snap.Recording.Mode, snap.DurationDisplay)
		if err := notifier.NotifySystemAlert("Monitor Shutdown", message, 0); err != nil {
			slog.Warn("failed to send shutdown notification", "error", err)
		}
	}

	slog.Info("shutdown completed")
	return runErr
}
