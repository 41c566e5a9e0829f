package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const EnvConfigPath = "RECWATCH_CONFIG"

var searchPaths = []string{"/config/config.yaml", "config.yaml"}

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Recorder      RecorderConfig      `yaml:"recorder"`
	Monitoring    MonitoringConfig    `yaml:"monitoring"`
	Downloads     DownloadsConfig     `yaml:"downloads"`
	Archive       ArchiveConfig       `yaml:"archive"`
	Database      DatabaseConfig      `yaml:"database"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`

	mu       sync.RWMutex
	watchers []chan<- struct{}
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RecorderConfig points at the remote recording service.
type RecorderConfig struct {
	BaseURL            string        `yaml:"base_url"`
	StatusTimeout      time.Duration `yaml:"status_timeout"`
	ActiveFilesTimeout time.Duration `yaml:"active_files_timeout"`
	CommandTimeout     time.Duration `yaml:"command_timeout"`
	// Timezone used to read start times out of file names. Empty means local.
	Timezone string `yaml:"timezone"`
}

type MonitoringConfig struct {
	StatusInterval         time.Duration `yaml:"status_interval"`
	RecordingFilesInterval time.Duration `yaml:"recording_files_interval"`
	FileManagementInterval time.Duration `yaml:"file_management_interval"`
	PreviewInterval        time.Duration `yaml:"preview_interval"`
	DurationInterval       time.Duration `yaml:"duration_interval"`
	InitialView            string        `yaml:"initial_view"`
}

type DownloadsConfig struct {
	LocalPath       string `yaml:"local_path"`
	MinFreeSpace    string `yaml:"min_free_space"`
	MaxUsagePercent int    `yaml:"max_usage_percent"`
}

// ArchiveConfig controls pushing downloaded recordings to an S3 compatible bucket.
type ArchiveConfig struct {
	Enabled           bool   `yaml:"enabled"`
	Bucket            string `yaml:"bucket"`
	Region            string `yaml:"region"`
	Endpoint          string `yaml:"endpoint"`
	AccessKey         string `yaml:"access_key"`
	SecretKey         string `yaml:"secret_key"`
	Prefix            string `yaml:"prefix"`
	DeleteAfterUpload bool   `yaml:"delete_after_upload"`
}

type DatabaseConfig struct {
	Path          string `yaml:"path"`
	MaxLogEntries int    `yaml:"max_log_entries"`
}

type NotificationsConfig struct {
	Pushover PushoverConfig `yaml:"pushover"`
}

type PushoverConfig struct {
	Token         string        `yaml:"token"`
	User          string        `yaml:"user"`
	Enabled       bool          `yaml:"enabled"`
	Priority      int           `yaml:"priority"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	ExpireTime    time.Duration `yaml:"expire_time"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a configuration that works without a config file.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// ResolvePath picks the config file to load: the explicit path, then
// $RECWATCH_CONFIG, then the first existing search path. An empty result
// means no file was found.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads configuration from file with environment variable expansion.
// A .env file next to the config, or in the working directory, is applied
// first without overriding variables that are already set.
func Load(configPath string) (*Config, error) {
	loadDotEnv(configPath)
	return loadConfig(configPath)
}

func loadDotEnv(configPath string) {
	candidates := []string{".env"}
	if configPath != "" {
		candidates = append([]string{filepath.Join(filepath.Dir(configPath), ".env")}, candidates...)
	}

	seen := make(map[string]bool)
	for _, p := range candidates {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := godotenv.Load(abs); err != nil {
			slog.Warn("failed to load env file", "path", abs, "error", err)
			continue
		}
		slog.Debug("loaded env file", "path", abs)
	}
}

func loadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	content := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := config.ensureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.Recorder.BaseURL == "" {
		c.Recorder.BaseURL = "http://127.0.0.1:8080"
	}
	if c.Recorder.StatusTimeout == 0 {
		c.Recorder.StatusTimeout = 5 * time.Second
	}
	if c.Recorder.ActiveFilesTimeout == 0 {
		c.Recorder.ActiveFilesTimeout = 3 * time.Second
	}
	if c.Recorder.CommandTimeout == 0 {
		c.Recorder.CommandTimeout = 30 * time.Second
	}

	if c.Monitoring.StatusInterval == 0 {
		c.Monitoring.StatusInterval = 2 * time.Second
	}
	if c.Monitoring.RecordingFilesInterval == 0 {
		c.Monitoring.RecordingFilesInterval = 2 * time.Second
	}
	if c.Monitoring.FileManagementInterval == 0 {
		c.Monitoring.FileManagementInterval = 3 * time.Second
	}
	if c.Monitoring.PreviewInterval == 0 {
		c.Monitoring.PreviewInterval = 5 * time.Second
	}
	if c.Monitoring.DurationInterval == 0 {
		c.Monitoring.DurationInterval = time.Second
	}
	if c.Monitoring.InitialView == "" {
		c.Monitoring.InitialView = "dashboard"
	}

	if c.Downloads.LocalPath == "" {
		c.Downloads.LocalPath = "downloads"
	}
	if c.Downloads.MinFreeSpace == "" {
		c.Downloads.MinFreeSpace = "1GB"
	}
	if c.Downloads.MaxUsagePercent == 0 {
		c.Downloads.MaxUsagePercent = 95
	}

	if c.Database.Path == "" {
		c.Database.Path = ":memory:"
	}
	if c.Database.MaxLogEntries == 0 {
		c.Database.MaxLogEntries = 200
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 50
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 3
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = 28
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	u, err := url.Parse(c.Recorder.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid recorder base_url: %q", c.Recorder.BaseURL)
	}

	if c.Recorder.Timezone != "" {
		if _, err := time.LoadLocation(c.Recorder.Timezone); err != nil {
			return fmt.Errorf("invalid recorder timezone: %w", err)
		}
	}

	intervals := map[string]time.Duration{
		"status_interval":          c.Monitoring.StatusInterval,
		"recording_files_interval": c.Monitoring.RecordingFilesInterval,
		"file_management_interval": c.Monitoring.FileManagementInterval,
		"preview_interval":         c.Monitoring.PreviewInterval,
		"duration_interval":        c.Monitoring.DurationInterval,
	}
	for name, d := range intervals {
		if d < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if c.Downloads.MaxUsagePercent < 0 || c.Downloads.MaxUsagePercent > 100 {
		return fmt.Errorf("max_usage_percent must be between 0 and 100")
	}

	if c.Database.MaxLogEntries < 0 {
		return fmt.Errorf("max_log_entries cannot be negative")
	}

	if c.Archive.Enabled && c.Archive.Bucket == "" {
		return errors.New("archive bucket is required when archiving is enabled")
	}

	if c.Notifications.Pushover.Enabled {
		if c.Notifications.Pushover.Token == "" || strings.HasPrefix(c.Notifications.Pushover.Token, "${") {
			return fmt.Errorf("pushover token is required when notifications are enabled")
		}
		if c.Notifications.Pushover.User == "" || strings.HasPrefix(c.Notifications.Pushover.User, "${") {
			return fmt.Errorf("pushover user is required when notifications are enabled")
		}
	}

	return nil
}

func (c *Config) ensureDirectories() error {
	dirs := []string{c.Downloads.LocalPath}

	if c.Database.Path != ":memory:" && !strings.HasPrefix(c.Database.Path, "file:") {
		dirs = append(dirs, filepath.Dir(c.Database.Path))
	}

	if c.Logging.File != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Location returns the zone used to parse file name timestamps.
func (c *Config) Location() *time.Location {
	tz := c.GetRecorder().Timezone
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

// WatchForChanges registers a channel to receive notifications when config changes
func (c *Config) WatchForChanges() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan struct{}, 1)
	c.watchers = append(c.watchers, ch)
	return ch
}

// Watch reloads the config whenever the file changes until ctx is done.
func (c *Config) Watch(ctx context.Context, configPath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("failed to create config watcher", "error", err)
		return
	}
	defer watcher.Close()

	configDir := filepath.Dir(configPath)
	if err := watcher.Add(configDir); err != nil {
		slog.Error("failed to watch config directory", "error", err, "path", configDir)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) == filepath.Base(configPath) &&
				(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				slog.Info("config file changed, reloading", "file", configPath)

				// Small delay to ensure file write is complete
				time.Sleep(100 * time.Millisecond)

				if err := c.reload(configPath); err != nil {
					slog.Error("failed to reload config", "error", err)
				} else {
					c.notifyWatchers()
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		}
	}
}

// reload swaps in the sections that can change at runtime. Server, recorder
// and database settings need a restart.
func (c *Config) reload(configPath string) error {
	newConfig, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Monitoring = newConfig.Monitoring
	c.Downloads = newConfig.Downloads
	c.Archive = newConfig.Archive
	c.Notifications = newConfig.Notifications
	c.Logging = newConfig.Logging

	slog.Info("configuration reloaded successfully")
	return nil
}

func (c *Config) notifyWatchers() {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, watcher := range c.watchers {
		select {
		case watcher <- struct{}{}:
		default:
			// Non-blocking send - if buffer is full, skip
		}
	}
}

// GetServer returns a copy of the server configuration
func (c *Config) GetServer() ServerConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Server
}

// GetRecorder returns a copy of the recorder configuration
func (c *Config) GetRecorder() RecorderConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Recorder
}

// GetMonitoring returns a copy of the monitoring configuration
func (c *Config) GetMonitoring() MonitoringConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Monitoring
}

// GetDownloads returns a copy of the downloads configuration
func (c *Config) GetDownloads() DownloadsConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Downloads
}

func (c *Config) GetArchive() ArchiveConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Archive
}

// GetDatabase returns a copy of the database configuration
func (c *Config) GetDatabase() DatabaseConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Database
}

// GetNotifications returns a copy of the notifications configuration
func (c *Config) GetNotifications() NotificationsConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Notifications
}

// GetLogging returns a copy of the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Logging
}
