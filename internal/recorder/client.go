package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recwatch/internal/models"
)

const (
	DefaultStatusTimeout      = 5 * time.Second
	DefaultActiveFilesTimeout = 3 * time.Second
	DefaultCommandTimeout     = 30 * time.Second

	userAgent = "recwatch/1.0"
)

// Commands is the set of recorder operations the console drives.
type Commands interface {
	Poll(ctx context.Context) (*models.RemoteStatus, error)
	ListAll(ctx context.Context) ([]models.FileRecord, error)
	ListActive(ctx context.Context) ([]models.FileRecord, error)
	Start(ctx context.Context, cfg models.RecorderConfig) (string, error)
	Stop(ctx context.Context) (string, error)
	GetConfig(ctx context.Context) (*models.RecorderConfig, error)
	UpdateConfig(ctx context.Context, cfg models.RecorderConfig) (string, error)
	DeleteFile(ctx context.Context, filePath string) (string, error)
	UploadToS3(ctx context.Context, filePath, fileName string) (string, error)
	SystemMonitor(ctx context.Context) (*models.SystemMetrics, error)
	Download(ctx context.Context, relativePath string, w io.Writer) (int64, error)
}

var _ Commands = (*Client)(nil)

// Client represents an HTTP client for the recording service
type Client struct {
	baseURL    string
	httpClient *http.Client

	statusTimeout      time.Duration
	activeFilesTimeout time.Duration
	commandTimeout     time.Duration
	now                func() time.Time
}

type Option func(*Client)

// WithTimeouts overrides the status, active-files and command deadlines. Zero
// values keep the defaults.
func WithTimeouts(status, activeFiles, command time.Duration) Option {
	return func(c *Client) {
		if status > 0 {
			c.statusTimeout = status
		}
		if activeFiles > 0 {
			c.activeFilesTimeout = activeFiles
		}
		if command > 0 {
			c.commandTimeout = command
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new recorder HTTP client. The http.Client carries no
// global timeout: deadlines are applied per operation.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		httpClient:         &http.Client{},
		statusTimeout:      DefaultStatusTimeout,
		activeFilesTimeout: DefaultActiveFilesTimeout,
		commandTimeout:     DefaultCommandTimeout,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Poll fetches the aggregate recording/storage status.
func (c *Client) Poll(ctx context.Context) (*models.RemoteStatus, error) {
	const op = "status"

	var payload statusPayload
	if err := c.makeRequest(ctx, op, http.MethodGet, "/api/status", c.statusTimeout, nil, &payload); err != nil {
		return nil, err
	}

	status, err := payload.toModel()
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	status.ReceivedAt = c.now()
	return status, nil
}

// ListAll returns the full file inventory in service order.
func (c *Client) ListAll(ctx context.Context) ([]models.FileRecord, error) {
	const op = "list files"

	var payload filesPayload
	if err := c.makeRequest(ctx, op, http.MethodGet, "/api/files", 0, nil, &payload); err != nil {
		return nil, err
	}

	files, err := payload.toModel(false)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return files, nil
}

// ListActive returns the files the service reports as currently being written.
func (c *Client) ListActive(ctx context.Context) ([]models.FileRecord, error) {
	const op = "list recording files"

	var payload filesPayload
	if err := c.makeRequest(ctx, op, http.MethodGet, "/api/recording-files", c.activeFilesTimeout, nil, &payload); err != nil {
		return nil, err
	}

	files, err := payload.toModel(true)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return files, nil
}

// ActiveFrom derives the active subset from a full listing.
func ActiveFrom(files []models.FileRecord) []models.FileRecord {
	active := make([]models.FileRecord, 0)
	for _, f := range files {
		if f.IsRecording {
			active = append(active, f)
		}
	}
	return active
}

// Start asks the service to begin recording with cfg.
func (c *Client) Start(ctx context.Context, cfg models.RecorderConfig) (string, error) {
	return c.command(ctx, "start recording", "/api/start", cfg)
}

// Stop asks the service to stop all recording.
func (c *Client) Stop(ctx context.Context) (string, error) {
	return c.command(ctx, "stop recording", "/api/stop", nil)
}

// GetConfig fetches the remote recorder configuration.
func (c *Client) GetConfig(ctx context.Context) (*models.RecorderConfig, error) {
	var cfg models.RecorderConfig
	if err := c.makeRequest(ctx, "get config", http.MethodGet, "/api/config", c.commandTimeout, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateConfig replaces the remote recorder configuration. Invalid configs are
// rejected before any request is made.
func (c *Client) UpdateConfig(ctx context.Context, cfg models.RecorderConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid recorder config: %w", err)
	}
	return c.command(ctx, "update config", "/api/config", cfg)
}

// DeleteFile removes a recording by its full path on the service.
func (c *Client) DeleteFile(ctx context.Context, filePath string) (string, error) {
	return c.command(ctx, "delete file", "/api/delete-file", deleteFileRequest{FilePath: filePath})
}

// UploadToS3 asks the service to push a recording to its object store.
func (c *Client) UploadToS3(ctx context.Context, filePath, fileName string) (string, error) {
	return c.command(ctx, "upload file", "/api/upload-to-s3", uploadRequest{FilePath: filePath, FileName: fileName})
}

// SystemMonitor fetches host metrics from the service.
func (c *Client) SystemMonitor(ctx context.Context) (*models.SystemMetrics, error) {
	const op = "system monitor"

	var payload systemPayload
	if err := c.makeRequest(ctx, op, http.MethodGet, "/api/system-monitor", c.commandTimeout, nil, &payload); err != nil {
		return nil, err
	}

	metrics, err := payload.toModel()
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	metrics.ReceivedAt = c.now()
	return metrics, nil
}

// Download streams a recording into w and returns the number of bytes copied.
func (c *Client) Download(ctx context.Context, relativePath string, w io.Writer) (int64, error) {
	const op = "download"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PreviewURL(relativePath, true), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, classifyTransportError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &HTTPError{Op: op, Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, classifyTransportError(op, 0, err)
	}
	return n, nil
}

// PreviewURL builds the media URL for a relative path such as "videos1/x.mp4".
func (c *Client) PreviewURL(relativePath string, download bool) string {
	segments := strings.Split(strings.TrimLeft(relativePath, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	u := c.baseURL + "/api/preview/" + strings.Join(segments, "/")
	if download {
		u += "?download=1"
	}
	return u
}

func (c *Client) command(ctx context.Context, op, endpoint string, request interface{}) (string, error) {
	var payload commandPayload
	if err := c.makeRequest(ctx, op, http.MethodPost, endpoint, c.commandTimeout, request, &payload); err != nil {
		return "", err
	}
	if payload.Success == nil {
		return "", &ParseError{Op: op, Err: fmt.Errorf("missing success flag")}
	}
	if !*payload.Success {
		return "", &CommandError{Op: op, Message: payload.Message}
	}
	return payload.Message, nil
}

// makeRequest makes an HTTP request to the recording service. A positive
// timeout bounds the whole exchange, body included.
func (c *Client) makeRequest(ctx context.Context, op, method, endpoint string, timeout time.Duration, request interface{}, response interface{}) error {
	var body io.Reader
	if request != nil {
		jsonData, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(op, timeout, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(op, timeout, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Op: op, Code: resp.StatusCode, Message: errorMessage(bodyBytes)}
	}

	if response != nil {
		if err := json.Unmarshal(bodyBytes, response); err != nil {
			return &ParseError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}

// errorMessage extracts the message of a {success:false,message} body, falling
// back to the raw text.
func errorMessage(body []byte) string {
	var payload commandPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
