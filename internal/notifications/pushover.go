package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"recwatch/internal/config"
	"recwatch/internal/models"
)

type PushoverNotifier struct {
	config     *config.Config
	httpClient *http.Client
	enabled    bool
	apiURL     string
	now        func() time.Time
}

type pushoverRequest struct {
	Token     string `json:"token"`
	User      string `json:"user"`
	Message   string `json:"message"`
	Title     string `json:"title,omitempty"`
	Priority  int    `json:"priority,omitempty"`
	URL       string `json:"url,omitempty"`
	URLTitle  string `json:"url_title,omitempty"`
	Device    string `json:"device,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Sound     string `json:"sound,omitempty"`
	Retry     int    `json:"retry,omitempty"`
	Expire    int    `json:"expire,omitempty"`
}

type pushoverResponse struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Errors  []string `json:"errors,omitempty"`
	Receipt string   `json:"receipt,omitempty"`
}

const pushoverAPIURL = "https://api.pushover.net/1/messages.json"

func NewPushoverNotifier(cfg *config.Config) *PushoverNotifier {
	return &PushoverNotifier{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		enabled: cfg.GetNotifications().Pushover.Enabled,
		apiURL:  pushoverAPIURL,
		now:     time.Now,
	}
}

func (p *PushoverNotifier) IsEnabled() bool {
	return p.enabled
}

// NotifyConnectionLost is sent when a status poll fails after a success.
func (p *PushoverNotifier) NotifyConnectionLost(reason string) error {
	if !p.enabled {
		return nil
	}

	cfg := p.config.GetNotifications().Pushover

	message := "The recorder stopped answering status requests."
	if reason != "" {
		message += "\nCause: " + reason
	}
	message += "\nRecorder: " + p.config.GetRecorder().BaseURL

	req := p.newRequest("Recorder Offline", message, cfg.Priority)
	req.Sound = "falling"

	// If priority is 2 (emergency), set retry and expire
	if req.Priority == 2 {
		req.Retry = int(cfg.RetryInterval.Seconds())
		req.Expire = int(cfg.ExpireTime.Seconds())
	}

	return p.sendNotification(req)
}

func (p *PushoverNotifier) NotifyConnectionRestored(offlineSince time.Time) error {
	if !p.enabled {
		return nil
	}

	message := "The recorder is answering again."
	if !offlineSince.IsZero() {
		message += fmt.Sprintf("\nOffline since %s (%s)",
			offlineSince.Format("15:04:05"),
			humanize.RelTime(offlineSince, p.now(), "ago", "from now"))
	}

	req := p.newRequest("Recorder Online", message, -1)
	req.Sound = "none"
	return p.sendNotification(req)
}

func (p *PushoverNotifier) NotifyRecordingStarted(state models.RecordingState) error {
	if !p.enabled {
		return nil
	}

	labels := make([]string, 0, 2)
	for _, ch := range state.ActiveChannels() {
		labels = append(labels, ch.Label())
	}

	message := fmt.Sprintf("Mode: %s\nChannels: %s", modeLabel(state.Mode), strings.Join(labels, ", "))
	req := p.newRequest("Recording Started", message, 0)
	return p.sendNotification(req)
}

func (p *PushoverNotifier) NotifyRecordingStopped(elapsed string) error {
	if !p.enabled {
		return nil
	}

	message := "All channels stopped recording."
	if elapsed != "" && elapsed != "00:00:00" {
		message += "\nLast segment: " + elapsed
	}

	req := p.newRequest("Recording Stopped", message, 0)
	return p.sendNotification(req)
}

// NotifyStorageUnavailable is sent when the recorder's card runs out of space.
func (p *PushoverNotifier) NotifyStorageUnavailable(storage models.StorageInfo) error {
	if !p.enabled {
		return nil
	}

	var msg strings.Builder
	msg.WriteString("The recorder storage has no free space left.\n")
	if storage.MountPath != "" {
		msg.WriteString(fmt.Sprintf("Mount: %s\n", storage.MountPath))
	}
	msg.WriteString(fmt.Sprintf("Used: %s of %s (%s)", storage.UsedSpace, storage.TotalSpace, storage.UsagePercent))

	req := p.newRequest("Recorder Storage Full", msg.String(), 1)
	req.Sound = "persistent"
	return p.sendNotification(req)
}

func (p *PushoverNotifier) NotifyDownloadFailed(d *models.Download) error {
	if !p.enabled {
		return nil
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("File: %s\n", d.RelativePath))
	if d.SizeBytes > 0 {
		msg.WriteString(fmt.Sprintf("Transferred: %s\n", humanize.IBytes(uint64(d.SizeBytes))))
	}
	if d.ErrorMessage != "" {
		msg.WriteString(fmt.Sprintf("Error: %s\n", d.ErrorMessage))
	}
	msg.WriteString(fmt.Sprintf("Download ID: %s", d.ID))

	req := p.newRequest("Download Failed", msg.String(), 0)
	req.Sound = "falling"
	return p.sendNotification(req)
}

func (p *PushoverNotifier) NotifySystemAlert(title, message string, priority int) error {
	if !p.enabled {
		return nil
	}

	cfg := p.config.GetNotifications().Pushover

	req := p.newRequest(title, message, priority)

	// Adjust sound based on priority
	switch priority {
	case -2, -1:
		req.Sound = "none"
	case 0:
		req.Sound = "pushover"
	case 1:
		req.Sound = "persistent"
	case 2:
		req.Sound = "siren"
		req.Retry = int(cfg.RetryInterval.Seconds())
		req.Expire = int(cfg.ExpireTime.Seconds())
	}

	return p.sendNotification(req)
}

func (p *PushoverNotifier) newRequest(title, message string, priority int) pushoverRequest {
	cfg := p.config.GetNotifications().Pushover
	return pushoverRequest{
		Token:     cfg.Token,
		User:      cfg.User,
		Message:   message,
		Title:     "recwatch: " + title,
		Priority:  priority,
		Timestamp: p.now().Unix(),
		Sound:     "pushover",
	}
}

func (p *PushoverNotifier) sendNotification(req pushoverRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal pushover request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", "recwatch/1.0")

	slog.Debug("sending pushover notification",
		"title", req.Title,
		"priority", req.Priority)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send pushover notification: %w", err)
	}
	defer resp.Body.Close()

	var pushoverResp pushoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&pushoverResp); err != nil {
		return fmt.Errorf("failed to decode pushover response: %w", err)
	}

	if pushoverResp.Status != 1 {
		return fmt.Errorf("pushover API error: %s", strings.Join(pushoverResp.Errors, ", "))
	}

	slog.Info("pushover notification sent successfully",
		"request_id", pushoverResp.Request,
		"receipt", pushoverResp.Receipt)

	return nil
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
