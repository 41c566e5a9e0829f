package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"recwatch/internal/interfaces"
	"recwatch/internal/models"
)

// Engine is the part of the console the API drives.
type Engine interface {
	Snapshot() *models.Snapshot
	FilteredFiles(filter models.FileFilter) []models.FileRecord
	SetView(ctx context.Context, view models.View) error
	SetFilter(ctx context.Context, filter models.FileFilter) error
	RefreshStatus() bool
	RefreshFiles() bool
	FetchSystem(ctx context.Context) (*models.SystemMetrics, error)
	StartRecording(ctx context.Context) (string, error)
	StopRecording(ctx context.Context) (string, error)
	GetConfig(ctx context.Context) (*models.RecorderConfig, error)
	UpdateConfig(ctx context.Context, cfg models.RecorderConfig) (string, error)
	DeleteFile(ctx context.Context, fullPath string) (string, error)
	UploadToS3(ctx context.Context, fullPath, fileName string) (string, error)
	Logs(filter models.LogFilter) ([]*models.LogEntry, error)
	Record(level models.LogLevel, source, message string)
}

// Downloads copies recordings to local disk.
type Downloads interface {
	Download(ctx context.Context, file models.FileRecord) (*models.Download, error)
	History(filter models.DownloadFilter) ([]*models.Download, error)
	DiskStatus() interfaces.DiskStatus
}

type Handlers struct {
	engine    Engine
	downloads Downloads
	hub       *Hub
	version   string
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// NewHandlers wires the API. downloads and hub may be nil; their routes then
// answer 503.
func NewHandlers(engine Engine, downloads Downloads, hub *Hub, version string) *Handlers {
	return &Handlers{
		engine:    engine,
		downloads: downloads,
		hub:       hub,
		version:   version,
	}
}

func (h *Handlers) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	// Engine state
	api.HandleFunc("/state", h.GetState).Methods("GET")
	api.HandleFunc("/view", h.SetView).Methods("PUT")
	api.HandleFunc("/refresh", h.Refresh).Methods("POST")

	// Recording control
	api.HandleFunc("/recording/start", h.StartRecording).Methods("POST")
	api.HandleFunc("/recording/stop", h.StopRecording).Methods("POST")
	api.HandleFunc("/config", h.GetConfig).Methods("GET")
	api.HandleFunc("/config", h.UpdateConfig).Methods("PUT")

	// Files
	api.HandleFunc("/files", h.GetFiles).Methods("GET")
	api.HandleFunc("/files/filter", h.SetFilter).Methods("PUT")
	api.HandleFunc("/files/delete", h.DeleteFile).Methods("POST")
	api.HandleFunc("/files/upload", h.UploadFile).Methods("POST")
	api.HandleFunc("/files/download", h.DownloadFile).Methods("POST")
	api.HandleFunc("/downloads", h.GetDownloads).Methods("GET")

	// System endpoints
	api.HandleFunc("/system", h.GetSystem).Methods("GET")
	api.HandleFunc("/logs", h.GetLogs).Methods("GET")
	api.HandleFunc("/health", h.HealthCheck).Methods("GET")
	api.HandleFunc("/ws", h.ServeWS).Methods("GET")

	api.Use(corsMiddleware)
	api.Use(loggingMiddleware)
	api.Use(jsonContentTypeMiddleware)
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return false
	}
	return true
}

func (h *Handlers) writeSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, statusCode int, message string, err error) {
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	if err != nil {
		slog.Error("API error", "message", message, "error", err)
	} else {
		slog.Warn("API error", "message", message)
	}

	if jsonErr := json.NewEncoder(w).Encode(response); jsonErr != nil {
		slog.Error("failed to encode error response", "error", jsonErr)
	}
}
