package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"recwatch/internal/models"
)

var startTime = time.Now()

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(startTime).String(),
		"version":   h.version,
		"recorder":  snap.Connection,
		"recording": snap.Recording.Mode,
	}

	if h.downloads != nil {
		health["downloads"] = h.downloads.DiskStatus()
	}

	if !snap.Connection.Online {
		health["status"] = "degraded"
	}

	h.writeSuccess(w, http.StatusOK, health, "Service is healthy")
}

func (h *Handlers) GetSystem(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.engine.FetchSystem(r.Context())
	if err != nil {
		h.writeCommandError(w, "Failed to load system metrics", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, metrics, "")
}

func (h *Handlers) GetLogs(w http.ResponseWriter, r *http.Request) {
	filter := models.LogFilter{}

	for _, raw := range r.URL.Query()["level"] {
		for _, level := range strings.Split(raw, ",") {
			if level = strings.TrimSpace(level); level != "" {
				filter.Levels = append(filter.Levels, models.LogLevel(level))
			}
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			h.writeError(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		filter.Limit = limit
	}

	entries, err := h.engine.Logs(filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to get logs", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, entries, "")
}

func (h *Handlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		h.writeError(w, http.StatusServiceUnavailable, "Streaming is not enabled", nil)
		return
	}
	h.hub.ServeHTTP(w, r)
}
