package api

import (
	"errors"
	"net/http"

	"recwatch/internal/console"
	"recwatch/internal/models"
	"recwatch/internal/recorder"
)

func (h *Handlers) StartRecording(w http.ResponseWriter, r *http.Request) {
	msg, err := h.engine.StartRecording(r.Context())
	if err != nil {
		h.writeCommandError(w, "Failed to start recording", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, nil, msg)
}

func (h *Handlers) StopRecording(w http.ResponseWriter, r *http.Request) {
	msg, err := h.engine.StopRecording(r.Context())
	if err != nil {
		h.writeCommandError(w, "Failed to stop recording", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, nil, msg)
}

func (h *Handlers) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.engine.GetConfig(r.Context())
	if err != nil {
		h.writeCommandError(w, "Failed to load recorder config", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, cfg, "")
}

func (h *Handlers) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.RecorderConfig
	if !h.decode(w, r, &cfg) {
		return
	}

	if err := cfg.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	msg, err := h.engine.UpdateConfig(r.Context(), cfg)
	if err != nil {
		h.writeCommandError(w, "Failed to update recorder config", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, cfg, msg)
}

// writeCommandError maps console and recorder errors to HTTP codes.
func (h *Handlers) writeCommandError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, console.ErrAlreadyRecording), errors.Is(err, console.ErrNotRecording):
		h.writeError(w, http.StatusConflict, err.Error(), nil)
		return
	}

	switch recorder.Kind(err) {
	case recorder.KindCommand:
		h.writeError(w, http.StatusConflict, message+": "+recorder.Describe(err), nil)
	case recorder.KindTimeout:
		h.writeError(w, http.StatusGatewayTimeout, message+": "+recorder.Describe(err), err)
	case recorder.KindNetwork, recorder.KindHTTP, recorder.KindParse:
		h.writeError(w, http.StatusBadGateway, message+": "+recorder.Describe(err), err)
	default:
		h.writeError(w, http.StatusInternalServerError, message, err)
	}
}
