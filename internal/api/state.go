package api

import (
	"errors"
	"net/http"

	"recwatch/internal/console"
	"recwatch/internal/models"
)

type setViewRequest struct {
	View string `json:"view"`
}

func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, http.StatusOK, h.engine.Snapshot(), "")
}

func (h *Handlers) SetView(w http.ResponseWriter, r *http.Request) {
	var req setViewRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, ok := models.ParseView(req.View)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Unknown view: "+req.View, nil)
		return
	}

	if err := h.engine.SetView(r.Context(), view); err != nil {
		if errors.Is(err, console.ErrInvalidView) {
			h.writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.writeError(w, http.StatusServiceUnavailable, "Console is not running", err)
		return
	}

	h.writeSuccess(w, http.StatusOK, h.engine.Snapshot(), "View changed")
}

// Refresh polls the recorder immediately, like returning to the page in a browser.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.engine.RefreshStatus() || !h.engine.RefreshFiles() {
		h.writeError(w, http.StatusServiceUnavailable, "Console is not running", nil)
		return
	}
	h.writeSuccess(w, http.StatusAccepted, nil, "Refresh requested")
}
