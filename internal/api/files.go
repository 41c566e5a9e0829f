package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"recwatch/internal/downloader"
	"recwatch/internal/models"
)

type deleteFileRequest struct {
	FilePath string `json:"file_path"`
}

type uploadFileRequest struct {
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}

type downloadFileRequest struct {
	RelativePath string `json:"relative_path"`
}

type filesResponse struct {
	Files          []models.FileRecord `json:"files"`
	Count          int                 `json:"count"`
	TotalSizeBytes int64               `json:"total_size_bytes"`
	Filter         models.FileFilter   `json:"filter"`
}

// parseFileFilter reads channel, start, end and q from the query string.
func parseFileFilter(r *http.Request) (models.FileFilter, error) {
	q := r.URL.Query()
	filter := models.FileFilter{
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
		Search:    q.Get("q"),
	}
	if ch := q.Get("channel"); ch != "" {
		channel, err := models.ParseChannel(ch)
		if err != nil {
			return filter, err
		}
		filter.Channel = channel
	}
	return filter, nil
}

func (h *Handlers) GetFiles(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFileFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	files := h.engine.FilteredFiles(filter)
	if filter.IsZero() {
		filter = h.engine.Snapshot().Filter
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			h.writeError(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		if limit < len(files) {
			files = files[:limit]
		}
	}

	h.writeSuccess(w, http.StatusOK, filesResponse{
		Files:          files,
		Count:          len(files),
		TotalSizeBytes: models.TotalSize(files),
		Filter:         filter,
	}, "")
}

func (h *Handlers) SetFilter(w http.ResponseWriter, r *http.Request) {
	var filter models.FileFilter
	if !h.decode(w, r, &filter) {
		return
	}
	if filter.Channel != "" {
		if _, err := models.ParseChannel(string(filter.Channel)); err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	if err := h.engine.SetFilter(r.Context(), filter); err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "Console is not running", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, filter, "Filter updated")
}

func (h *Handlers) DeleteFile(w http.ResponseWriter, r *http.Request) {
	var req deleteFileRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.FilePath == "" {
		h.writeError(w, http.StatusBadRequest, "file_path is required", nil)
		return
	}

	msg, err := h.engine.DeleteFile(r.Context(), req.FilePath)
	if err != nil {
		h.writeCommandError(w, "Failed to delete file", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, nil, msg)
}

func (h *Handlers) UploadFile(w http.ResponseWriter, r *http.Request) {
	var req uploadFileRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.FilePath == "" {
		h.writeError(w, http.StatusBadRequest, "file_path is required", nil)
		return
	}

	msg, err := h.engine.UploadToS3(r.Context(), req.FilePath, req.FileName)
	if err != nil {
		h.writeCommandError(w, "Failed to upload file", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, nil, msg)
}

func (h *Handlers) DownloadFile(w http.ResponseWriter, r *http.Request) {
	if h.downloads == nil {
		h.writeError(w, http.StatusServiceUnavailable, "Downloads are not configured", nil)
		return
	}

	var req downloadFileRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.RelativePath == "" {
		h.writeError(w, http.StatusBadRequest, "relative_path is required", nil)
		return
	}

	file, ok := h.findFile(req.RelativePath)
	if !ok {
		h.writeError(w, http.StatusNotFound, "Recording not found: "+req.RelativePath, nil)
		return
	}

	download, err := h.downloads.Download(r.Context(), file)
	if err != nil {
		if errors.Is(err, downloader.ErrBlocked) {
			h.engine.Record(models.LogLevelWarning, "download", err.Error())
			h.writeError(w, http.StatusInsufficientStorage, err.Error(), nil)
			return
		}
		h.engine.Record(models.LogLevelError, "download", fmt.Sprintf("failed to download %s", file.Name))
		if download != nil {
			h.writeError(w, http.StatusBadGateway, "Download failed: "+download.ErrorMessage, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Download failed", err)
		return
	}

	h.engine.Record(models.LogLevelSuccess, "download", "downloaded "+file.Name)
	h.writeSuccess(w, http.StatusCreated, download, "Recording downloaded")
}

func (h *Handlers) findFile(relativePath string) (models.FileRecord, bool) {
	for _, f := range h.engine.Snapshot().Files {
		if f.RelativePath == relativePath {
			return f, true
		}
	}
	return models.FileRecord{}, false
}

func (h *Handlers) GetDownloads(w http.ResponseWriter, r *http.Request) {
	if h.downloads == nil {
		h.writeError(w, http.StatusServiceUnavailable, "Downloads are not configured", nil)
		return
	}

	filter := models.DownloadFilter{}
	for _, s := range r.URL.Query()["status"] {
		filter.Status = append(filter.Status, models.DownloadStatus(s))
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	downloads, err := h.downloads.History(filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to get downloads", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, downloads, "")
}
