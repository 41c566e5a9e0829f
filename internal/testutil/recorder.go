package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"recwatch/internal/models"
)

// FakeRecorder is an in-process stand-in for the recording service HTTP API.
type FakeRecorder struct {
	Server *httptest.Server

	mu              sync.Mutex
	recording1      bool
	recording2      bool
	storage         models.StorageInfo
	files           []models.FileRecord
	config          models.RecorderConfig
	statusCode      int
	activeFilesCode int
	filesCode       int
	requests        map[string]int
	media           map[string][]byte
	uploads         []string
	block           chan struct{}
}

func NewFakeRecorder(t *testing.T) *FakeRecorder {
	t.Helper()

	f := &FakeRecorder{
		storage: models.StorageInfo{
			MountPath:    "/mnt/tfcard",
			TotalSpace:   "58G",
			UsedSpace:    "12G",
			FreeSpace:    "46G",
			UsagePercent: "21%",
		},
		config:          models.DefaultRecorderConfig(),
		statusCode:      http.StatusOK,
		activeFilesCode: http.StatusOK,
		filesCode:       http.StatusOK,
		requests:        make(map[string]int),
		media:           make(map[string][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", f.handleStatus)
	mux.HandleFunc("/api/files", f.handleFiles)
	mux.HandleFunc("/api/recording-files", f.handleRecordingFiles)
	mux.HandleFunc("/api/start", f.handleStart)
	mux.HandleFunc("/api/stop", f.handleStop)
	mux.HandleFunc("/api/config", f.handleConfig)
	mux.HandleFunc("/api/delete-file", f.handleDelete)
	mux.HandleFunc("/api/upload-to-s3", f.handleUpload)
	mux.HandleFunc("/api/system-monitor", f.handleSystem)
	mux.HandleFunc("/api/preview/", f.handlePreview)

	f.Server = httptest.NewServer(f.count(mux))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeRecorder) URL() string {
	return f.Server.URL
}

func (f *FakeRecorder) SetRecording(ch1, ch2 bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recording1, f.recording2 = ch1, ch2
}

func (f *FakeRecorder) SetStorage(s models.StorageInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storage = s
}

func (f *FakeRecorder) SetFiles(files []models.FileRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append([]models.FileRecord(nil), files...)
}

// SetStatusCode makes /api/status answer with code. Anything but 200 is an error.
func (f *FakeRecorder) SetStatusCode(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCode = code
}

func (f *FakeRecorder) SetActiveFilesCode(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activeFilesCode = code
}

func (f *FakeRecorder) SetFilesCode(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filesCode = code
}

// BlockStatus holds every /api/status request until the returned func is called.
func (f *FakeRecorder) BlockStatus() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.block = ch
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.block = nil
			f.mu.Unlock()
			close(ch)
		})
	}
}

func (f *FakeRecorder) SetMedia(relativePath string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.media[relativePath] = content
}

func (f *FakeRecorder) Config() models.RecorderConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config
}

func (f *FakeRecorder) Uploads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uploads...)
}

// Requests returns how many times path was requested.
func (f *FakeRecorder) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *FakeRecorder) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests[r.URL.Path]++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeRecorder) handleStatus(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-r.Context().Done():
			return
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.statusCode != http.StatusOK {
		writeJSON(w, f.statusCode, map[string]interface{}{"success": false, "message": "status unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recording1": f.recording1,
		"recording2": f.recording2,
		"tfcard": map[string]string{
			"mountPath":    f.storage.MountPath,
			"totalSpace":   f.storage.TotalSpace,
			"usedSpace":    f.storage.UsedSpace,
			"freeSpace":    f.storage.FreeSpace,
			"usagePercent": f.storage.UsagePercent,
		},
	})
}

func (f *FakeRecorder) handleFiles(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.filesCode != http.StatusOK {
		writeJSON(w, f.filesCode, map[string]interface{}{"success": false, "message": "listing failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "files": wireFiles(f.files, false)})
}

func (f *FakeRecorder) handleRecordingFiles(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.activeFilesCode != http.StatusOK {
		writeJSON(w, f.activeFilesCode, map[string]interface{}{"success": false, "message": "listing failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "files": wireFiles(f.files, true)})
}

func (f *FakeRecorder) handleStart(w http.ResponseWriter, r *http.Request) {
	var cfg models.RecorderConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "invalid config"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.recording1 || f.recording2 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Already recording"})
		return
	}
	f.recording1 = true
	f.recording2 = cfg.DualStreamEnabled
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Recording started"})
}

func (f *FakeRecorder) handleStop(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.recording1 && !f.recording2 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Not recording"})
		return
	}
	f.recording1, f.recording2 = false, false
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Recording stopped"})
}

func (f *FakeRecorder) handleConfig(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, f.config)
		return
	}

	var cfg models.RecorderConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "invalid config"})
		return
	}
	f.config = cfg
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Configuration saved"})
}

func (f *FakeRecorder) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FilePath string `json:"filePath"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, file := range f.files {
		if file.FullPath == req.FilePath {
			f.files = append(f.files[:i], f.files[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "File deleted"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "File not found"})
}

func (f *FakeRecorder) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FilePath string `json:"filePath"`
		FileName string `json:"fileName"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.uploads = append(f.uploads, req.FilePath)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Uploaded " + req.FileName})
}

func (f *FakeRecorder) handleSystem(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"cpu_usage":    12.5,
		"memory_usage": 40.0,
		"disk_usage":   21.0,
		"network_rx":   1024,
		"network_tx":   2048,
		"load_average": 0.5,
		"uptime":       "3 days",
		"temperature":  51.2,
	})
}

func (f *FakeRecorder) handlePreview(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/api/preview/")

	f.mu.Lock()
	content, ok := f.media[rel]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", "attachment")
	}
	w.Header().Set("Content-Type", "video/mp4")
	w.Write(content)
}

func wireFiles(files []models.FileRecord, activeOnly bool) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(files))
	for _, file := range files {
		if activeOnly && !file.IsRecording {
			continue
		}
		out = append(out, map[string]interface{}{
			"name":         file.Name,
			"channel":      string(file.Channel),
			"sizeStr":      file.SizeDisplay,
			"size":         file.SizeBytes,
			"timeStr":      file.TimeDisplay,
			"modifyTime":   file.ModifyEpochSeconds,
			"isRecording":  file.IsRecording,
			"fullPath":     file.FullPath,
			"relativePath": file.RelativePath,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
