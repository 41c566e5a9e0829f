package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recwatch/internal/console"
	"recwatch/internal/downloader"
	"recwatch/internal/interfaces"
	"recwatch/internal/models"
	"recwatch/internal/monitor"
	"recwatch/internal/recorder"
	"recwatch/internal/testutil"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

var testStart = time.Date(2025, 6, 23, 15, 25, 15, 0, time.UTC)

type stubDownloads struct {
	mu        sync.Mutex
	err       error
	requested []models.FileRecord
}

func (s *stubDownloads) Download(ctx context.Context, file models.FileRecord) (*models.Download, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested = append(s.requested, file)
	if s.err != nil {
		return nil, s.err
	}
	return &models.Download{
		ID:           "dl-1",
		RelativePath: file.RelativePath,
		LocalPath:    "/downloads/" + file.RelativePath,
		SizeBytes:    file.SizeBytes,
		Status:       models.DownloadStatusCompleted,
	}, nil
}

func (s *stubDownloads) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubDownloads) Requested() []models.FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FileRecord(nil), s.requested...)
}

func (s *stubDownloads) History(filter models.DownloadFilter) ([]*models.Download, error) {
	return []*models.Download{{ID: "dl-1", Status: models.DownloadStatusCompleted}}, nil
}

func (s *stubDownloads) DiskStatus() interfaces.DiskStatus {
	return interfaces.DiskStatus{Path: "/downloads", FreeBytes: 1 << 30}
}

type testEnv struct {
	server  *httptest.Server
	console *console.Console
	fake    *testutil.FakeRecorder
	hub     *Hub
	files   []models.FileRecord
}

func setupTestServer(t *testing.T, downloads Downloads) *testEnv {
	t.Helper()

	fake := testutil.NewFakeRecorder(t)
	files := []models.FileRecord{
		testutil.CreateTestFile(models.ChannelA, testStart.Add(-2*time.Hour)),
		testutil.CreateTestFile(models.ChannelB, testStart.Add(-time.Hour)),
	}
	fake.SetFiles(files)

	c, err := console.New(recorder.NewClient(fake.URL()), console.Options{
		Clock:    monitor.NewManualClock(testStart),
		Location: time.UTC,
		LogStore: testutil.SetupTestDB(t),
	})
	require.NoError(t, err)

	hub := NewHub()
	c.AddPresenter(hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	t.Cleanup(func() {
		hub.Close()
		cancel()
		<-done
	})

	require.Eventually(t, func() bool {
		snap := c.Snapshot()
		return snap.Connection.Online && snap.TotalFileCount == len(files)
	}, waitFor, tick)

	router := mux.NewRouter()
	NewHandlers(c, downloads, hub, "test").RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, console: c, fake: fake, hub: hub, files: files}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func dataMap(t *testing.T, resp APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

func TestWriteSuccess(t *testing.T) {
	h := NewHandlers(nil, nil, nil, "test")
	w := httptest.NewRecorder()

	h.writeSuccess(w, http.StatusOK, map[string]string{"key": "value"}, "Operation successful")

	assert.Equal(t, http.StatusOK, w.Code)

	var response APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, "Operation successful", response.Message)
	assert.Equal(t, "value", response.Data.(map[string]interface{})["key"])
}

func TestWriteError(t *testing.T) {
	h := NewHandlers(nil, nil, nil, "test")
	w := httptest.NewRecorder()

	h.writeError(w, http.StatusBadGateway, "Recorder unreachable", errors.New("dial tcp: refused"))

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.Success)
	assert.Equal(t, "Recorder unreachable", response.Error)
	assert.Nil(t, response.Data)
}

func TestGetState(t *testing.T) {
	env := setupTestServer(t, nil)

	code, resp := env.do(t, "GET", "/api/v1/state", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)

	data := dataMap(t, resp)
	assert.Equal(t, true, data["connection"].(map[string]interface{})["online"])
	assert.Equal(t, "not_recording", data["recording"].(map[string]interface{})["mode"])
	assert.Equal(t, float64(2), data["total_file_count"])
	assert.Equal(t, "00:00:00", data["duration_display"])
}

func TestGetFiles(t *testing.T) {
	env := setupTestServer(t, nil)

	tests := []struct {
		name     string
		query    string
		code     int
		expected int
	}{
		{"all", "", http.StatusOK, 2},
		{"channel", "?channel=videos2", http.StatusOK, 1},
		{"limit", "?limit=1", http.StatusOK, 1},
		{"search miss", "?q=nothing", http.StatusOK, 0},
		{"date range", "?start=2025-06-23&end=2025-06-23", http.StatusOK, 2},
		{"bad channel", "?channel=videos3", http.StatusBadRequest, 0},
		{"bad limit", "?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := env.do(t, "GET", "/api/v1/files"+tt.query, nil)
			require.Equal(t, tt.code, code)
			if code != http.StatusOK {
				assert.False(t, resp.Success)
				return
			}
			assert.Equal(t, float64(tt.expected), dataMap(t, resp)["count"])
		})
	}
}

func TestSetView(t *testing.T) {
	env := setupTestServer(t, nil)

	code, resp := env.do(t, "PUT", "/api/v1/view", map[string]string{"view": "files"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "files", dataMap(t, resp)["view"])

	code, _ = env.do(t, "PUT", "/api/v1/view", map[string]string{"view": "bogus"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, "PUT", "/api/v1/view", "{not json")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSetFilter(t *testing.T) {
	env := setupTestServer(t, nil)

	code, _ := env.do(t, "PUT", "/api/v1/files/filter", models.FileFilter{Channel: models.ChannelA})
	require.Equal(t, http.StatusOK, code)

	code, resp := env.do(t, "GET", "/api/v1/files", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), dataMap(t, resp)["count"])

	code, _ = env.do(t, "PUT", "/api/v1/files/filter", map[string]string{"channel": "videos9"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRecordingStartStop(t *testing.T) {
	env := setupTestServer(t, nil)

	code, resp := env.do(t, "POST", "/api/v1/recording/stop", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, console.ErrNotRecording.Error(), resp.Error)

	code, resp = env.do(t, "POST", "/api/v1/recording/start", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recording started", resp.Message)

	require.Eventually(t, func() bool {
		return env.console.Snapshot().Recording.IsRecording()
	}, waitFor, tick)

	code, _ = env.do(t, "POST", "/api/v1/recording/start", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, resp = env.do(t, "POST", "/api/v1/recording/stop", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recording stopped", resp.Message)
}

func TestConfigEndpoints(t *testing.T) {
	env := setupTestServer(t, nil)

	code, resp := env.do(t, "GET", "/api/v1/config", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(600), dataMap(t, resp)["segment_time"])

	bad := models.DefaultRecorderConfig()
	bad.RTSPURL1 = ""
	code, resp = env.do(t, "PUT", "/api/v1/config", bad)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Error, "rtsp_url1")

	good := models.DefaultRecorderConfig()
	good.SegmentTime = 1200
	code, _ = env.do(t, "PUT", "/api/v1/config", good)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1200, env.fake.Config().SegmentTime)
}

func TestDeleteAndUploadFile(t *testing.T) {
	env := setupTestServer(t, nil)
	file := env.files[0]

	code, _ := env.do(t, "POST", "/api/v1/files/upload", map[string]string{"file_path": file.FullPath})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{file.FullPath}, env.fake.Uploads())

	code, _ = env.do(t, "POST", "/api/v1/files/delete", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, "POST", "/api/v1/files/delete", map[string]string{"file_path": file.FullPath})
	require.Equal(t, http.StatusOK, code)

	code, resp := env.do(t, "POST", "/api/v1/files/delete", map[string]string{"file_path": file.FullPath})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, resp.Error, "File not found")

	require.Eventually(t, func() bool {
		return env.console.Snapshot().TotalFileCount == 1
	}, waitFor, tick)
}

func TestDownloadFile(t *testing.T) {
	downloads := &stubDownloads{}
	env := setupTestServer(t, downloads)
	file := env.files[1]

	code, resp := env.do(t, "POST", "/api/v1/files/download", map[string]string{"relative_path": file.RelativePath})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "completed", dataMap(t, resp)["status"])
	requested := downloads.Requested()
	require.Len(t, requested, 1)
	assert.Equal(t, file.RelativePath, requested[0].RelativePath)
	assert.Equal(t, file.SizeBytes, requested[0].SizeBytes)

	code, _ = env.do(t, "POST", "/api/v1/files/download", map[string]string{"relative_path": "videos1/missing.mp4"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = env.do(t, "POST", "/api/v1/files/download", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	downloads.fail(fmt.Errorf("%w: insufficient free space", downloader.ErrBlocked))
	code, resp = env.do(t, "POST", "/api/v1/files/download", map[string]string{"relative_path": file.RelativePath})
	assert.Equal(t, http.StatusInsufficientStorage, code)
	assert.Contains(t, resp.Error, "insufficient free space")

	code, resp = env.do(t, "GET", "/api/v1/downloads?status=completed", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Data, 1)
}

func TestDownloadFile_NotConfigured(t *testing.T) {
	env := setupTestServer(t, nil)

	code, _ := env.do(t, "POST", "/api/v1/files/download", map[string]string{"relative_path": env.files[0].RelativePath})
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, _ = env.do(t, "GET", "/api/v1/downloads", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestGetSystem(t *testing.T) {
	env := setupTestServer(t, nil)

	code, resp := env.do(t, "GET", "/api/v1/system", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 12.5, dataMap(t, resp)["cpu_usage"])
	assert.Equal(t, "3 days", dataMap(t, resp)["uptime"])
}

func TestGetLogs(t *testing.T) {
	env := setupTestServer(t, nil)

	code, resp := env.do(t, "GET", "/api/v1/logs?level=success&limit=10", nil)
	require.Equal(t, http.StatusOK, code)

	entries, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, entries)
	assert.Equal(t, "connected to recorder", entries[0].(map[string]interface{})["message"])

	code, _ = env.do(t, "GET", "/api/v1/logs?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthCheck(t *testing.T) {
	env := setupTestServer(t, &stubDownloads{})

	code, resp := env.do(t, "GET", "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, code)

	data := dataMap(t, resp)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "test", data["version"])
	assert.NotNil(t, data["downloads"])
}

func TestRefresh(t *testing.T) {
	env := setupTestServer(t, nil)
	before := env.fake.Requests("/api/status")

	code, _ := env.do(t, "POST", "/api/v1/refresh", nil)
	require.Equal(t, http.StatusAccepted, code)

	require.Eventually(t, func() bool {
		return env.fake.Requests("/api/status") > before
	}, waitFor, tick)
}

func TestWebSocketStream(t *testing.T) {
	env := setupTestServer(t, nil)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(waitFor))

	var first Message
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "snapshot", first.Type)

	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, waitFor, tick)

	env.console.Record(models.LogLevelInfo, "test", "hello operator")

	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type != "log" {
			continue
		}
		entry := msg.Data.(map[string]interface{})
		if entry["message"] == "hello operator" {
			break
		}
	}
}
