package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recwatch/internal/models"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")
	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Zero(t, client.httpClient.Timeout)
	assert.Equal(t, 5*time.Second, client.statusTimeout)
	assert.Equal(t, 3*time.Second, client.activeFilesTimeout)
}

func TestClient_Poll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/status", r.URL.Path)

		w.Write([]byte(`{"recording1":true,"recording2":false,"tfcard":{"mountPath":"/mnt/tfcard","totalSpace":"58G","usedSpace":"12G","freeSpace":"46G","usagePercent":"21%"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	status, err := client.Poll(context.Background())
	require.NoError(t, err)

	assert.True(t, status.Channel1Active)
	assert.False(t, status.Channel2Active)
	assert.Equal(t, "46G", status.Storage.FreeSpace)
	assert.True(t, status.Storage.Available())
	assert.False(t, status.ReceivedAt.IsZero())
}

func TestClient_PollErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    ErrorKind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"message":"boom"}`))
			},
			kind: KindHTTP,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"recording1":`))
			},
			kind: KindParse,
		},
		{
			name: "missing recording flags",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"tfcard":{"freeSpace":"1G"}}`))
			},
			kind: KindParse,
		},
		{
			name: "wrong field type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"recording1":"yes","recording2":false}`))
			},
			kind: KindParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL)
			status, err := client.Poll(context.Background())
			assert.Nil(t, status)
			require.Error(t, err)
			assert.Equal(t, tt.kind, Kind(err))
		})
	}
}

func TestClient_PollHTTPErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Poll(context.Background())

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
	assert.Equal(t, "recorder answered HTTP 503", Describe(err))
}

func TestClient_PollTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, WithTimeouts(50*time.Millisecond, 0, 0))

	start := time.Now()
	status, err := client.Poll(context.Background())
	assert.Nil(t, status)
	assert.Less(t, time.Since(start), 2*time.Second)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
	assert.Equal(t, KindTimeout, Kind(err))
}

func TestClient_PollNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Poll(context.Background())
	assert.Equal(t, KindNetwork, Kind(err))
	assert.Equal(t, "unable to reach the recorder", Describe(err))
}

func TestClient_ListAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files", r.URL.Path)
		w.Write([]byte(`{"success":true,"files":[
			{"name":"2025-06-23_15-23-16.mp4","channel":"videos1","sizeStr":"1.2 MB","size":1258291,"timeStr":"2025-06-23 15:25:10","modifyTime":1750692310,"isRecording":true,"fullPath":"/mnt/tfcard/videos1/2025-06-23_15-23-16.mp4","relativePath":"videos1/2025-06-23_15-23-16.mp4"},
			{"name":"2025-06-23_15-13-16.mp4","channel":"videos2","sizeStr":"80 MB","size":83886080,"timeStr":"2025-06-23 15:23:16","modifyTime":1750692196,"isRecording":false,"fullPath":"/mnt/tfcard/videos2/2025-06-23_15-13-16.mp4","relativePath":"videos2/2025-06-23_15-13-16.mp4"}
		]}`))
	}))
	defer server.Close()

	files, err := NewClient(server.URL).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "2025-06-23_15-23-16.mp4", files[0].Name)
	assert.Equal(t, models.ChannelA, files[0].Channel)
	assert.Equal(t, int64(1258291), files[0].SizeBytes)
	assert.True(t, files[0].IsRecording)
	assert.Equal(t, models.ChannelB, files[1].Channel)
	assert.Equal(t, "videos2/2025-06-23_15-13-16.mp4", files[1].RelativePath)

	active := ActiveFrom(files)
	require.Len(t, active, 1)
	assert.Equal(t, files[0], active[0])
}

func TestClient_ListAllUnknownChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"files":[{"name":"a.mp4","channel":"videos3","modifyTime":1,"isRecording":false}]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).ListAll(context.Background())
	assert.Equal(t, KindParse, Kind(err))
}

func TestClient_ListActive(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/recording-files", r.URL.Path)
			w.Write([]byte(`{"success":true,"files":[{"name":"2025-06-23_15-23-16.mp4","channel":"videos1","modifyTime":1750692310,"isRecording":true}]}`))
		}))
		defer server.Close()

		files, err := NewClient(server.URL).ListActive(context.Background())
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("success false", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"message":"not ready","files":[]}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).ListActive(context.Background())
		assert.Equal(t, KindParse, Kind(err))
	})

	t.Run("missing files array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).ListActive(context.Background())
		assert.Equal(t, KindParse, Kind(err))
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		_, err := NewClient(server.URL, WithTimeouts(0, 30*time.Millisecond, 0)).ListActive(context.Background())
		assert.Equal(t, KindTimeout, Kind(err))
	})
}

func TestClient_Start(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/start", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var cfg models.RecorderConfig
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cfg))
		assert.Equal(t, "rtsp://192.168.1.63:554/media/video1", cfg.RTSPURL1)
		assert.Equal(t, 600, cfg.SegmentTime)

		w.Write([]byte(`{"success":true,"message":"Recording started"}`))
	}))
	defer server.Close()

	msg, err := NewClient(server.URL).Start(context.Background(), models.DefaultRecorderConfig())
	require.NoError(t, err)
	assert.Equal(t, "Recording started", msg)
}

func TestClient_StopRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stop", r.URL.Path)
		w.Write([]byte(`{"success":false,"message":"Not recording"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Stop(context.Background())

	var commandErr *CommandError
	require.True(t, errors.As(err, &commandErr))
	assert.Equal(t, "Not recording", commandErr.Message)
	assert.Equal(t, "Not recording", Describe(err))
}

func TestClient_GetConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/config", r.URL.Path)
		json.NewEncoder(w).Encode(models.DefaultRecorderConfig())
	}))
	defer server.Close()

	cfg, err := NewClient(server.URL).GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRecorderConfig(), *cfg)
}

func TestClient_UpdateConfigValidation(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"success":true,"message":"Configuration saved"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	cfg := models.DefaultRecorderConfig()
	cfg.SegmentTime = 30
	_, err := client.UpdateConfig(context.Background(), cfg)
	assert.Error(t, err)

	cfg = models.DefaultRecorderConfig()
	cfg.RTSPURL1 = ""
	_, err = client.UpdateConfig(context.Background(), cfg)
	assert.Error(t, err)
	assert.False(t, called)

	msg, err := client.UpdateConfig(context.Background(), models.DefaultRecorderConfig())
	require.NoError(t, err)
	assert.Equal(t, "Configuration saved", msg)
	assert.True(t, called)
}

func TestClient_DeleteAndUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/api/delete-file":
			assert.Equal(t, "/mnt/tfcard/videos1/a.mp4", body["filePath"])
			w.Write([]byte(`{"success":true,"message":"deleted"}`))
		case "/api/upload-to-s3":
			assert.Equal(t, "/mnt/tfcard/videos1/a.mp4", body["filePath"])
			assert.Equal(t, "a.mp4", body["fileName"])
			w.Write([]byte(`{"success":true,"message":"uploaded"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	msg, err := client.DeleteFile(context.Background(), "/mnt/tfcard/videos1/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "deleted", msg)

	msg, err = client.UploadToS3(context.Background(), "/mnt/tfcard/videos1/a.mp4", "a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "uploaded", msg)
}

func TestClient_SystemMonitor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/system-monitor", r.URL.Path)
		w.Write([]byte(`{"success":true,"cpu_usage":12.5,"memory_usage":40.1,"disk_usage":21,"network_rx":1024,"network_tx":2048,"load_average":0.42,"uptime":"3 days","temperature":51.2}`))
	}))
	defer server.Close()

	metrics, err := NewClient(server.URL).SystemMonitor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12.5, metrics.CPUUsage)
	assert.Equal(t, int64(2048), metrics.NetworkTx)
	assert.Equal(t, "3 days", metrics.Uptime)
}

func TestClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/preview/videos1/2025-06-23_15-23-16.mp4", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("download"))
		w.Write([]byte("video-bytes"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	n, err := NewClient(server.URL).Download(context.Background(), "videos1/2025-06-23_15-23-16.mp4", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, "video-bytes", buf.String())
}

func TestClient_PreviewURL(t *testing.T) {
	client := NewClient("http://recorder:8080")
	assert.Equal(t, "http://recorder:8080/api/preview/videos1/a%20b.mp4", client.PreviewURL("videos1/a b.mp4", false))
	assert.Equal(t, "http://recorder:8080/api/preview/videos2/c.mp4?download=1", client.PreviewURL("/videos2/c.mp4", true))
}
