package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recwatch/internal/models"
)

func TestParseStart(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{
			name:     "plain segment name",
			input:    "2025-06-23_15-23-16.mp4",
			expected: time.Date(2025, 6, 23, 15, 23, 16, 0, loc),
			ok:       true,
		},
		{
			name:     "prefixed name",
			input:    "cam1_2025-06-23_15-23-16.mkv",
			expected: time.Date(2025, 6, 23, 15, 23, 16, 0, loc),
			ok:       true,
		},
		{
			name:  "no timestamp",
			input: "clip.mp4",
		},
		{
			name:  "invalid month",
			input: "2025-13-23_15-23-16.mp4",
		},
		{
			name:  "twelve hour style",
			input: "2025-06-23_3-23-16.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStart(tt.input, loc)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expected.Equal(got))
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 6, 23, 15, 25, 16, 0, loc)

	t.Run("parsed name", func(t *testing.T) {
		files := []models.FileRecord{
			{Name: "2025-06-23_15-23-16.mp4", ModifyEpochSeconds: now.Unix() - 1, IsRecording: true},
		}

		est := Estimate(now, files, loc)
		require.True(t, est.Known)
		assert.Equal(t, 2*time.Minute, est.Elapsed)
		assert.Equal(t, "00:02:00", Format(est))
	})

	t.Run("no recording files", func(t *testing.T) {
		files := []models.FileRecord{
			{Name: "2025-06-23_15-23-16.mp4", ModifyEpochSeconds: now.Unix(), IsRecording: false},
		}

		est := Estimate(now, files, loc)
		assert.False(t, est.Known)
		assert.Equal(t, "00:00:00", Format(est))
	})

	t.Run("empty listing", func(t *testing.T) {
		assert.Equal(t, models.UnknownDuration, Estimate(now, nil, loc))
	})

	t.Run("latest modify time wins", func(t *testing.T) {
		files := []models.FileRecord{
			{Name: "2025-06-23_15-03-16.mp4", ModifyEpochSeconds: now.Unix() - 600, IsRecording: true},
			{Name: "2025-06-23_15-24-16.mp4", ModifyEpochSeconds: now.Unix() - 1, IsRecording: true},
		}

		est := Estimate(now, files, loc)
		assert.Equal(t, time.Minute, est.Elapsed)
	})

	t.Run("first wins ties", func(t *testing.T) {
		files := []models.FileRecord{
			{Name: "2025-06-23_15-20-16.mp4", ModifyEpochSeconds: now.Unix() - 1, IsRecording: true},
			{Name: "2025-06-23_15-24-16.mp4", ModifyEpochSeconds: now.Unix() - 1, IsRecording: true},
		}

		est := Estimate(now, files, loc)
		assert.Equal(t, 5*time.Minute, est.Elapsed)
	})

	t.Run("start in the future", func(t *testing.T) {
		files := []models.FileRecord{
			{Name: "2025-06-23_16-00-00.mp4", ModifyEpochSeconds: now.Unix(), IsRecording: true},
		}

		assert.False(t, Estimate(now, files, loc).Known)
	})

	t.Run("unparseable name", func(t *testing.T) {
		files := []models.FileRecord{
			{Name: "segment.mp4", ModifyEpochSeconds: now.Unix(), IsRecording: true},
		}

		assert.False(t, Estimate(now, files, loc).Known)
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		elapsed  time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{59*time.Second + 900*time.Millisecond, "00:00:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{27 * time.Hour, "27:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(models.DurationEstimate{Elapsed: tt.elapsed, Known: true}))
		})
	}

	assert.Equal(t, "00:00:00", Format(models.DurationEstimate{Elapsed: -time.Second, Known: true}))
}
