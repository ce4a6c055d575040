package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_FansOutToFile(t *testing.T) {
	var console, file bytes.Buffer
	logger := New(&console, &file, slog.LevelInfo, false)

	logger.Debug("hidden")
	logger.Info("episodes synced", "created", 2)

	assert.Contains(t, console.String(), "msg=\"episodes synced\"")
	assert.NotContains(t, console.String(), "hidden")

	var record map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &record))
	assert.Equal(t, "episodes synced", record["msg"])
	assert.Equal(t, float64(2), record["created"])
}

func TestNew_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger := New(&console, nil, slog.LevelWarn, true)
	logger.Info("skipped")
	logger.Warn("kept")

	var record map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
}

func TestSetup_WritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "podsite.log")
	_, cleanup, err := Setup(Options{Level: "info", FilePath: path})
	require.NoError(t, err)

	slog.Info("hello")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestSetup_BadLevel(t *testing.T) {
	_, _, err := Setup(Options{Level: "nope"})
	assert.Error(t, err)
}
