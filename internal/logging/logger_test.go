package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/five82/carousel/internal/config"
	"github.com/five82/carousel/internal/slider"
)

var _ slider.Logger = (*Logger)(nil)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{" debug ", slog.LevelDebug},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_JSONIncludesDefaultFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	logger.Component("ui").Info("deck loaded", "slides", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != "carousel" {
		t.Fatalf("service = %v, want carousel", entry["service"])
	}
	if entry["component"] != "ui" {
		t.Fatalf("component = %v, want ui", entry["component"])
	}
	if entry["slides"] != float64(3) {
		t.Fatalf("slides = %v, want 3", entry["slides"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("output contains filtered records: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("output = %q, want the warn record", out)
	}
}

func TestForMount_AddsInstanceID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Format: "json"}, &buf)
	mounted, id := logger.ForMount()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("instance id %q is not a UUID: %v", id, err)
	}
	mounted.Info("slider mounted")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["instance"] != id {
		t.Fatalf("instance = %v, want %s", entry["instance"], id)
	}

	_, other := logger.ForMount()
	if other == id {
		t.Fatal("ForMount returned the same id twice")
	}
}

func TestOpen_CreatesDirectoryAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "carousel.log")
	cfg := config.LogConfig{Level: "info", File: path}

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := Open(cfg)
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		logger.Info(msg)
		if err := closer.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Fatalf("log file = %q, want both records", data)
	}
}

func TestOpen_EmptyPathFails(t *testing.T) {
	if _, _, err := Open(config.LogConfig{}); err == nil {
		t.Fatal("Open returned nil error, want error")
	}
}
