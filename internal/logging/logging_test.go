package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("Debug") || ValidLevel("trace") {
		t.Error("ValidLevel mismatch")
	}
	if !ValidFormat("logfmt") || ValidFormat("xml") {
		t.Error("ValidFormat mismatch")
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Options{Level: "warn", Format: "text"})

	logger.Info("hidden message")
	logger.Error("Error saving the tasks file", "path", "tasks.json")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "Error saving the tasks file") {
		t.Errorf("expected error message in output: %q", out)
	}
	if !strings.Contains(out, "path=tasks.json") {
		t.Errorf("expected structured field in output: %q", out)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Options{Level: "debug", Format: "json"})
	logger.Debug("task created", "id", 3)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "task created" {
		t.Errorf("msg = %v, want %q", entry["msg"], "task created")
	}
}

func TestNew_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskmgr.log")
	var console bytes.Buffer

	logger, closer, err := New(&console, Options{Level: "info", Format: "logfmt", File: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Warn("write failed", "path", "tasks.json")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "write failed") {
		t.Errorf("log file missing message: %q", data)
	}
	if !strings.Contains(console.String(), "write failed") {
		t.Errorf("console missing message: %q", console.String())
	}
}

func TestNew_WithoutFile(t *testing.T) {
	logger, closer, err := New(&bytes.Buffer{}, DefaultOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger == nil || closer == nil {
		t.Fatal("expected logger and closer")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close returned %v", err)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic or write anywhere visible.
	Discard().Error("ignored")
}
