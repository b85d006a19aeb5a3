package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:      LevelDebug,
		Output:     &buf,
		JSON:       true,
		AddSource:  false,
		TimeFormat: time.RFC3339,
	}

	logger := New(cfg)
	if logger == nil {
		t.Fatal("New logger should not be nil")
	}

	t.Run("Levels", func(t *testing.T) {
		buf.Reset()
		logger.Debug("debug msg")
		if !strings.Contains(buf.String(), "debug msg") {
			t.Error("debug logging failed")
		}

		buf.Reset()
		logger.Info("info msg")
		if !strings.Contains(buf.String(), "info msg") {
			t.Error("info logging failed")
		}

		buf.Reset()
		logger.Error("error msg")
		if !strings.Contains(buf.String(), "error msg") {
			t.Error("error logging failed")
		}
	})

	t.Run("JSONOutput", func(t *testing.T) {
		buf.Reset()
		logger.Info("structured", "key", "value")
		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("JSON output not parseable: %v", err)
		}
		if entry["msg"] != "structured" || entry["key"] != "value" {
			t.Errorf("unexpected entry: %v", entry)
		}
	})

	t.Run("WithComponent", func(t *testing.T) {
		buf.Reset()
		l := logger.WithComponent("power")
		l.Info("msg")
		if !strings.Contains(buf.String(), "power") {
			t.Error("WithComponent missing component field")
		}
	})
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	logger.WithComponent("state").Info("snapshot saved", "id", 3, "label", "pre restore")
	out := buf.String()

	if !strings.Contains(out, "[info]") {
		t.Errorf("missing level tag: %q", out)
	}
	if !strings.Contains(out, "[state]") {
		t.Errorf("component not promoted to header: %q", out)
	}
	if !strings.Contains(out, "id=3") {
		t.Errorf("missing attribute: %q", out)
	}
	if !strings.Contains(out, `label="pre restore"`) {
		t.Errorf("values with spaces should be quoted: %q", out)
	}
}

func TestDefaultLogger(t *testing.T) {
	l := Default()
	if l == nil {
		t.Fatal("Default logger is nil")
	}

	var buf bytes.Buffer
	SetDefault(New(Config{Level: LevelError, Output: &buf}))
	defer SetDefault(l)

	Info("should not appear")
	if buf.Len() > 0 {
		t.Error("info message logged below the configured level")
	}
	Error("boom")
	if !strings.Contains(buf.String(), "boom") {
		t.Error("package-level Error did not reach the default logger")
	}
}
