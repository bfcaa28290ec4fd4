package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "aptiz.log")
	cfg := DefaultConfig()
	cfg.File = path

	logger, closeLog, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("section completed")
	logger.Debug("hidden at info level")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"section completed"`) {
		t.Fatalf("expected JSON message, got %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatal("debug line should be filtered")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	if _, _, err := New(cfg); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNew_NoOutputsIsNop(t *testing.T) {
	logger, closeLog, err := New(Config{Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("dropped")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("APTIZ_LOG_LEVEL", "debug")
	t.Setenv("APTIZ_LOG_FILE", "/var/log/aptiz.log")
	cfg := FromEnv(DefaultConfig())
	if cfg.Level != "debug" || cfg.File != "/var/log/aptiz.log" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("APTIZ_LOG_FILE", "off")
	if cfg := FromEnv(DefaultConfig()); cfg.File != "" {
		t.Fatalf("expected file disabled, got %q", cfg.File)
	}
}

func TestDefaultLogPath_XDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultLogPath(); got != filepath.Join("/state", "aptiz", "aptiz.log") {
		t.Fatalf("unexpected path %q", got)
	}
}
