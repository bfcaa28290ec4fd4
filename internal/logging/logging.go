// Package logging builds the zap logger shared by the CLI, the TUI and the
// generation server.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where logs go.
type Config struct {
	Level string
	// File is a rotated JSON log. Empty disables it.
	File string
	// Console writes human-readable logs to stderr. The TUI owns the
	// terminal, so it runs with Console off.
	Console bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig logs at info level to the default file only.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		File:       DefaultLogPath(),
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// FromEnv applies APTIZ_LOG_LEVEL and APTIZ_LOG_FILE on top of cfg.
// APTIZ_LOG_FILE=off disables the file.
func FromEnv(cfg Config) Config {
	if v := os.Getenv("APTIZ_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	switch v := os.Getenv("APTIZ_LOG_FILE"); v {
	case "":
	case "off":
		cfg.File = ""
	default:
		cfg.File = v
	}
	return cfg
}

// DefaultLogPath returns $XDG_STATE_HOME/aptiz/aptiz.log, falling back to
// ~/.local/state.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "aptiz.log")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "aptiz", "aptiz.log")
}

// New builds a logger from cfg. The returned function flushes and closes
// the log file.
func New(cfg Config) (*zap.Logger, func() error, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.MillisDurationEncoder

	var cores []zapcore.Core
	var rotator *lumberjack.Logger

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}

	if cfg.Console {
		consoleCfg := encCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() error { return nil }, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	closer := func() error {
		_ = logger.Sync()
		if rotator != nil {
			return rotator.Close()
		}
		return nil
	}
	return logger, closer, nil
}
