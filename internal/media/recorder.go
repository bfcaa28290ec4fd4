package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/exam"
)

// RecorderConfig selects the capture backend.
type RecorderConfig struct {
	// Binary is the ffmpeg executable. Empty means "ffmpeg" on PATH.
	Binary string
	// Format is the ffmpeg input format (pulse, alsa, avfoundation, dshow).
	Format string
	// Device is the input device name for Format.
	Device string
	// Dir receives the WAV files. Empty means a private temp dir that
	// Close removes.
	Dir        string
	SampleRate int
	// StartupGrace is how long Start waits for ffmpeg to fail on a bad
	// device before reporting success.
	StartupGrace time.Duration
	// StopTimeout bounds the graceful shutdown in Stop.
	StopTimeout time.Duration
}

// DefaultRecorderConfig returns the capture settings for the running OS.
func DefaultRecorderConfig() RecorderConfig {
	cfg := RecorderConfig{
		Format:       "pulse",
		Device:       "default",
		SampleRate:   16000,
		StartupGrace: 400 * time.Millisecond,
		StopTimeout:  3 * time.Second,
	}
	switch runtime.GOOS {
	case "darwin":
		cfg.Format, cfg.Device = "avfoundation", ":0"
	case "windows":
		cfg.Format, cfg.Device = "dshow", "audio=default"
	}
	if v := os.Getenv("APTIZ_AUDIO_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("APTIZ_AUDIO_DEVICE"); v != "" {
		cfg.Device = v
	}
	if v := os.Getenv("APTIZ_FFMPEG"); v != "" {
		cfg.Binary = v
	}
	return cfg
}

// FFmpegRecorder captures audio to WAV by running ffmpeg.
type FFmpegRecorder struct {
	cfg    RecorderConfig
	logger *zap.Logger

	mu      sync.Mutex
	tempDir string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stderr  *bytes.Buffer
	done    chan error
	cancel  context.CancelFunc
	current Recording
	started time.Time
}

// NewFFmpegRecorder creates a recorder. Nothing is opened until Start.
func NewFFmpegRecorder(cfg RecorderConfig, logger *zap.Logger) *FFmpegRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpegRecorder{cfg: cfg, logger: logger}
}

// captureArgs builds the ffmpeg argument list for one capture.
func (r *FFmpegRecorder) captureArgs(path string) []string {
	return ffmpeg.Input(r.cfg.Device, ffmpeg.KwArgs{"f": r.cfg.Format}).
		Output(path, ffmpeg.KwArgs{
			"ac": "1",
			"ar": strconv.Itoa(r.cfg.SampleRate),
		}).
		GlobalArgs("-hide_banner", "-loglevel", "error").
		OverWriteOutput().
		GetArgs()
}

func (r *FFmpegRecorder) binary() (string, error) {
	name := r.cfg.Binary
	if name == "" {
		name = "ffmpeg"
	}
	return exec.LookPath(name)
}

func (r *FFmpegRecorder) dir() (string, error) {
	if r.cfg.Dir != "" {
		if err := os.MkdirAll(r.cfg.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create recording dir: %w", err)
		}
		return r.cfg.Dir, nil
	}
	if r.tempDir == "" {
		dir, err := os.MkdirTemp("", "aptiz-rec-*")
		if err != nil {
			return "", fmt.Errorf("create recording dir: %w", err)
		}
		r.tempDir = dir
	}
	return r.tempDir, nil
}

func (r *FFmpegRecorder) Start(ctx context.Context, taskID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return ErrAlreadyRecording
	}

	bin, err := r.binary()
	if err != nil {
		return &exam.MicrophoneUnavailableError{Err: fmt.Errorf("ffmpeg not found: %w", err)}
	}
	dir, err := r.dir()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, fmt.Sprintf("speaking-task-%d-%s.wav", taskID, uuid.NewString()[:8]))
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, bin, r.captureArgs(path)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("ffmpeg stdin: %w", err)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Start(); err != nil {
		cancel()
		return &exam.MicrophoneUnavailableError{Err: err}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	// ffmpeg exits almost immediately when the device cannot be opened.
	select {
	case err := <-done:
		cancel()
		msg := strings.TrimSpace(stderr.String())
		if msg == "" && err != nil {
			msg = err.Error()
		}
		return &exam.MicrophoneUnavailableError{Err: fmt.Errorf("ffmpeg exited: %s", msg)}
	case <-time.After(r.cfg.StartupGrace):
	}

	r.cmd = cmd
	r.stdin = stdin
	r.stderr = stderr
	r.done = done
	r.cancel = cancel
	r.current = Recording{TaskID: taskID, Path: path}
	r.started = time.Now()

	r.logger.Debug("capture started",
		zap.Int("task_id", taskID),
		zap.String("path", path),
		zap.String("format", r.cfg.Format))
	return nil
}

func (r *FFmpegRecorder) Stop() (Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return Recording{}, ErrNotRecording
	}
	defer func() {
		r.cancel()
		r.cmd, r.stdin, r.done, r.cancel = nil, nil, nil, nil
	}()

	// "q" on stdin lets ffmpeg finalize the WAV header.
	_, _ = io.WriteString(r.stdin, "q")
	_ = r.stdin.Close()

	select {
	case <-r.done:
	case <-time.After(r.cfg.StopTimeout):
		r.logger.Warn("ffmpeg did not stop in time, killing",
			zap.Int("task_id", r.current.TaskID))
		r.cancel()
		<-r.done
	}

	rec := r.current
	rec.Duration = probeDuration(rec.Path)
	if rec.Duration == 0 {
		rec.Duration = time.Since(r.started)
	}
	r.logger.Debug("capture stopped",
		zap.Int("task_id", rec.TaskID),
		zap.Duration("duration", rec.Duration))
	return rec, nil
}

// probeDuration reads the container duration. Zero means unknown.
func probeDuration(path string) time.Duration {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0
	}
	var info struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return 0
	}
	secs, err := strconv.ParseFloat(info.Format.Duration, 64)
	if err != nil {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// Close stops any active capture and removes the private temp dir.
func (r *FFmpegRecorder) Close() error {
	if _, err := r.Stop(); err != nil && err != ErrNotRecording {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(r.tempDir)
	r.tempDir = ""
	return err
}
