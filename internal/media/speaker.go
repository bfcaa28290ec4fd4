package media

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// SpeechRate is the playback rate relative to the engine default.
const SpeechRate = 0.95

// defaultWordsPerMinute is the default rate of both say and espeak.
const defaultWordsPerMinute = 175

// ErrNoSpeechEngine means no supported text-to-speech program was found.
var ErrNoSpeechEngine = errors.New("media: no text-to-speech engine found (install espeak-ng or use macOS say)")

// ExecSpeaker speaks by running a text-to-speech program.
type ExecSpeaker struct {
	path   string
	args   func(text string) []string
	logger *zap.Logger
}

type engine struct {
	name string
	args func(wpm, text string) []string
}

var engines = []engine{
	{"say", func(wpm, text string) []string { return []string{"-r", wpm, text} }},
	{"espeak-ng", func(wpm, text string) []string { return []string{"-s", wpm, text} }},
	{"espeak", func(wpm, text string) []string { return []string{"-s", wpm, text} }},
}

// NewSpeaker returns the first available engine.
func NewSpeaker(logger *zap.Logger) (*ExecSpeaker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rate := float64(defaultWordsPerMinute) * SpeechRate
	wpm := strconv.Itoa(int(rate))
	for _, e := range engines {
		path, err := exec.LookPath(e.name)
		if err != nil {
			continue
		}
		argsFn := e.args
		return &ExecSpeaker{
			path:   path,
			args:   func(text string) []string { return argsFn(wpm, text) },
			logger: logger,
		}, nil
	}
	return nil, ErrNoSpeechEngine
}

func (s *ExecSpeaker) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.path, s.args(text)...)
	cmd.WaitDelay = time.Second
	out, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("speech engine failed",
				zap.String("engine", s.path),
				zap.ByteString("output", out),
				zap.Error(err))
		}
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}
