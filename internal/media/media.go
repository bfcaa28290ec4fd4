// Package media captures spoken answers and reads listening transcripts
// aloud. Both talk to external programs; the section machine only sees the
// Recorder and Speaker interfaces.
package media

import (
	"context"
	"errors"
	"time"
)

// ErrNotRecording is returned by Stop when no capture is active.
var ErrNotRecording = errors.New("media: not recording")

// ErrAlreadyRecording is returned by Start while a capture is active.
var ErrAlreadyRecording = errors.New("media: already recording")

// Recording is a finished capture.
type Recording struct {
	TaskID   int
	Path     string
	Duration time.Duration
}

// Recorder captures microphone audio for one speaking task at a time.
type Recorder interface {
	// Start opens the device. A device that cannot be opened is reported
	// as *exam.MicrophoneUnavailableError.
	Start(ctx context.Context, taskID int) error
	// Stop ends the capture and releases the device.
	Stop() (Recording, error)
}

// Speaker reads text aloud. Speak blocks until playback ends or ctx is
// cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}
