package media

import (
	"context"
	"sync"
)

// NopRecorder pretends to record. It is used when audio is disabled.
type NopRecorder struct {
	mu     sync.Mutex
	active *Recording
}

func (r *NopRecorder) Start(_ context.Context, taskID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		return ErrAlreadyRecording
	}
	r.active = &Recording{TaskID: taskID}
	return nil
}

func (r *NopRecorder) Stop() (Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return Recording{}, ErrNotRecording
	}
	rec := *r.active
	r.active = nil
	return rec, nil
}

// NopSpeaker finishes immediately.
type NopSpeaker struct{}

func (NopSpeaker) Speak(ctx context.Context, _ string) error { return ctx.Err() }

var (
	_ Recorder = (*NopRecorder)(nil)
	_ Recorder = (*FFmpegRecorder)(nil)
	_ Speaker  = NopSpeaker{}
	_ Speaker  = (*ExecSpeaker)(nil)
)
