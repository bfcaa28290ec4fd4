package section

import (
	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/media"
	sec "github.com/abhisek/aptiz/internal/section"
)

// Every message below carries the section ID so the router can drop
// results that arrive after the section was left.

// contentMsg is the result of a content fetch.
type contentMsg struct {
	id      string
	fetchID int
	content exam.Content
	err     error
}

// tickMsg is one elapsed second of a section or task countdown.
type tickMsg struct {
	id   string
	tick sec.TimerTicked
}

// captureStartedMsg reports whether the microphone opened.
type captureStartedMsg struct {
	id  string
	err error
}

// captureStoppedMsg carries a finished recording.
type captureStoppedMsg struct {
	id    string
	index int
	rec   media.Recording
	err   error
}

// playbackDoneMsg is sent when transcript playback ends.
type playbackDoneMsg struct {
	id  string
	err error
}

func (m contentMsg) SectionTag() string        { return m.id }
func (m tickMsg) SectionTag() string           { return m.id }
func (m captureStartedMsg) SectionTag() string { return m.id }
func (m captureStoppedMsg) SectionTag() string { return m.id }
func (m playbackDoneMsg) SectionTag() string   { return m.id }
