package contentgen

import (
	"fmt"

	"github.com/abhisek/aptiz/internal/exam"
)

// Check inspects generated content for quality problems that are worth a
// log line but not a failed request.
type Check interface {
	// Name returns a short identifier for log fields, e.g. "reading-length".
	Name() string

	// Check returns a human-readable warning, or "" if the content passes.
	Check(c exam.Content) string
}

// ReadingLengthCheck warns when a reading passage falls outside [Min, Max]
// words.
type ReadingLengthCheck struct {
	Min, Max int
}

func (*ReadingLengthCheck) Name() string { return "reading-length" }

func (v *ReadingLengthCheck) Check(c exam.Content) string {
	rc, ok := c.(*exam.ReadingContent)
	if !ok || rc.Task.Passage == nil {
		return ""
	}
	return wordRange("passage", exam.WordCount(*rc.Task.Passage), v.Min, v.Max)
}

// TranscriptLengthCheck warns when a listening transcript falls outside
// [Min, Max] words.
type TranscriptLengthCheck struct {
	Min, Max int
}

func (*TranscriptLengthCheck) Name() string { return "transcript-length" }

func (v *TranscriptLengthCheck) Check(c exam.Content) string {
	lc, ok := c.(*exam.ListeningContent)
	if !ok {
		return ""
	}
	return wordRange("transcript", exam.WordCount(lc.Task.Transcript), v.Min, v.Max)
}

func wordRange(what string, n, lo, hi int) string {
	if n < lo || n > hi {
		return fmt.Sprintf("%s has %d words, expected %d-%d", what, n, lo, hi)
	}
	return ""
}
