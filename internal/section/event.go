package section

import "github.com/abhisek/aptiz/internal/exam"

// Event is an input to Machine.HandleEvent.
type Event interface{ isEvent() }

// TimerKind says which countdown a tick belongs to.
type TimerKind int

const (
	// SectionClock is the whole-section time limit.
	SectionClock TimerKind = iota
	// TaskClock is the speaking preparation or recording countdown.
	TaskClock
)

type (
	// ContentLoaded delivers the result of FetchContent.
	ContentLoaded struct {
		FetchID int
		Content exam.Content
	}
	// ContentFailed delivers a failed FetchContent.
	ContentFailed struct {
		FetchID int
		Err     error
	}
	RetryRequested  struct{}
	NextItem        struct{}
	PreviousItem    struct{}
	SubmitRequested struct{}
	// AnswerRecorded overwrites the answer at Index.
	AnswerRecorded struct {
		Index int
		Value string
	}
	// TimerTicked is one elapsed second for the countdown with Tag.
	TimerTicked struct {
		Timer TimerKind
		Tag   int
	}
	// TaskStarted begins preparation for the current speaking task.
	TaskStarted struct{}
	// CaptureFailed reports that StartCapture could not open the device.
	CaptureFailed struct{ Err error }
	PlayRequested struct{}
	PlaybackEnded struct{}
	// PlaybackFailed ends playback without using up a play.
	PlaybackFailed struct{ Err error }
	// Quit tears the section down. Every later event is ignored.
	Quit struct{}
)

func (ContentLoaded) isEvent()   {}
func (ContentFailed) isEvent()   {}
func (RetryRequested) isEvent()  {}
func (NextItem) isEvent()        {}
func (PreviousItem) isEvent()    {}
func (SubmitRequested) isEvent() {}
func (AnswerRecorded) isEvent()  {}
func (TimerTicked) isEvent()     {}
func (TaskStarted) isEvent()     {}
func (CaptureFailed) isEvent()   {}
func (PlayRequested) isEvent()   {}
func (PlaybackEnded) isEvent()   {}
func (PlaybackFailed) isEvent()  {}
func (Quit) isEvent()            {}

// Effect is work the caller must perform on behalf of the machine. Results
// come back as events.
type Effect interface{ isEffect() }

type (
	// FetchContent asks for section content. Answer with ContentLoaded or
	// ContentFailed carrying the same FetchID.
	FetchContent struct {
		FetchID  int
		TestType exam.TestType
	}
	// ScheduleTick asks for a TimerTicked one second from now.
	ScheduleTick struct {
		Timer TimerKind
		Tag   int
	}
	// StartCapture opens the microphone for the speaking task at Index.
	StartCapture struct {
		Index  int
		TaskID int
	}
	// StopCapture releases the microphone.
	StopCapture struct{ Index int }
	// PlayTranscript reads Text aloud. Answer with PlaybackEnded or
	// PlaybackFailed.
	PlayTranscript struct{ Text string }
	StopPlayback   struct{}
	// Complete carries the final result.
	Complete struct{ Result exam.SectionResult }
)

func (FetchContent) isEffect()   {}
func (ScheduleTick) isEffect()   {}
func (StartCapture) isEffect()   {}
func (StopCapture) isEffect()    {}
func (PlayTranscript) isEffect() {}
func (StopPlayback) isEffect()   {}
func (Complete) isEffect()       {}
