// Package section drives one exam section from content fetch to result.
// The Machine is pure: it never performs I/O, it only returns effects.
package section

import (
	"fmt"
	"time"

	"github.com/abhisek/aptiz/internal/exam"
)

// MaxPlays is how many times a listening transcript may be played.
const MaxPlays = 2

// State is the section lifecycle state.
type State int

const (
	Loading State = iota
	Ready
	InProgress
	Submitting
	Completed
	Failed
	Closed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case InProgress:
		return "in-progress"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// TaskStatus is the recording state of one speaking task.
type TaskStatus int

const (
	TaskIdle TaskStatus = iota
	TaskPreparing
	TaskRecording
	TaskRecorded
	TaskCaptureError
)

func (s TaskStatus) String() string {
	switch s {
	case TaskIdle:
		return "idle"
	case TaskPreparing:
		return "preparing"
	case TaskRecording:
		return "recording"
	case TaskRecorded:
		return "recorded"
	case TaskCaptureError:
		return "error"
	}
	return fmt.Sprintf("TaskStatus(%d)", int(s))
}

// Machine is the state machine for one section instance.
type Machine struct {
	testType exam.TestType
	state    State
	fetchID  int
	err      error

	content  exam.Content
	expected []string
	answers  exam.AnswerSet
	index    int

	clock Timer
	task  Timer

	// speaking
	tasks []TaskStatus

	// listening
	plays   int
	playing bool

	result exam.SectionResult
}

// New creates a machine in Loading. Call Start to get the first fetch.
func New(tt exam.TestType) *Machine {
	return &Machine{testType: tt, state: Loading}
}

// Start issues the initial content fetch.
func (m *Machine) Start() []Effect {
	if m.state != Loading || m.fetchID != 0 {
		return nil
	}
	return m.fetch()
}

func (m *Machine) fetch() []Effect {
	m.fetchID++
	m.state = Loading
	m.err = nil
	return []Effect{FetchContent{FetchID: m.fetchID, TestType: m.testType}}
}

// HandleEvent applies ev and returns the effects to run.
func (m *Machine) HandleEvent(ev Event) []Effect {
	if m.state == Closed {
		return nil
	}
	if _, ok := ev.(Quit); ok {
		return m.quit()
	}

	switch m.state {
	case Loading:
		return m.handleLoading(ev)
	case Failed:
		if _, ok := ev.(RetryRequested); ok {
			return m.fetch()
		}
	case Ready, InProgress:
		return m.handleActive(ev)
	}
	return nil
}

func (m *Machine) handleLoading(ev Event) []Effect {
	switch e := ev.(type) {
	case ContentLoaded:
		if e.FetchID != m.fetchID {
			return nil
		}
		if e.Content == nil || e.Content.TestType() != m.testType {
			m.state = Failed
			m.err = &exam.SchemaViolationError{Err: fmt.Errorf("content does not belong to %s", m.testType)}
			return nil
		}
		return m.load(e.Content)
	case ContentFailed:
		if e.FetchID != m.fetchID {
			return nil
		}
		m.state = Failed
		m.err = e.Err
	}
	return nil
}

func (m *Machine) load(c exam.Content) []Effect {
	m.content = c
	m.expected = c.ExpectedAnswers()
	m.answers = exam.NewAnswerSet(c.ItemCount())
	m.index = 0
	m.state = Ready
	if m.testType == exam.Speaking {
		m.tasks = make([]TaskStatus, c.ItemCount())
	}

	if d := m.testType.Duration(); d > 0 {
		tag := m.clock.Start(d)
		return []Effect{ScheduleTick{Timer: SectionClock, Tag: tag}}
	}
	return nil
}

func (m *Machine) handleActive(ev Event) []Effect {
	n := m.answers.Len()

	switch e := ev.(type) {
	case NextItem:
		if !m.CanAdvance() || m.index >= n-1 {
			return nil
		}
		m.index++
		m.touch()

	case PreviousItem:
		if m.testType == exam.Speaking || m.index == 0 {
			return nil
		}
		m.index--
		m.touch()

	case AnswerRecorded:
		if m.answers.Set(e.Index, e.Value) {
			m.touch()
		}

	case SubmitRequested:
		if !m.CanAdvance() {
			return nil
		}
		return m.submit()

	case TimerTicked:
		return m.tick(e)

	case TaskStarted:
		return m.startTask()

	case CaptureFailed:
		if m.testType != exam.Speaking || n == 0 {
			return nil
		}
		var effects []Effect
		switch m.tasks[m.index] {
		case TaskRecording:
			effects = append(effects, StopCapture{Index: m.index})
		case TaskPreparing:
		default:
			return nil
		}
		m.task.Stop()
		m.tasks[m.index] = TaskCaptureError
		m.err = &exam.MicrophoneUnavailableError{Err: e.Err}
		return effects

	case PlayRequested:
		if m.testType != exam.Listening || m.playing || m.plays >= MaxPlays {
			return nil
		}
		lc, ok := m.content.(*exam.ListeningContent)
		if !ok {
			return nil
		}
		m.playing = true
		m.touch()
		return []Effect{PlayTranscript{Text: lc.Task.Transcript}}

	case PlaybackEnded:
		if m.playing {
			m.playing = false
			m.plays++
		}

	case PlaybackFailed:
		m.playing = false
	}
	return nil
}

func (m *Machine) tick(e TimerTicked) []Effect {
	switch e.Timer {
	case SectionClock:
		ok, expired := m.clock.Tick(e.Tag)
		if !ok {
			return nil
		}
		if expired {
			return m.submit()
		}
		return []Effect{ScheduleTick{Timer: SectionClock, Tag: e.Tag}}

	case TaskClock:
		ok, expired := m.task.Tick(e.Tag)
		if !ok {
			return nil
		}
		if !expired {
			return []Effect{ScheduleTick{Timer: TaskClock, Tag: e.Tag}}
		}
		return m.advanceTask()
	}
	return nil
}

func (m *Machine) startTask() []Effect {
	if m.testType != exam.Speaking || len(m.tasks) == 0 {
		return nil
	}
	switch m.tasks[m.index] {
	case TaskIdle, TaskRecorded, TaskCaptureError:
	default:
		return nil
	}

	st := m.speakingTask()
	m.tasks[m.index] = TaskPreparing
	m.err = nil
	m.touch()
	tag := m.task.Start(time.Duration(st.PreparationSeconds) * time.Second)
	return []Effect{ScheduleTick{Timer: TaskClock, Tag: tag}}
}

// advanceTask runs when a speaking countdown reaches zero.
func (m *Machine) advanceTask() []Effect {
	switch m.tasks[m.index] {
	case TaskPreparing:
		st := m.speakingTask()
		m.tasks[m.index] = TaskRecording
		tag := m.task.Start(time.Duration(st.RecordingSeconds) * time.Second)
		return []Effect{
			StartCapture{Index: m.index, TaskID: st.ID},
			ScheduleTick{Timer: TaskClock, Tag: tag},
		}
	case TaskRecording:
		m.tasks[m.index] = TaskRecorded
		return []Effect{StopCapture{Index: m.index}}
	}
	return nil
}

func (m *Machine) speakingTask() exam.SpeakingTask {
	return m.content.(*exam.SpeakingContent).Tasks[m.index]
}

func (m *Machine) touch() {
	if m.state == Ready {
		m.state = InProgress
	}
}

func (m *Machine) submit() []Effect {
	effects := m.release()
	m.state = Submitting
	m.result = ScoreSection(m.testType, m.expected, m.answers)
	m.state = Completed
	return append(effects, Complete{Result: m.result})
}

func (m *Machine) quit() []Effect {
	effects := m.release()
	m.state = Closed
	return effects
}

// release stops both countdowns and hands back the microphone and speaker.
func (m *Machine) release() []Effect {
	m.clock.Stop()
	m.task.Stop()

	var effects []Effect
	if m.index < len(m.tasks) && m.tasks[m.index] == TaskRecording {
		m.tasks[m.index] = TaskIdle
		effects = append(effects, StopCapture{Index: m.index})
	}
	if m.playing {
		m.playing = false
		effects = append(effects, StopPlayback{})
	}
	return effects
}

// CanAdvance reports whether NextItem and SubmitRequested are allowed. For
// speaking they wait until the current task is recorded.
func (m *Machine) CanAdvance() bool {
	if m.state != Ready && m.state != InProgress {
		return false
	}
	if m.testType == exam.Speaking && len(m.tasks) > 0 {
		return m.tasks[m.index] == TaskRecorded
	}
	return true
}

func (m *Machine) TestType() exam.TestType { return m.testType }
func (m *Machine) State() State            { return m.state }
func (m *Machine) FetchID() int            { return m.fetchID }

// Err is the fetch failure in Failed, or the capture failure for the current
// speaking task.
func (m *Machine) Err() error { return m.err }

// Content is nil until loaded.
func (m *Machine) Content() exam.Content { return m.content }

func (m *Machine) Index() int     { return m.index }
func (m *Machine) ItemCount() int { return m.answers.Len() }
func (m *Machine) IsLast() bool   { return m.index >= m.answers.Len()-1 }
func (m *Machine) Answered() int  { return m.answers.Answered() }
func (m *Machine) Remaining() int { return m.clock.Remaining() }
func (m *Machine) Playing() bool  { return m.playing }
func (m *Machine) PlaysLeft() int { return MaxPlays - m.plays }

// TaskRemaining is the seconds left in the speaking preparation or recording
// window.
func (m *Machine) TaskRemaining() int { return m.task.Remaining() }

// Answer returns the answer at i and whether one was recorded.
func (m *Machine) Answer(i int) (string, bool) { return m.answers.Get(i) }

// TaskStatus returns the current speaking task's status.
func (m *Machine) TaskStatus() TaskStatus {
	if m.index < len(m.tasks) {
		return m.tasks[m.index]
	}
	return TaskIdle
}

// Result is valid once State is Completed.
func (m *Machine) Result() exam.SectionResult { return m.result }
