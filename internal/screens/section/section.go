// Package section is the screen for one running exam section.
package section

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/media"
	"github.com/abhisek/aptiz/internal/router"
	"github.com/abhisek/aptiz/internal/screen"
	sec "github.com/abhisek/aptiz/internal/section"
	"github.com/abhisek/aptiz/internal/ui/components"
	"github.com/abhisek/aptiz/internal/ui/layout"
)

// ContentSource fetches section content. client.Client implements it.
type ContentSource interface {
	RequestContent(ctx context.Context, tt exam.TestType) (exam.Content, error)
}

// Deps are the devices and services a section screen drives.
type Deps struct {
	Source   ContentSource
	Recorder media.Recorder
	Speaker  media.Speaker
	Logger   *zap.Logger
}

// SectionScreen runs a section.Machine and performs its effects.
type SectionScreen struct {
	id      string
	deps    Deps
	machine *sec.Machine

	mc   components.MultiChoice
	text components.TextArea

	// index the widgets were built for; -1 forces a rebuild
	widgetIndex int
	scroll      int
	confirmQuit bool

	playCancel context.CancelFunc
	recordings map[int]media.Recording
	started    time.Time
}

var _ screen.Screen = (*SectionScreen)(nil)
var _ screen.KeyHintProvider = (*SectionScreen)(nil)
var _ screen.StatusProvider = (*SectionScreen)(nil)
var _ screen.Closer = (*SectionScreen)(nil)

// New creates the screen for section instance id.
func New(tt exam.TestType, id string, deps Deps) *SectionScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Recorder == nil {
		deps.Recorder = &media.NopRecorder{}
	}
	if deps.Speaker == nil {
		deps.Speaker = media.NopSpeaker{}
	}
	return &SectionScreen{
		id:          id,
		deps:        deps,
		machine:     sec.New(tt),
		widgetIndex: -1,
		recordings:  make(map[int]media.Recording),
	}
}

func (s *SectionScreen) Init() tea.Cmd {
	s.started = time.Now()
	s.deps.Logger.Info("section started",
		zap.String("section_id", s.id),
		zap.String("test_type", s.machine.TestType().Slug()))
	return s.run(s.machine.Start())
}

func (s *SectionScreen) Title() string {
	return s.machine.TestType().String()
}

// Machine exposes the state machine for inspection.
func (s *SectionScreen) Machine() *sec.Machine {
	return s.machine
}

// Close quits the machine, releasing the microphone and speaker.
func (s *SectionScreen) Close() tea.Cmd {
	return s.run(s.machine.HandleEvent(sec.Quit{}))
}

func (s *SectionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentMsg:
		if msg.err != nil {
			s.deps.Logger.Warn("content fetch failed",
				zap.String("section_id", s.id),
				zap.Error(msg.err))
			return s, s.handle(sec.ContentFailed{FetchID: msg.fetchID, Err: msg.err})
		}
		return s, s.handle(sec.ContentLoaded{FetchID: msg.fetchID, Content: msg.content})

	case tickMsg:
		return s, s.handle(msg.tick)

	case captureStartedMsg:
		if msg.err != nil {
			s.deps.Logger.Warn("capture failed", zap.String("section_id", s.id), zap.Error(msg.err))
			return s, s.handle(sec.CaptureFailed{Err: msg.err})
		}
		return s, nil

	case captureStoppedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, media.ErrNotRecording) {
				s.deps.Logger.Warn("stop capture", zap.String("section_id", s.id), zap.Error(msg.err))
			}
			return s, nil
		}
		s.recordings[msg.index] = msg.rec
		return s, s.handle(sec.AnswerRecorded{Index: msg.index, Value: msg.rec.Path})

	case playbackDoneMsg:
		s.playCancel = nil
		if msg.err != nil {
			return s, s.handle(sec.PlaybackFailed{Err: msg.err})
		}
		return s, s.handle(sec.PlaybackEnded{})

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.machine.TestType() == exam.Writing && s.active() {
		return s, s.updateText(msg)
	}
	return s, nil
}

func (s *SectionScreen) active() bool {
	st := s.machine.State()
	return st == sec.Ready || st == sec.InProgress
}

func (s *SectionScreen) handle(ev sec.Event) tea.Cmd {
	cmd := s.run(s.machine.HandleEvent(ev))
	s.syncWidgets()
	return cmd
}

func (s *SectionScreen) back() tea.Cmd {
	return func() tea.Msg { return router.BackToDashboardMsg{} }
}

func (s *SectionScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	switch s.machine.State() {
	case sec.Loading:
		if key == "esc" {
			return s.back()
		}
		return nil
	case sec.Failed:
		switch key {
		case "r":
			return s.handle(sec.RetryRequested{})
		case "esc":
			return s.back()
		}
		return nil
	case sec.Ready, sec.InProgress:
	default:
		return nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s.back()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return nil
	case "tab":
		return s.handle(sec.NextItem{})
	case "shift+tab":
		return s.handle(sec.PreviousItem{})
	case "ctrl+s":
		if !s.machine.IsLast() {
			return nil
		}
		return s.handle(sec.SubmitRequested{})
	}

	switch s.machine.TestType() {
	case exam.GrammarVocabulary, exam.Reading, exam.Listening:
		return s.handleChoiceKey(msg)
	case exam.Writing:
		return s.updateText(msg)
	case exam.Speaking:
		if key == "enter" || key == "r" {
			return s.handle(sec.TaskStarted{})
		}
	}
	return nil
}

func (s *SectionScreen) handleChoiceKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "right":
		return s.handle(sec.NextItem{})
	case "left":
		return s.handle(sec.PreviousItem{})
	case "pgdown":
		s.scroll += 5
		return nil
	case "pgup":
		s.scroll = max(0, s.scroll-5)
		return nil
	case "p":
		if s.machine.TestType() == exam.Listening {
			return s.handle(sec.PlayRequested{})
		}
		return nil
	}

	s.syncWidgets()
	var chose bool
	s.mc, chose = s.mc.Update(msg)
	if !chose {
		return nil
	}
	value, _ := s.mc.Chosen()
	return s.handle(sec.AnswerRecorded{Index: s.machine.Index(), Value: value})
}

func (s *SectionScreen) updateText(msg tea.Msg) tea.Cmd {
	s.syncWidgets()
	before := s.text.Value()
	var cmd tea.Cmd
	s.text, cmd = s.text.Update(msg)
	if after := s.text.Value(); after != before {
		return tea.Batch(cmd, s.handle(sec.AnswerRecorded{Index: s.machine.Index(), Value: after}))
	}
	return cmd
}

// syncWidgets rebuilds the item widgets when the current item changed.
func (s *SectionScreen) syncWidgets() {
	idx := s.machine.Index()
	if s.machine.Content() == nil || idx == s.widgetIndex {
		return
	}
	s.widgetIndex = idx
	answer, _ := s.machine.Answer(idx)

	switch c := s.machine.Content().(type) {
	case *exam.GrammarVocabularyContent:
		if idx < len(c.Questions) {
			q := c.Questions[idx]
			s.mc = components.NewMultiChoice(q.Question, q.Options, answer)
		}
	case *exam.ReadingContent:
		if idx < len(c.Task.Questions) {
			q := c.Task.Questions[idx]
			s.mc = components.NewMultiChoice(q.QuestionText, q.Options, answer)
		}
	case *exam.ListeningContent:
		if idx < len(c.Task.Questions) {
			q := c.Task.Questions[idx]
			s.mc = components.NewMultiChoice(q.Question, q.Options, answer)
		}
	case *exam.WritingContent:
		limit := 0
		if idx < len(c.Tasks) && c.Tasks[idx].WordLimit != nil {
			limit = *c.Tasks[idx].WordLimit
		}
		s.text = components.NewTextArea("Type your response...", answer, limit)
	}
}

// run performs the machine's effects and returns the commands that feed
// their results back.
func (s *SectionScreen) run(effects []sec.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case sec.FetchContent:
			cmds = append(cmds, s.fetch(e))
		case sec.ScheduleTick:
			cmds = append(cmds, s.tick(e))
		case sec.StartCapture:
			cmds = append(cmds, s.startCapture(e))
		case sec.StopCapture:
			cmds = append(cmds, s.stopCapture(e))
		case sec.PlayTranscript:
			cmds = append(cmds, s.play(e))
		case sec.StopPlayback:
			if s.playCancel != nil {
				s.playCancel()
				s.playCancel = nil
			}
		case sec.Complete:
			cmds = append(cmds, s.complete(e))
		}
	}
	return tea.Batch(cmds...)
}

func (s *SectionScreen) fetch(e sec.FetchContent) tea.Cmd {
	id, src := s.id, s.deps.Source
	return func() tea.Msg {
		if src == nil {
			return contentMsg{id: id, fetchID: e.FetchID, err: &exam.GenerationFailedError{Detail: "no content source configured"}}
		}
		content, err := src.RequestContent(context.Background(), e.TestType)
		return contentMsg{id: id, fetchID: e.FetchID, content: content, err: err}
	}
}

func (s *SectionScreen) tick(e sec.ScheduleTick) tea.Cmd {
	id := s.id
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{id: id, tick: sec.TimerTicked{Timer: e.Timer, Tag: e.Tag}}
	})
}

func (s *SectionScreen) startCapture(e sec.StartCapture) tea.Cmd {
	id, rec := s.id, s.deps.Recorder
	return func() tea.Msg {
		return captureStartedMsg{id: id, err: rec.Start(context.Background(), e.TaskID)}
	}
}

func (s *SectionScreen) stopCapture(e sec.StopCapture) tea.Cmd {
	id, rec := s.id, s.deps.Recorder
	return func() tea.Msg {
		r, err := rec.Stop()
		return captureStoppedMsg{id: id, index: e.Index, rec: r, err: err}
	}
}

func (s *SectionScreen) play(e sec.PlayTranscript) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	s.playCancel = cancel
	id, speaker := s.id, s.deps.Speaker
	return func() tea.Msg {
		defer cancel()
		return playbackDoneMsg{id: id, err: speaker.Speak(ctx, e.Text)}
	}
}

func (s *SectionScreen) complete(e sec.Complete) tea.Cmd {
	s.deps.Logger.Info("section completed",
		zap.String("section_id", s.id),
		zap.String("test_type", e.Result.TestType.Slug()),
		zap.Int("score", e.Result.Score),
		zap.Int("total", e.Result.Total),
		zap.Duration("elapsed", time.Since(s.started)))
	id := s.id
	return func() tea.Msg {
		return router.SectionCompletedMsg{SectionID: id, Result: e.Result}
	}
}

// Status shows the running countdown in the header.
func (s *SectionScreen) Status() string {
	if !s.active() {
		return ""
	}
	if s.machine.TestType() == exam.Speaking {
		switch s.machine.TaskStatus() {
		case sec.TaskPreparing:
			return "Preparing " + layout.FormatClock(s.machine.TaskRemaining())
		case sec.TaskRecording:
			return "● Recording " + layout.FormatClock(s.machine.TaskRemaining())
		}
		return ""
	}
	return "⏱ " + layout.FormatClock(s.machine.Remaining())
}

func (s *SectionScreen) KeyHints() []layout.KeyHint {
	switch s.machine.State() {
	case sec.Loading:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case sec.Failed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave section"},
			{Key: "N", Description: "Keep going"},
		}
	}

	hints := []layout.KeyHint{{Key: "Tab/Shift+Tab", Description: "Next/Prev"}}
	switch s.machine.TestType() {
	case exam.GrammarVocabulary, exam.Reading:
		hints = append(hints, layout.KeyHint{Key: "A-D", Description: "Answer"})
	case exam.Listening:
		hints = append(hints,
			layout.KeyHint{Key: "A-D", Description: "Answer"},
			layout.KeyHint{Key: "P", Description: "Play"})
	case exam.Speaking:
		hints = []layout.KeyHint{
			{Key: "Enter", Description: "Record"},
			{Key: "Tab", Description: "Next task"},
		}
	}
	if s.machine.IsLast() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Finish"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}
