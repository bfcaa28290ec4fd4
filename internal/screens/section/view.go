package section

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/exam"
	sec "github.com/abhisek/aptiz/internal/section"
	"github.com/abhisek/aptiz/internal/ui/components"
	"github.com/abhisek/aptiz/internal/ui/theme"
)

func (s *SectionScreen) View(width, height int) string {
	switch s.machine.State() {
	case sec.Loading:
		return renderLoading(width, s.machine.TestType())
	case sec.Failed:
		return renderError(width, s.machine.Err())
	case sec.Submitting, sec.Completed, sec.Closed:
		return renderCentered(width, theme.TextDim, "\n\n\n  Scoring your answers...")
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	if s.machine.ItemCount() == 0 {
		return renderCentered(width, theme.TextDim, "\n\n\n  This section has no questions. Press Ctrl+S to finish.")
	}

	inner := min(width-4, 100)
	var body string
	switch c := s.machine.Content().(type) {
	case *exam.GrammarVocabularyContent:
		body = s.renderChoice(inner)
	case *exam.ReadingContent:
		body = s.renderReading(c, inner, height)
	case *exam.ListeningContent:
		body = s.renderListening(c, inner)
	case *exam.WritingContent:
		body = s.renderWriting(c, inner, height)
	case *exam.SpeakingContent:
		body = s.renderSpeaking(c, inner)
	}

	var b strings.Builder
	b.WriteString(s.renderProgress(inner))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(s.renderButtons())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *SectionScreen) itemNoun() string {
	switch s.machine.TestType() {
	case exam.Writing, exam.Speaking:
		return "Task"
	}
	return "Question"
}

func (s *SectionScreen) renderProgress(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%s %d of %d", s.itemNoun(), s.machine.Index()+1, s.machine.ItemCount()))
	bar := components.NewCountBar("Answered", s.machine.Answered(), s.machine.ItemCount(), max(width-lipgloss.Width(left)-4, 20))
	return left + "    " + bar.View()
}

func (s *SectionScreen) renderChoice(width int) string {
	return s.mc.View(width)
}

func (s *SectionScreen) renderReading(c *exam.ReadingContent, width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(c.Task.Title))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(c.Task.Instructions))
	b.WriteString("\n\n")

	passage := ""
	if c.Task.Passage != nil {
		passage = *c.Task.Passage
	}
	wrapped := lipgloss.NewStyle().Width(width - 4).Render(passage)
	lines := strings.Split(wrapped, "\n")

	visible := max(height/3, 4)
	start := min(s.scroll, max(len(lines)-visible, 0))
	end := min(start+visible, len(lines))
	b.WriteString(theme.Passage.Render(strings.Join(lines[start:end], "\n")))
	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("lines %d-%d of %d  (PgUp/PgDn to scroll)", start+1, end, len(lines))))
	}
	b.WriteString("\n\n")
	b.WriteString(s.mc.View(width))
	return b.String()
}

func (s *SectionScreen) renderListening(c *exam.ListeningContent, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(c.Task.Title))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(c.Task.Instructions))
	b.WriteString("\n\n")

	switch {
	case s.machine.Playing():
		b.WriteString(theme.Warning.Render("♪ Playing audio..."))
	case s.machine.PlaysLeft() > 0:
		b.WriteString(theme.Body.Render(fmt.Sprintf("Press P to play the audio (%d plays left)", s.machine.PlaysLeft())))
	default:
		b.WriteString(theme.Hint.Render("You have used all your plays."))
	}
	b.WriteString("\n\n")
	b.WriteString(s.mc.View(width))
	return b.String()
}

func (s *SectionScreen) renderWriting(c *exam.WritingContent, width, height int) string {
	task := c.Tasks[s.machine.Index()]
	s.text.SetSize(width-2, max(height/3, 5))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(task.Instructions))
	b.WriteString("\n\n")
	b.WriteString(s.text.View())
	return b.String()
}

func (s *SectionScreen) renderSpeaking(c *exam.SpeakingContent, width int) string {
	task := c.Tasks[s.machine.Index()]

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Bold(true).Render(task.Instructions))
	b.WriteString("\n\n")
	if task.ImagePromptURL != "" {
		b.WriteString(theme.Hint.Render("Picture: " + task.ImagePromptURL))
		b.WriteString("\n\n")
	}

	remaining := s.machine.TaskRemaining()
	switch s.machine.TaskStatus() {
	case sec.TaskIdle:
		b.WriteString(theme.Body.Render(fmt.Sprintf("You will have %ds to prepare and %ds to speak. Press Enter to begin.",
			task.PreparationSeconds, task.RecordingSeconds)))
	case sec.TaskPreparing:
		b.WriteString(theme.Warning.Render(fmt.Sprintf("Prepare your answer... %ds", remaining)))
	case sec.TaskRecording:
		b.WriteString(theme.Danger.Render(fmt.Sprintf("● Recording... %ds", remaining)))
	case sec.TaskRecorded:
		msg := "Response recorded."
		if rec, ok := s.recordings[s.machine.Index()]; ok && rec.Duration > 0 {
			msg = fmt.Sprintf("Response recorded (%.0fs).", rec.Duration.Seconds())
		}
		b.WriteString(theme.Chosen.Render(msg + " Press R to record again."))
	case sec.TaskCaptureError:
		b.WriteString(theme.Danger.Render(exam.UserMessage(s.machine.Err())))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press R to try again."))
	}
	return b.String()
}

func (s *SectionScreen) renderButtons() string {
	last := s.machine.IsLast()
	canAdvance := s.machine.CanAdvance()
	prevDisabled := s.machine.Index() == 0
	if s.machine.TestType() == exam.Speaking {
		prevDisabled = true
	}
	return components.ButtonRow(
		components.Button{Label: "Previous", Key: "Shift+Tab", Disabled: prevDisabled},
		components.Button{Label: "Next", Key: "Tab", Disabled: !canAdvance, Hidden: last},
		components.Button{Label: "Finish", Key: "Ctrl+S", Disabled: !canAdvance, Primary: canAdvance, Hidden: !last},
	)
}

func renderCentered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(text)
}

func renderLoading(width int, tt exam.TestType) string {
	return renderCentered(width, theme.TextDim,
		fmt.Sprintf("\n\n\n  Generating your %s test...", tt))
}

func renderError(width int, err error) string {
	return renderCentered(width, theme.Error,
		fmt.Sprintf("\n\n\n  %s\n\n  Press R to retry or Esc to go back.", exam.UserMessage(err)))
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this section?"))
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.TextDim, "Your answers will not be scored."))
	b.WriteString("\n\n")
	b.WriteString(renderCentered(width, theme.Error, "[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.Primary, "[N] No, keep going"))
	return b.String()
}
