package components

import (
	"fmt"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/ui/theme"
)

// TextArea wraps bubbles/textarea with a live word count.
type TextArea struct {
	Model     textarea.Model
	WordLimit int
}

// NewTextArea creates a focused text area holding value.
func NewTextArea(placeholder, value string, wordLimit int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetValue(value)
	ta.Focus()
	return TextArea{Model: ta, WordLimit: wordLimit}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetSize resizes the editing area.
func (t *TextArea) SetSize(width, height int) {
	t.Model.SetWidth(width)
	t.Model.SetHeight(height)
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// WordCount counts the words typed so far.
func (t TextArea) WordCount() int {
	return exam.WordCount(t.Model.Value())
}

// View renders the text area and the word counter below it.
func (t TextArea) View() string {
	n := t.WordCount()
	counter := fmt.Sprintf("%d words", n)
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.WordLimit > 0 {
		counter = fmt.Sprintf("%d / %d words", n, t.WordLimit)
		if n > t.WordLimit {
			style = theme.Warning
		}
	}
	return t.Model.View() + "\n" + style.Render(counter)
}
