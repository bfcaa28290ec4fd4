package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. Choosing is not final: the
// learner can change the answer until the section is submitted.
type MultiChoice struct {
	Question    string
	Options     []string
	Selected    int
	ChosenIndex int
}

// NewMultiChoice creates a selector. chosen is the option previously picked,
// or "" when unanswered.
func NewMultiChoice(question string, options []string, chosen string) MultiChoice {
	m := MultiChoice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
	}
	for i, opt := range options {
		if chosen != "" && opt == chosen {
			m.ChosenIndex = i
			m.Selected = i
		}
	}
	return m
}

// Update handles arrows, Enter, and the letter or digit shortcuts. It
// reports whether an option was chosen.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.ChosenIndex = m.Selected
			return m, true
		}
	default:
		if i := shortcutIndex(key); i >= 0 && i < len(m.Options) {
			m.Selected = i
			m.ChosenIndex = i
			return m, true
		}
	}
	return m, false
}

func shortcutIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	switch c := key[0]; {
	case c >= '1' && c <= '9':
		return int(c - '1')
	case c >= 'a' && c <= 'f':
		return int(c - 'a')
	}
	return -1
}

// Chosen returns the chosen option text.
func (m MultiChoice) Chosen() (string, bool) {
	if m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}

// View renders the question and its options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	b.WriteString(questionStyle.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		mark := " "
		if i == m.ChosenIndex {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, optionLabels[i%len(optionLabels)], opt)

		switch {
		case i == m.ChosenIndex:
			b.WriteString(theme.Chosen.Render(line))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
