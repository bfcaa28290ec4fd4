// Package results shows the score of a completed section.
package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/router"
	"github.com/abhisek/aptiz/internal/screen"
	"github.com/abhisek/aptiz/internal/ui/components"
	"github.com/abhisek/aptiz/internal/ui/layout"
	"github.com/abhisek/aptiz/internal/ui/theme"
)

// ResultsScreen displays a SectionResult.
type ResultsScreen struct {
	result exam.SectionResult
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a new ResultsScreen.
func New(result exam.SectionResult) *ResultsScreen {
	return &ResultsScreen{result: result}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return r.result.TestType.String() + " Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Dashboard"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return r, func() tea.Msg { return router.BackToDashboardMsg{} }
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	res := r.result
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).
		Render(res.TestType.String() + " complete!"))
	b.WriteString("\n\n")

	if res.TestType.Objective() {
		b.WriteString(center.Foreground(scoreColor(res.Percentage())).Bold(true).
			Render(fmt.Sprintf("%d%%", res.Percentage())))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d of %d correct", res.Score, res.Total)))
		b.WriteString("\n\n")
		bar := components.NewCountBar("Score", res.Score, res.Total, min(cw, 50))
		b.WriteString(center.Render(bar.View()))
		b.WriteString("\n\n")
	} else {
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d of %d responses saved", res.Score, res.Total)))
		b.WriteString("\n\n")
	}

	b.WriteString(center.Foreground(theme.Text).Render(res.Feedback()))
	b.WriteString("\n\n")
	b.WriteString(center.Render(theme.Hint.Render("Press Enter to return to the dashboard")))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func scoreColor(pct int) color.Color {
	switch {
	case pct >= 80:
		return theme.Success
	case pct >= 40:
		return theme.Accent
	default:
		return theme.Error
	}
}
