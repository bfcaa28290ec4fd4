// Package dashboard is the section picker shown at startup and after each
// section.
package dashboard

import (
	"fmt"
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

// DashboardScreen lists the five sections.
type DashboardScreen struct {
	menu   components.Menu
	notice string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard. A non-empty notice is shown under the menu,
// e.g. a server version warning.
func New(notice string) *DashboardScreen {
	items := make([]components.MenuItem, 0, len(exam.AllTestTypes)+1)
	for _, tt := range exam.AllTestTypes {
		items = append(items, components.MenuItem{
			Label:  tt.String(),
			Detail: sectionDetail(tt),
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.StartSectionMsg{TestType: tt} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	return &DashboardScreen{menu: components.NewMenu(items), notice: notice}
}

func sectionDetail(tt exam.TestType) string {
	if d := tt.Duration(); d > 0 {
		return fmt.Sprintf("%d min", int(d.Minutes()))
	}
	return "timed per task"
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "Enter", Description: "Start"},
		{Key: "1-5", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	compact := height < 22 || width < 60
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Subtitle.Render("Aptis General English practice")),
		components.Card(strings.TrimRight(d.menu.View(), "\n"), cw),
	}
	if d.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Warning.Render(d.notice)))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}
