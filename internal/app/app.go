// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/router"
	"github.com/abhisek/aptiz/internal/screen"
	"github.com/abhisek/aptiz/internal/screens/dashboard"
	"github.com/abhisek/aptiz/internal/screens/results"
	"github.com/abhisek/aptiz/internal/screens/section"
	"github.com/abhisek/aptiz/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	Section section.Deps

	// Notice is shown on the dashboard, e.g. a server version warning.
	Notice string
}

// screens builds each view's screen from Options.
type screens struct {
	opts Options
}

var _ router.Screens = screens{}

func (s screens) Dashboard() screen.Screen {
	return dashboard.New(s.opts.Notice)
}

func (s screens) Section(tt exam.TestType, id string) screen.Screen {
	return section.New(tt, id, s.opts.Section)
}

func (s screens) Results(result exam.SectionResult) screen.Screen {
	return results.New(result)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel on the dashboard.
func newAppModel(opts Options) AppModel {
	if opts.Section.Logger == nil {
		opts.Section.Logger = zap.NewNop()
	}
	return AppModel{
		router: router.New(screens{opts: opts}),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			// Release the microphone and speaker before exiting.
			if c, ok := m.router.Active().(screen.Closer); ok {
				return m, tea.Sequence(c.Close(), tea.Quit)
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render lays out the header, active screen and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
