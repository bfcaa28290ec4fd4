package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/screen"
)

// StartSectionMsg opens a new section of the given type.
type StartSectionMsg struct {
	TestType exam.TestType
}

// SectionCompletedMsg reports a finished section.
type SectionCompletedMsg struct {
	SectionID string
	Result    exam.SectionResult
}

// BackToDashboardMsg returns to the dashboard.
type BackToDashboardMsg struct{}

// SectionMsg is implemented by asynchronous results that belong to one
// section instance. The router drops them once that instance is gone.
type SectionMsg interface {
	SectionTag() string
}

// Screens builds the screen for each view.
type Screens interface {
	Dashboard() screen.Screen
	Section(tt exam.TestType, sectionID string) screen.Screen
	Results(result exam.SectionResult) screen.Screen
}

// Router owns the single active screen and swaps it as Nav changes.
type Router struct {
	nav     *Nav
	screens Screens
	active  screen.Screen
}

// New creates a Router showing the dashboard.
func New(screens Screens) *Router {
	return &Router{
		nav:     NewNav(),
		screens: screens,
		active:  screens.Dashboard(),
	}
}

// Init runs the initial screen's Init.
func (r *Router) Init() tea.Cmd {
	return r.active.Init()
}

// replace closes the current screen and initializes next.
func (r *Router) replace(next screen.Screen) tea.Cmd {
	var closeCmd tea.Cmd
	if c, ok := r.active.(screen.Closer); ok {
		closeCmd = c.Close()
	}
	r.active = next
	return tea.Batch(closeCmd, next.Init())
}

// Active returns the current screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Nav exposes the navigation state.
func (r *Router) Nav() *Nav {
	return r.nav
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StartSectionMsg:
		id := r.nav.Start(msg.TestType)
		return r.replace(r.screens.Section(msg.TestType, id))

	case SectionCompletedMsg:
		if !r.nav.Complete(msg.SectionID, msg.Result) {
			return nil
		}
		return r.replace(r.screens.Results(msg.Result))

	case BackToDashboardMsg:
		r.nav.Back()
		return r.replace(r.screens.Dashboard())

	case SectionMsg:
		if !r.nav.Live(msg.SectionTag()) {
			return nil
		}
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.active.View(width, height)
}
