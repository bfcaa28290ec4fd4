package router

import (
	"github.com/google/uuid"

	"github.com/abhisek/aptiz/internal/exam"
)

// View is the top-level navigation state.
type View int

const (
	ViewDashboard View = iota
	ViewActive
	ViewResults
)

func (v View) String() string {
	switch v {
	case ViewActive:
		return "active"
	case ViewResults:
		return "results"
	}
	return "dashboard"
}

// Nav tracks which view is shown and which section instance is live.
type Nav struct {
	view      View
	testType  exam.TestType
	sectionID string
	result    exam.SectionResult

	newID func() string
}

// NewNav starts on the dashboard.
func NewNav() *Nav {
	return &Nav{newID: uuid.NewString}
}

// Start opens a fresh section instance and returns its ID. Any previous
// instance is discarded.
func (n *Nav) Start(tt exam.TestType) string {
	n.view = ViewActive
	n.testType = tt
	n.sectionID = n.newID()
	n.result = exam.SectionResult{}
	return n.sectionID
}

// Complete moves to the results view. It reports false, and changes
// nothing, unless id is the live section.
func (n *Nav) Complete(id string, result exam.SectionResult) bool {
	if n.view != ViewActive || id == "" || id != n.sectionID {
		return false
	}
	n.view = ViewResults
	n.result = result
	n.sectionID = ""
	return true
}

// Back returns to the dashboard from any view.
func (n *Nav) Back() {
	n.view = ViewDashboard
	n.sectionID = ""
}

func (n *Nav) View() View                 { return n.view }
func (n *Nav) TestType() exam.TestType    { return n.testType }
func (n *Nav) SectionID() string          { return n.sectionID }
func (n *Nav) Result() exam.SectionResult { return n.result }

// Live reports whether id names the active section.
func (n *Nav) Live(id string) bool {
	return n.view == ViewActive && id != "" && id == n.sectionID
}
