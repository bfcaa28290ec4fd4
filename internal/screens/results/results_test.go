package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/router"
)

func TestResultsScreen_Title(t *testing.T) {
	r := New(exam.SectionResult{TestType: exam.Reading, Score: 3, Total: 5})
	if r.Title() != "Reading Results" {
		t.Errorf("Title = %q", r.Title())
	}
}

func TestResultsScreen_ObjectiveView(t *testing.T) {
	r := New(exam.SectionResult{TestType: exam.GrammarVocabulary, Score: 1, Total: 25})
	view := r.View(100, 30)
	for _, want := range []string{"4%", "1 of 25 correct", "challenging area"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultsScreen_SubjectiveView(t *testing.T) {
	r := New(exam.SectionResult{TestType: exam.Writing, Score: 3, Total: 3})
	view := r.View(100, 30)
	if !strings.Contains(view, "3 of 3 responses saved") {
		t.Error("expected the saved responses line")
	}
	if strings.Contains(view, "100%") {
		t.Error("subjective sections should not show a percentage")
	}
}

func TestResultsScreen_BackToDashboard(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		r := New(exam.SectionResult{TestType: exam.Listening})
		_, cmd := r.Update(tea.KeyPressMsg{Code: key})
		if cmd == nil {
			t.Fatalf("key %v: expected a command", key)
		}
		if _, ok := cmd().(router.BackToDashboardMsg); !ok {
			t.Errorf("key %v: expected BackToDashboardMsg", key)
		}
	}
}

func TestResultsScreen_OtherKeysIgnored(t *testing.T) {
	r := New(exam.SectionResult{TestType: exam.Listening})
	if _, cmd := r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("expected no command")
	}
}
