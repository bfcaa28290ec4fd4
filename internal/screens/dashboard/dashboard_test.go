package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/router"
)

func TestDashboard_ListsSections(t *testing.T) {
	d := New("")
	view := d.View(100, 40)
	for _, tt := range exam.AllTestTypes {
		if !strings.Contains(view, tt.String()) {
			t.Errorf("view missing %q", tt.String())
		}
	}
	for _, want := range []string{"12 min", "35 min", "50 min", "40 min", "timed per task"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing duration %q", want)
		}
	}
}

func TestDashboard_EnterStartsSection(t *testing.T) {
	d := New("")
	d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.StartSectionMsg)
	if !ok {
		t.Fatalf("expected StartSectionMsg, got %T", cmd())
	}
	if msg.TestType != exam.Reading {
		t.Errorf("started %v, want Reading", msg.TestType)
	}
}

func TestDashboard_DigitShortcut(t *testing.T) {
	tests := []struct {
		key  rune
		want exam.TestType
	}{
		{'1', exam.GrammarVocabulary},
		{'3', exam.Writing},
		{'4', exam.Speaking},
		{'5', exam.Listening},
	}
	for _, tt := range tests {
		d := New("")
		_, cmd := d.Update(tea.KeyPressMsg{Code: tt.key, Text: string(tt.key)})
		if cmd == nil {
			t.Fatalf("key %c: expected a command", tt.key)
		}
		msg := cmd().(router.StartSectionMsg)
		if msg.TestType != tt.want {
			t.Errorf("key %c: started %v, want %v", tt.key, msg.TestType, tt.want)
		}
	}
}

func TestDashboard_Notice(t *testing.T) {
	d := New("Server version 2.0.0 may be incompatible")
	if !strings.Contains(d.View(100, 40), "may be incompatible") {
		t.Error("expected the notice in the view")
	}
}

func TestDashboard_CompactTitle(t *testing.T) {
	d := New("")
	if !strings.Contains(d.View(50, 20), titleCompact) {
		t.Error("expected compact title on a small terminal")
	}
}
