package exam

import (
	"strings"
	"testing"
)

func TestWritingTasks(t *testing.T) {
	c := WritingTasks()
	if len(c.Tasks) != 3 {
		t.Fatalf("expected 3 writing tasks, got %d", len(c.Tasks))
	}
	for i, task := range c.Tasks {
		if task.ID != i+1 {
			t.Errorf("task %d has ID %d", i, task.ID)
		}
		if task.WordLimit != nil {
			t.Errorf("task %d should have no word limit", task.ID)
		}
	}
	if !strings.HasPrefix(c.Tasks[0].Instructions, "You are joining a new sports club.") {
		t.Errorf("unexpected first task: %q", c.Tasks[0].Instructions)
	}
	if err := Validate(c); err != nil {
		t.Fatalf("static writing tasks should validate: %v", err)
	}

	// Callers get their own copy.
	c.Tasks[0].Instructions = "changed"
	if WritingTasks().Tasks[0].Instructions == "changed" {
		t.Fatal("WritingTasks should return a copy")
	}
}

func TestSpeakingTasks(t *testing.T) {
	c := SpeakingTasks()
	if len(c.Tasks) != 3 {
		t.Fatalf("expected 3 speaking tasks, got %d", len(c.Tasks))
	}

	windows := [][2]int{{15, 45}, {30, 45}, {30, 60}}
	for i, task := range c.Tasks {
		if task.PreparationSeconds != windows[i][0] || task.RecordingSeconds != windows[i][1] {
			t.Errorf("task %d windows = (%d,%d), want %v",
				task.ID, task.PreparationSeconds, task.RecordingSeconds, windows[i])
		}
	}

	if !strings.HasPrefix(c.Tasks[1].ImagePromptURL, "https://picsum.photos/seed/") {
		t.Errorf("picture task URL = %q", c.Tasks[1].ImagePromptURL)
	}
	if c.Tasks[0].ImagePromptURL != "" || c.Tasks[2].ImagePromptURL != "" {
		t.Error("only the picture task should carry an image")
	}
	if SpeakingTasks().Tasks[1].ImagePromptURL == c.Tasks[1].ImagePromptURL {
		t.Error("expected a fresh picture seed per call")
	}
	if err := Validate(c); err != nil {
		t.Fatalf("static speaking tasks should validate: %v", err)
	}
}

func TestStaticContent(t *testing.T) {
	for _, tt := range AllTestTypes {
		c, ok := StaticContent(tt)
		if ok != !tt.Remote() {
			t.Errorf("StaticContent(%s) ok = %v", tt, ok)
		}
		if ok && c.TestType() != tt {
			t.Errorf("StaticContent(%s) returned %s", tt, c.TestType())
		}
	}
}
