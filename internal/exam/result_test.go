package exam

import "testing"

func TestSectionResult_Percentage(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{0, 0, 0},
		{1, 25, 4},
		{2, 3, 67},
		{5, 5, 100},
	}
	for _, tt := range tests {
		r := SectionResult{Score: tt.score, Total: tt.total, TestType: Reading}
		if got := r.Percentage(); got != tt.want {
			t.Errorf("Percentage(%d/%d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestSectionResult_Feedback(t *testing.T) {
	tests := []struct {
		r      SectionResult
		prefix string
	}{
		{SectionResult{Score: 4, Total: 5, TestType: Reading}, "Excellent work!"},
		{SectionResult{Score: 3, Total: 5, TestType: Reading}, "Good job!"},
		{SectionResult{Score: 2, Total: 5, TestType: Listening}, "You've made a good start"},
		{SectionResult{Score: 0, Total: 0, TestType: GrammarVocabulary}, "This seems to be a challenging area."},
		{SectionResult{Score: 3, Total: 3, TestType: Writing}, "Your responses have been saved."},
	}
	for _, tt := range tests {
		got := tt.r.Feedback()
		if len(got) < len(tt.prefix) || got[:len(tt.prefix)] != tt.prefix {
			t.Errorf("Feedback(%v) = %q, want prefix %q", tt.r, got, tt.prefix)
		}
	}
}

func TestAnswerSet(t *testing.T) {
	a := NewAnswerSet(3)
	if a.Len() != 3 || a.Answered() != 0 {
		t.Fatalf("new set: len %d answered %d", a.Len(), a.Answered())
	}

	if _, ok := a.Get(0); ok {
		t.Fatal("slot should start unanswered")
	}

	a.Set(0, "")
	if v, ok := a.Get(0); !ok || v != "" {
		t.Fatal("empty answer should still count as answered")
	}

	a.Set(1, "first")
	a.Set(1, "second")
	if v, _ := a.Get(1); v != "second" {
		t.Fatalf("Set should overwrite, got %q", v)
	}

	if a.Set(5, "x") {
		t.Fatal("out of range Set should be ignored")
	}
	if a.Len() != 3 {
		t.Fatal("set must never change length")
	}

	c := a.Clone()
	c.Set(2, "clone")
	if _, ok := a.Get(2); ok {
		t.Fatal("Clone should not share storage")
	}
}

func TestWordCount(t *testing.T) {
	if n := WordCount("  Dear Sir,\n\nthe parcel  arrived broken. "); n != 6 {
		t.Fatalf("WordCount = %d, want 6", n)
	}
}
