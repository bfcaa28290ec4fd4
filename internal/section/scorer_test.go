package section

import (
	"testing"

	"github.com/abhisek/aptiz/internal/exam"
)

func answers(vals ...string) exam.AnswerSet {
	a := exam.NewAnswerSet(len(vals))
	for i, v := range vals {
		if v != "" {
			a.Set(i, v)
		}
	}
	return a
}

func TestScore(t *testing.T) {
	expected := []string{"a", "b", "c", "d"}
	tests := []struct {
		name    string
		answers exam.AnswerSet
		want    int
	}{
		{"all correct", answers("a", "b", "c", "d"), 4},
		{"none answered", exam.NewAnswerSet(4), 0},
		{"partial", answers("a", "x", "", "d"), 2},
		{"case sensitive", answers("A", "b", "c", "d"), 3},
		{"short answer set", answers("a"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total := Score(expected, tt.answers)
			if score != tt.want {
				t.Errorf("score = %d, want %d", score, tt.want)
			}
			if total != 4 {
				t.Errorf("total = %d, want 4", total)
			}
		})
	}
}

func TestScore_EmptyAnswerDoesNotMatchEmptyExpected(t *testing.T) {
	score, total := Score([]string{""}, exam.NewAnswerSet(1))
	if score != 0 || total != 1 {
		t.Fatalf("got %d/%d, want 0/1", score, total)
	}
}

func TestScore_Idempotent(t *testing.T) {
	expected := []string{"a", "b"}
	a := answers("a", "x")
	s1, _ := Score(expected, a)
	s2, _ := Score(expected, a)
	if s1 != s2 || s1 != 1 {
		t.Fatalf("expected stable score 1, got %d then %d", s1, s2)
	}
}

func TestScoreSection(t *testing.T) {
	tests := []struct {
		name      string
		tt        exam.TestType
		expected  []string
		answers   exam.AnswerSet
		wantScore int
		wantTotal int
	}{
		{"objective", exam.Reading, []string{"a", "b"}, answers("a", ""), 1, 2},
		{"empty section", exam.GrammarVocabulary, nil, exam.NewAnswerSet(0), 0, 0},
		{"writing gets full credit", exam.Writing, make([]string, 3), exam.NewAnswerSet(3), 3, 3},
		{"speaking gets full credit", exam.Speaking, make([]string, 3), answers("x", "", ""), 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ScoreSection(tt.tt, tt.expected, tt.answers)
			if r.Score != tt.wantScore || r.Total != tt.wantTotal {
				t.Errorf("got %d/%d, want %d/%d", r.Score, r.Total, tt.wantScore, tt.wantTotal)
			}
			if r.TestType != tt.tt {
				t.Errorf("test type = %v, want %v", r.TestType, tt.tt)
			}
		})
	}
}
