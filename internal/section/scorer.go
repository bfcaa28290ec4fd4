package section

import "github.com/abhisek/aptiz/internal/exam"

// Score counts answers that exactly match the expected value at the same
// position. Unanswered slots never match. total is len(expected).
func Score(expected []string, answers exam.AnswerSet) (score, total int) {
	total = len(expected)
	for i, want := range expected {
		if got, ok := answers.Get(i); ok && got == want {
			score++
		}
	}
	return score, total
}

// ScoreSection scores a completed section. Writing and speaking earn full
// participation credit.
func ScoreSection(tt exam.TestType, expected []string, answers exam.AnswerSet) exam.SectionResult {
	score, total := Score(expected, answers)
	if !tt.Objective() {
		score = total
	}
	return exam.SectionResult{Score: score, Total: total, TestType: tt}
}
