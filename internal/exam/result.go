package exam

import (
	"fmt"
	"math"
	"strings"
)

// SectionResult is the outcome of one completed section.
type SectionResult struct {
	Score    int      `json:"score"`
	Total    int      `json:"total"`
	TestType TestType `json:"testType"`
}

// Percentage rounds score/total to a whole percent. An empty section is 0%.
func (r SectionResult) Percentage() int {
	if r.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.Total) * 100))
}

// Feedback is the message shown under the result.
func (r SectionResult) Feedback() string {
	if !r.TestType.Objective() {
		return "Your responses have been saved. Well done for completing the section!"
	}
	switch p := r.Percentage(); {
	case p >= 80:
		return "Excellent work! You have a strong command of this area."
	case p >= 60:
		return "Good job! You're on the right track. Keep practicing to improve further."
	case p >= 40:
		return "You've made a good start, but there's room for improvement. Reviewing the basics will help."
	default:
		return "This seems to be a challenging area. Consistent practice will make a big difference."
	}
}

func (r SectionResult) String() string {
	return fmt.Sprintf("%s: %d/%d (%d%%)", r.TestType, r.Score, r.Total, r.Percentage())
}

// AnswerSet holds one slot per item. A slot starts unanswered, which is
// distinct from an empty answer.
type AnswerSet struct {
	values   []string
	answered []bool
}

// NewAnswerSet creates n unanswered slots.
func NewAnswerSet(n int) AnswerSet {
	if n < 0 {
		n = 0
	}
	return AnswerSet{
		values:   make([]string, n),
		answered: make([]bool, n),
	}
}

// Len returns the number of slots.
func (a AnswerSet) Len() int { return len(a.values) }

// Get returns the answer at i and whether the slot has been answered.
func (a AnswerSet) Get(i int) (string, bool) {
	if i < 0 || i >= len(a.values) {
		return "", false
	}
	return a.values[i], a.answered[i]
}

// Set overwrites slot i. Out-of-range indexes are ignored.
func (a AnswerSet) Set(i int, v string) bool {
	if i < 0 || i >= len(a.values) {
		return false
	}
	a.values[i] = v
	a.answered[i] = true
	return true
}

// Answered counts the answered slots.
func (a AnswerSet) Answered() int {
	n := 0
	for _, ok := range a.answered {
		if ok {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (a AnswerSet) Clone() AnswerSet {
	c := NewAnswerSet(len(a.values))
	copy(c.values, a.values)
	copy(c.answered, a.answered)
	return c
}

// WordCount counts whitespace-separated words, as used for writing answers
// and passage length checks.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
