// Package examtest builds well-formed generation payloads for tests.
package examtest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/aptiz/internal/exam"
)

// Questions returns n grammar/vocabulary questions whose correct answer is
// always the first option, "answer-<i>".
func Questions(n int) []exam.MultipleChoiceQuestion {
	qs := make([]exam.MultipleChoiceQuestion, n)
	for i := range qs {
		qs[i] = exam.MultipleChoiceQuestion{
			Question:      fmt.Sprintf("She ___ to work every day (%d).", i),
			Options:       []string{fmt.Sprintf("answer-%d", i), "b", "c", "d"},
			CorrectAnswer: fmt.Sprintf("answer-%d", i),
		}
	}
	return qs
}

// GrammarVocabulary returns valid grammar/vocabulary content.
func GrammarVocabulary() *exam.GrammarVocabularyContent {
	return &exam.GrammarVocabularyContent{Questions: Questions(25)}
}

// Passage returns a passage of n words.
func Passage(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// Reading returns a valid reading task.
func Reading() *exam.ReadingContent {
	passage := Passage(350)
	qs := make([]exam.QuestionWithOptions, 5)
	for i := range qs {
		qs[i] = exam.QuestionWithOptions{
			QuestionText:  fmt.Sprintf("What is the main idea of paragraph %d?", i+1),
			Options:       []string{"first", "second", "third", "fourth"},
			CorrectAnswer: "second",
		}
	}
	return &exam.ReadingContent{Task: exam.ReadingTask{
		Kind:         exam.KindLongComprehension,
		Title:        "Cities of Tomorrow",
		Instructions: "Read the passage and answer the questions.",
		Passage:      &passage,
		Questions:    qs,
	}}
}

// Listening returns a valid listening task.
func Listening() *exam.ListeningContent {
	return &exam.ListeningContent{Task: exam.ListeningTask{
		Title:        "Weekend Plans",
		Instructions: "Listen to the conversation and answer the questions.",
		Transcript:   Passage(120),
		Questions:    Questions(4),
	}}
}

// JSON marshals c to its wire form.
func JSON(c exam.Content) json.RawMessage {
	data, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return data
}
