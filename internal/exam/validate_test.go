package exam_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/exam/examtest"
)

func TestDecodeContent_Valid(t *testing.T) {
	tests := []struct {
		name    string
		tt      exam.TestType
		content exam.Content
		items   int
	}{
		{"grammar", exam.GrammarVocabulary, examtest.GrammarVocabulary(), 25},
		{"reading", exam.Reading, examtest.Reading(), 5},
		{"listening", exam.Listening, examtest.Listening(), 4},
		{"writing", exam.Writing, exam.WritingTasks(), 3},
		{"speaking", exam.Speaking, exam.SpeakingTasks(), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := exam.DecodeContent(tt.tt, examtest.JSON(tt.content))
			if err != nil {
				t.Fatalf("DecodeContent: %v", err)
			}
			if c.TestType() != tt.tt {
				t.Fatalf("TestType = %s, want %s", c.TestType(), tt.tt)
			}
			if c.ItemCount() != tt.items {
				t.Fatalf("ItemCount = %d, want %d", c.ItemCount(), tt.items)
			}
			if len(c.ExpectedAnswers()) != tt.items {
				t.Fatalf("ExpectedAnswers length = %d, want %d", len(c.ExpectedAnswers()), tt.items)
			}
		})
	}
}

func TestDecodeContent_GrammarIsBareArray(t *testing.T) {
	data := string(examtest.JSON(examtest.GrammarVocabulary()))
	if !strings.HasPrefix(data, "[") {
		t.Fatalf("grammar content should marshal as an array, got %.20s", data)
	}
	if !strings.Contains(data, `"correctAnswer":"answer-0"`) {
		t.Fatal("expected correctAnswer field in wire form")
	}
}

func TestDecodeContent_ReadingKeepsQuestionText(t *testing.T) {
	data := string(examtest.JSON(examtest.Reading()))
	if !strings.Contains(data, `"questionText"`) || strings.Contains(data, `"question":`) {
		t.Fatalf("reading questions must use questionText: %.200s", data)
	}
	if !strings.Contains(data, `"type":"long-comprehension"`) {
		t.Fatal("expected reading kind under the type field")
	}
}

func TestDecodeContent_Violations(t *testing.T) {
	short := examtest.GrammarVocabulary()
	short.Questions = short.Questions[:24]

	threeOptions := examtest.GrammarVocabulary()
	threeOptions.Questions[3].Options = threeOptions.Questions[3].Options[:3]

	wrongAnswer := examtest.Listening()
	wrongAnswer.Task.Questions[0].CorrectAnswer = "ANSWER-0"

	duplicateAnswer := examtest.GrammarVocabulary()
	duplicateAnswer.Questions[0].Options = []string{"x", "x", "c", "d"}
	duplicateAnswer.Questions[0].CorrectAnswer = "x"

	noPassage := examtest.Reading()
	noPassage.Task.Passage = nil

	badKind := examtest.Reading()
	badKind.Task.Kind = "essay"

	noTranscript := examtest.Listening()
	noTranscript.Task.Transcript = ""

	tests := []struct {
		name string
		tt   exam.TestType
		data string
	}{
		{"24 questions", exam.GrammarVocabulary, string(examtest.JSON(short))},
		{"3 options", exam.GrammarVocabulary, string(examtest.JSON(threeOptions))},
		{"case mismatch", exam.Listening, string(examtest.JSON(wrongAnswer))},
		{"duplicate option", exam.GrammarVocabulary, string(examtest.JSON(duplicateAnswer))},
		{"missing passage", exam.Reading, string(examtest.JSON(noPassage))},
		{"unknown kind", exam.Reading, string(examtest.JSON(badKind))},
		{"missing transcript", exam.Listening, string(examtest.JSON(noTranscript))},
		{"object for array", exam.GrammarVocabulary, `{"questions":[]}`},
		{"array for object", exam.Reading, `[]`},
		{"string options", exam.Listening, `{"title":"t","instructions":"i","transcript":"x","questions":[{"question":"q","options":"abcd","correctAnswer":"a"}]}`},
		{"not json", exam.Reading, `Here is your test!`},
		{"empty", exam.Listening, ``},
		{"null", exam.GrammarVocabulary, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exam.DecodeContent(tt.tt, []byte(tt.data))
			var sv *exam.SchemaViolationError
			if !errors.As(err, &sv) {
				t.Fatalf("expected SchemaViolationError, got %v", err)
			}
		})
	}
}

func TestValidate_ReportsWireFieldNames(t *testing.T) {
	c := examtest.GrammarVocabulary()
	c.Questions[2].Question = ""

	err := exam.Validate(c)
	var sv *exam.SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
	if !strings.Contains(sv.Field, "questions[2].question") {
		t.Fatalf("Field = %q, want it to name questions[2].question", sv.Field)
	}
}

func TestValidate_Nil(t *testing.T) {
	var c *exam.ReadingContent
	if err := exam.Validate(c); err == nil {
		t.Fatal("expected error for nil content")
	}
}

func TestUserMessage(t *testing.T) {
	retry := "We couldn't generate your test. Please try again."
	tests := []struct {
		err  error
		want string
	}{
		{&exam.SchemaViolationError{Err: errors.New("x")}, retry},
		{&exam.GenerationFailedError{Detail: "boom"}, retry},
		{&exam.InvalidTestTypeError{Value: "Foo"}, "Unknown or unsupported test type: Foo"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := exam.UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
