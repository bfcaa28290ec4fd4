package contentgen

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/llm"
)

func optionsSchema() map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"minItems":    4,
		"maxItems":    4,
		"description": "An array of 4 string options.",
	}
}

func mcqArraySchema(n int) map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": n,
		"maxItems": n,
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The main question text.",
				},
				"options": optionsSchema(),
				"correctAnswer": map[string]any{
					"type":        "string",
					"description": "The correct option string.",
				},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	}
}

// GrammarVocabularySchema constrains the grammar and vocabulary response to
// an object holding 25 questions. Structured output needs an object root, so
// the service unwraps "questions" back to the bare array the wire carries.
var GrammarVocabularySchema = &llm.Schema{
	Name:        "grammar-vocabulary-set",
	Description: "25 grammar and vocabulary multiple-choice questions",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"questions": mcqArraySchema(25),
		},
		"required": []any{"questions"},
	},
}

// ReadingSchema constrains the reading response to one long-comprehension
// task with 5 questions.
var ReadingSchema = &llm.Schema{
	Name:        "reading-task",
	Description: "A reading passage with comprehension questions",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{exam.KindLongComprehension},
				"description": "Should be 'long-comprehension'.",
			},
			"title": map[string]any{
				"type":        "string",
				"description": "A suitable title for the passage.",
			},
			"instructions": map[string]any{
				"type":        "string",
				"description": "Instructions for the user.",
			},
			"passage": map[string]any{
				"type":        "string",
				"description": "The full reading passage.",
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 5,
				"maxItems": 5,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"questionText":  map[string]any{"type": "string"},
						"options":       optionsSchema(),
						"correctAnswer": map[string]any{"type": "string"},
					},
					"required": []any{"questionText", "options", "correctAnswer"},
				},
			},
		},
		"required": []any{"type", "title", "instructions", "passage", "questions"},
	},
}

// ListeningSchema constrains the listening response to one transcript with
// 4 questions.
var ListeningSchema = &llm.Schema{
	Name:        "listening-task",
	Description: "A listening transcript with multiple-choice questions",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A suitable title for the listening task.",
			},
			"instructions": map[string]any{
				"type":        "string",
				"description": "Instructions for the user.",
			},
			"transcript": map[string]any{
				"type":        "string",
				"description": "The full transcript of the audio.",
			},
			"questions": mcqArraySchema(4),
		},
		"required": []any{"title", "instructions", "transcript", "questions"},
	},
}

var schemas = map[exam.TestType]*llm.Schema{
	exam.GrammarVocabulary: GrammarVocabularySchema,
	exam.Reading:           ReadingSchema,
	exam.Listening:         ListeningSchema,
}

// envelopes names the object key a model response nests the wire payload
// under, for types whose wire form is a bare array.
var envelopes = map[exam.TestType]string{
	exam.GrammarVocabulary: "questions",
}

// unwrap turns a model response into the wire form DecodeContent expects.
func unwrap(tt exam.TestType, raw json.RawMessage) (json.RawMessage, error) {
	key, ok := envelopes[tt]
	if !ok {
		return raw, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &exam.SchemaViolationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	inner, ok := obj[key]
	if !ok {
		return nil, &exam.SchemaViolationError{Field: key, Err: fmt.Errorf("missing %q", key)}
	}
	return inner, nil
}
