package contentgen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/exam/examtest"
	"github.com/abhisek/aptiz/internal/llm"
)

func TestPromptsAndSchemasCoverRemoteTypes(t *testing.T) {
	for _, tt := range exam.AllTestTypes {
		hasPrompt := Prompt(tt) != ""
		hasSchema := schemas[tt] != nil
		if hasPrompt != tt.Remote() || hasSchema != tt.Remote() {
			t.Errorf("%v: prompt=%v schema=%v remote=%v", tt, hasPrompt, hasSchema, tt.Remote())
		}
	}
}

func TestSchemasPinItemCounts(t *testing.T) {
	gv := GrammarVocabularySchema.Definition["properties"].(map[string]any)["questions"].(map[string]any)
	if gv["minItems"] != 25 || gv["maxItems"] != 25 {
		t.Fatalf("grammar bounds = %v/%v", gv["minItems"], gv["maxItems"])
	}
	questions := ReadingSchema.Definition["properties"].(map[string]any)["questions"].(map[string]any)
	if questions["minItems"] != 5 {
		t.Fatalf("reading questions minItems = %v", questions["minItems"])
	}
	listening := ListeningSchema.Definition["properties"].(map[string]any)["questions"].(map[string]any)
	if listening["maxItems"] != 4 {
		t.Fatalf("listening questions maxItems = %v", listening["maxItems"])
	}
}

// The fixture payloads must satisfy the response schemas, or the providers'
// schema check would reject content the decoder accepts.
func TestSchemasAcceptWellFormedPayloads(t *testing.T) {
	payloads := map[exam.TestType]json.RawMessage{
		exam.GrammarVocabulary: modelPayload(examtest.GrammarVocabulary()),
		exam.Reading:           modelPayload(examtest.Reading()),
		exam.Listening:         modelPayload(examtest.Listening()),
	}
	for tt, payload := range payloads {
		if err := llm.ValidateResponse(schemas[tt], payload); err != nil {
			t.Fatalf("%v: %v", tt, err)
		}
		wire, err := unwrap(tt, payload)
		if err != nil {
			t.Fatalf("%v: unwrap: %v", tt, err)
		}
		if _, err := exam.DecodeContent(tt, wire); err != nil {
			t.Fatalf("%v: fixture does not decode: %v", tt, err)
		}
	}
}

// Strict structured output (OpenAI strict mode, Anthropic JSON format) only
// accepts object roots and closed objects.
func TestSchemasAreStrictCompatible(t *testing.T) {
	for tt, s := range schemas {
		if s.Definition["type"] != "object" {
			t.Errorf("%v: root type = %v, want object", tt, s.Definition["type"])
		}
		walkObjects(s.Definition, s.Name, func(path string, node map[string]any) {
			if node["additionalProperties"] != false {
				t.Errorf("%s: additionalProperties not false", path)
			}
			props, _ := node["properties"].(map[string]any)
			required, _ := node["required"].([]any)
			if len(required) != len(props) {
				t.Errorf("%s: %d properties but %d required", path, len(props), len(required))
			}
		})
	}
}

func TestSchemasRejectExtraFields(t *testing.T) {
	var obj map[string]any
	if err := json.Unmarshal(modelPayload(examtest.Listening()), &obj); err != nil {
		t.Fatal(err)
	}
	obj["audioUrl"] = "https://example.com/a.mp3"
	data, _ := json.Marshal(obj)
	if err := llm.ValidateResponse(ListeningSchema, data); err == nil {
		t.Fatal("expected an unknown top-level field to be rejected")
	}
}

func walkObjects(node map[string]any, path string, visit func(string, map[string]any)) {
	if node["type"] == "object" {
		visit(path, node)
		if props, ok := node["properties"].(map[string]any); ok {
			for name, child := range props {
				if m, ok := child.(map[string]any); ok {
					walkObjects(m, path+"."+name, visit)
				}
			}
		}
	}
	if items, ok := node["items"].(map[string]any); ok {
		walkObjects(items, path+"[]", visit)
	}
}

func TestUnwrap(t *testing.T) {
	wire := examtest.JSON(examtest.GrammarVocabulary())

	got, err := unwrap(exam.GrammarVocabulary, modelPayload(examtest.GrammarVocabulary()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(wire) {
		t.Fatal("expected the bare question array")
	}

	_, err = unwrap(exam.GrammarVocabulary, json.RawMessage(`{"items":[]}`))
	var violation *exam.SchemaViolationError
	if !errors.As(err, &violation) || violation.Field != "questions" {
		t.Fatalf("expected a missing questions violation, got %v", err)
	}

	_, err = unwrap(exam.GrammarVocabulary, json.RawMessage(`{not json`))
	if !errors.As(err, &violation) {
		t.Fatalf("expected a violation for malformed JSON, got %v", err)
	}

	reading := examtest.JSON(examtest.Reading())
	if got, _ := unwrap(exam.Reading, reading); string(got) != string(reading) {
		t.Fatal("reading payloads pass through unchanged")
	}
}
