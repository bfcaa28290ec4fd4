package exam

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseTestType(t *testing.T) {
	tests := []struct {
		in      string
		want    TestType
		wantErr bool
	}{
		{"Grammar & Vocabulary", GrammarVocabulary, false},
		{"Reading", Reading, false},
		{"Writing", Writing, false},
		{"Speaking", Speaking, false},
		{"Listening", Listening, false},
		{"reading", 0, true},
		{"Foo", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTestType(tt.in)
		if tt.wantErr {
			var invalid *InvalidTestTypeError
			if !errors.As(err, &invalid) {
				t.Errorf("ParseTestType(%q) error = %v, want InvalidTestTypeError", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseTestType(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestInvalidTestTypeMessage(t *testing.T) {
	_, err := ParseTestType("Foo")
	if err.Error() != "Unknown or unsupported test type: Foo" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	missing := &InvalidTestTypeError{Missing: true}
	if missing.Error() != "testType is required and must be a string." {
		t.Fatalf("unexpected message %q", missing.Error())
	}
}

func TestLookupTestType(t *testing.T) {
	for _, in := range []string{"grammar-vocabulary", "GRAMMAR & VOCABULARY"} {
		got, err := LookupTestType(in)
		if err != nil || got != GrammarVocabulary {
			t.Errorf("LookupTestType(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := LookupTestType("maths"); err == nil {
		t.Error("expected error for unknown slug")
	}
}

func TestDurations(t *testing.T) {
	want := map[TestType]time.Duration{
		GrammarVocabulary: 12 * time.Minute,
		Reading:           35 * time.Minute,
		Listening:         40 * time.Minute,
		Writing:           50 * time.Minute,
		Speaking:          0,
	}
	for tt, d := range want {
		if tt.Duration() != d {
			t.Errorf("%s.Duration() = %s, want %s", tt, tt.Duration(), d)
		}
	}
}

func TestTestTypeJSON(t *testing.T) {
	data, err := json.Marshal(SectionResult{Score: 1, Total: 25, TestType: GrammarVocabulary})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"score":1,"total":25,"testType":"Grammar & Vocabulary"}` {
		t.Fatalf("unexpected JSON %s", data)
	}

	var tt TestType
	if err := json.Unmarshal([]byte(`"Listening"`), &tt); err != nil || tt != Listening {
		t.Fatalf("unmarshal = %v, %v", tt, err)
	}
	if err := json.Unmarshal([]byte(`42`), &tt); err == nil {
		t.Fatal("expected error for non-string test type")
	}
}
