package exam

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TestType identifies one of the five Aptis sections.
type TestType int

const (
	GrammarVocabulary TestType = iota
	Reading
	Writing
	Speaking
	Listening
)

// AllTestTypes lists the sections in dashboard order.
var AllTestTypes = []TestType{GrammarVocabulary, Reading, Writing, Speaking, Listening}

var testTypeNames = map[TestType]string{
	GrammarVocabulary: "Grammar & Vocabulary",
	Reading:           "Reading",
	Writing:           "Writing",
	Speaking:          "Speaking",
	Listening:         "Listening",
}

var testTypeSlugs = map[TestType]string{
	GrammarVocabulary: "grammar-vocabulary",
	Reading:           "reading",
	Writing:           "writing",
	Speaking:          "speaking",
	Listening:         "listening",
}

// String returns the wire name used in generation requests.
func (t TestType) String() string {
	if n, ok := testTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TestType(%d)", int(t))
}

// Slug returns a lowercase identifier suitable for metric labels and CLI args.
func (t TestType) Slug() string {
	return testTypeSlugs[t]
}

// Valid reports whether t is one of the five known sections.
func (t TestType) Valid() bool {
	_, ok := testTypeNames[t]
	return ok
}

// ParseTestType maps a wire name to a TestType. Matching is exact.
func ParseTestType(s string) (TestType, error) {
	for t, name := range testTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, &InvalidTestTypeError{Value: s}
}

// LookupTestType is the lenient form used by the CLI: it accepts wire names
// and slugs, ignoring case.
func LookupTestType(s string) (TestType, error) {
	for _, t := range AllTestTypes {
		if strings.EqualFold(s, t.String()) || strings.EqualFold(s, t.Slug()) {
			return t, nil
		}
	}
	return 0, &InvalidTestTypeError{Value: s}
}

// Duration is the section time limit. Speaking has no section-level timer;
// its tasks run their own preparation and recording countdowns.
func (t TestType) Duration() time.Duration {
	switch t {
	case GrammarVocabulary:
		return 12 * time.Minute
	case Reading:
		return 35 * time.Minute
	case Listening:
		return 40 * time.Minute
	case Writing:
		return 50 * time.Minute
	default:
		return 0
	}
}

// Objective reports whether the section is auto-scored against known answers.
func (t TestType) Objective() bool {
	return t == GrammarVocabulary || t == Reading || t == Listening
}

// Remote reports whether content for the section comes from the generation server.
func (t TestType) Remote() bool {
	return t.Objective()
}

func (t TestType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("marshal test type: %w", &InvalidTestTypeError{Value: t.String()})
	}
	return json.Marshal(t.String())
}

func (t *TestType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &InvalidTestTypeError{Missing: true}
	}
	parsed, err := ParseTestType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
