package exam

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	// Report wire field names so violations read like the JSON the model sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks c against the fixed shape for its test type: item counts,
// four options per question, required fields, and that every correct answer
// is exactly one of its options.
func Validate(c Content) error {
	if c == nil || reflect.ValueOf(c).IsNil() {
		return &SchemaViolationError{Err: errors.New("no content")}
	}

	if err := structValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			return &SchemaViolationError{
				Field: fe.Namespace(),
				Err:   fmt.Errorf("failed %q rule", rule),
			}
		}
		return &SchemaViolationError{Err: err}
	}

	return validateAnswers(c)
}

func validateAnswers(c Content) error {
	switch c := c.(type) {
	case *GrammarVocabularyContent:
		for i, q := range c.Questions {
			if err := checkAnswer(q.Options, q.CorrectAnswer); err != nil {
				return &SchemaViolationError{Field: fmt.Sprintf("questions[%d].correctAnswer", i), Err: err}
			}
		}
	case *ReadingContent:
		if c.Task.Passage == nil || strings.TrimSpace(*c.Task.Passage) == "" {
			return &SchemaViolationError{Field: "passage", Err: errors.New("passage is empty")}
		}
		for i, q := range c.Task.Questions {
			if err := checkAnswer(q.Options, q.CorrectAnswer); err != nil {
				return &SchemaViolationError{Field: fmt.Sprintf("questions[%d].correctAnswer", i), Err: err}
			}
		}
	case *ListeningContent:
		for i, q := range c.Task.Questions {
			if err := checkAnswer(q.Options, q.CorrectAnswer); err != nil {
				return &SchemaViolationError{Field: fmt.Sprintf("questions[%d].correctAnswer", i), Err: err}
			}
		}
	}
	return nil
}

// checkAnswer requires answer to equal exactly one option. Comparison is
// exact and case-sensitive.
func checkAnswer(options []string, answer string) error {
	matches := 0
	for _, o := range options {
		if o == answer {
			matches++
		}
	}
	switch matches {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%q is not one of the options", answer)
	default:
		return fmt.Errorf("%q appears %d times among the options", answer, matches)
	}
}
