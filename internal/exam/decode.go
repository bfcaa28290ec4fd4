package exam

import (
	"encoding/json"
	"fmt"
)

// DecodeContent parses a generation response for tt and validates its shape.
// Nothing is coerced: wrong JSON types, missing fields and wrong item counts
// all fail with *SchemaViolationError.
func DecodeContent(tt TestType, data []byte) (Content, error) {
	var c Content

	switch tt {
	case GrammarVocabulary:
		var qs []MultipleChoiceQuestion
		if err := decodeInto(data, &qs); err != nil {
			return nil, err
		}
		c = &GrammarVocabularyContent{Questions: qs}
	case Reading:
		var task ReadingTask
		if err := decodeInto(data, &task); err != nil {
			return nil, err
		}
		c = &ReadingContent{Task: task}
	case Listening:
		var task ListeningTask
		if err := decodeInto(data, &task); err != nil {
			return nil, err
		}
		c = &ListeningContent{Task: task}
	case Writing:
		var tasks []WritingTask
		if err := decodeInto(data, &tasks); err != nil {
			return nil, err
		}
		c = &WritingContent{Tasks: tasks}
	case Speaking:
		var tasks []SpeakingTask
		if err := decodeInto(data, &tasks); err != nil {
			return nil, err
		}
		c = &SpeakingContent{Tasks: tasks}
	default:
		return nil, &InvalidTestTypeError{Value: tt.String()}
	}

	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeInto(data []byte, v any) error {
	if len(data) == 0 {
		return &SchemaViolationError{Err: fmt.Errorf("empty body")}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &SchemaViolationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return nil
}
