package exam

import (
	"encoding/json"
)

// MultipleChoiceQuestion is a grammar/vocabulary or listening question.
type MultipleChoiceQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

// QuestionWithOptions is a reading question. It carries the same data as
// MultipleChoiceQuestion under a different prompt field name.
type QuestionWithOptions struct {
	QuestionText  string   `json:"questionText" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

// Reading task kinds.
const (
	KindSentenceCompletion = "sentence-completion"
	KindTextCohesion       = "text-cohesion"
	KindShortComprehension = "short-comprehension"
	KindLongComprehension  = "long-comprehension"
)

// ReadingTask is a passage followed by comprehension questions.
type ReadingTask struct {
	Kind         string                `json:"type" validate:"required,oneof=sentence-completion text-cohesion short-comprehension long-comprehension"`
	Title        string                `json:"title" validate:"required"`
	Instructions string                `json:"instructions" validate:"required"`
	Passage      *string               `json:"passage,omitempty" validate:"required"`
	Questions    []QuestionWithOptions `json:"questions" validate:"len=5,dive"`
}

// ListeningTask is a transcript that is read aloud, followed by questions.
type ListeningTask struct {
	Title        string                   `json:"title" validate:"required"`
	Instructions string                   `json:"instructions" validate:"required"`
	Transcript   string                   `json:"transcript" validate:"required"`
	Questions    []MultipleChoiceQuestion `json:"questions" validate:"len=4,dive"`
}

// WritingTask is a free-text prompt.
type WritingTask struct {
	ID           int    `json:"id" validate:"required"`
	Instructions string `json:"instructions" validate:"required"`
	WordLimit    *int   `json:"wordLimit,omitempty"`
}

// SpeakingTask is a spoken-response prompt with fixed preparation and
// recording windows, in seconds.
type SpeakingTask struct {
	ID                 int    `json:"id" validate:"required"`
	Instructions       string `json:"instructions" validate:"required"`
	PreparationSeconds int    `json:"preparationTime" validate:"gt=0"`
	RecordingSeconds   int    `json:"recordingTime" validate:"gt=0"`
	ImagePromptURL     string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// Content is the validated result of a content request. Exactly one concrete
// type exists per TestType.
type Content interface {
	TestType() TestType
	// ItemCount is the number of answerable items (questions or tasks).
	ItemCount() int
	// ExpectedAnswers holds one entry per item. Subjective sections return
	// empty strings.
	ExpectedAnswers() []string

	sealed()
}

// GrammarVocabularyContent is 25 mixed grammar and vocabulary questions.
type GrammarVocabularyContent struct {
	Questions []MultipleChoiceQuestion `json:"questions" validate:"len=25,dive"`
}

// ReadingContent wraps the single reading task of a section.
type ReadingContent struct {
	Task ReadingTask `json:"task"`
}

// ListeningContent wraps the single listening task of a section.
type ListeningContent struct {
	Task ListeningTask `json:"task"`
}

// WritingContent holds the three static writing tasks.
type WritingContent struct {
	Tasks []WritingTask `json:"tasks" validate:"len=3,dive"`
}

// SpeakingContent holds the three static speaking tasks.
type SpeakingContent struct {
	Tasks []SpeakingTask `json:"tasks" validate:"len=3,dive"`
}

var (
	_ Content = (*GrammarVocabularyContent)(nil)
	_ Content = (*ReadingContent)(nil)
	_ Content = (*ListeningContent)(nil)
	_ Content = (*WritingContent)(nil)
	_ Content = (*SpeakingContent)(nil)
)

func (*GrammarVocabularyContent) TestType() TestType { return GrammarVocabulary }
func (c *GrammarVocabularyContent) ItemCount() int   { return len(c.Questions) }
func (c *GrammarVocabularyContent) ExpectedAnswers() []string {
	out := make([]string, len(c.Questions))
	for i, q := range c.Questions {
		out[i] = q.CorrectAnswer
	}
	return out
}
func (*GrammarVocabularyContent) sealed() {}

func (c *GrammarVocabularyContent) MarshalJSON() ([]byte, error) {
	qs := c.Questions
	if qs == nil {
		qs = []MultipleChoiceQuestion{}
	}
	return json.Marshal(qs)
}

func (*ReadingContent) TestType() TestType { return Reading }
func (c *ReadingContent) ItemCount() int   { return len(c.Task.Questions) }
func (c *ReadingContent) ExpectedAnswers() []string {
	out := make([]string, len(c.Task.Questions))
	for i, q := range c.Task.Questions {
		out[i] = q.CorrectAnswer
	}
	return out
}
func (*ReadingContent) sealed() {}

func (c *ReadingContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Task)
}

func (*ListeningContent) TestType() TestType { return Listening }
func (c *ListeningContent) ItemCount() int   { return len(c.Task.Questions) }
func (c *ListeningContent) ExpectedAnswers() []string {
	out := make([]string, len(c.Task.Questions))
	for i, q := range c.Task.Questions {
		out[i] = q.CorrectAnswer
	}
	return out
}
func (*ListeningContent) sealed() {}

func (c *ListeningContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Task)
}

func (*WritingContent) TestType() TestType          { return Writing }
func (c *WritingContent) ItemCount() int            { return len(c.Tasks) }
func (c *WritingContent) ExpectedAnswers() []string { return make([]string, len(c.Tasks)) }
func (*WritingContent) sealed()                     {}

func (c *WritingContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Tasks)
}

func (*SpeakingContent) TestType() TestType          { return Speaking }
func (c *SpeakingContent) ItemCount() int            { return len(c.Tasks) }
func (c *SpeakingContent) ExpectedAnswers() []string { return make([]string, len(c.Tasks)) }
func (*SpeakingContent) sealed()                     {}

func (c *SpeakingContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Tasks)
}
