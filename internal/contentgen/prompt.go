package contentgen

import "github.com/abhisek/aptiz/internal/exam"

const grammarVocabularyPrompt = `Generate 25 mixed grammar and vocabulary multiple-choice questions suitable for a B1/B2 level General Aptis test. The questions should cover a range of topics including verb tenses, prepositions, phrasal verbs, and common vocabulary. For vocabulary, use sentence completion tasks. Provide the response as a valid JSON array of objects.`

const readingPrompt = `Generate a B2-level reading comprehension task for an Aptis test. The passage should be around 350 words about a topic like technology, environment, or social trends. After the passage, create 5 multiple-choice questions to test understanding of the main ideas, details, and inference. Provide the response as a single JSON object.`

const listeningPrompt = `Generate a B1/B2 level listening test task for an Aptis exam. Provide a transcript of a short conversation or monologue (around 100-150 words) between two speakers about a daily topic like making plans, a past holiday, or a work situation. Then, create 4 multiple-choice questions based on the transcript to test for specific information and main ideas. The question text should be stored in the 'question' property. Return a single JSON object.`

// Every prompt shares these rules. Each option list must contain the
// correct answer verbatim, otherwise the payload is rejected downstream.
const systemPrompt = `You write practice material for the Aptis General English test.

Rules:
- Every multiple-choice question has exactly 4 options.
- The correct answer must be copied exactly, character for character, from one of the options.
- Options within a question must be distinct.
- Use plain text only. No markdown, no numbering inside option strings.`

var prompts = map[exam.TestType]string{
	exam.GrammarVocabulary: grammarVocabularyPrompt,
	exam.Reading:           readingPrompt,
	exam.Listening:         listeningPrompt,
}

// Prompt returns the user prompt for tt, or "" if tt is not generated.
func Prompt(tt exam.TestType) string {
	return prompts[tt]
}
