// Package responder defines the invocation contract of the external
// answering engine. The real engine (indexing, semantic search, ranking)
// lives outside this repository; the HTTP tier only depends on the Engine
// interface and the AnswerRecord shape it returns.
package responder

import "context"

// Source types an AnswerRecord can carry.
const (
	SourceDocument   = "document"
	SourceSavedReply = "saved_reply"
	SourceAnnotation = "annotation"
	SourceNumerical  = "numerical"
)

// AnswerRecord is one candidate answer. Offsets are only populated for
// document-sourced answers, where the answer span sits inside a wider
// context window.
type AnswerRecord struct {
	AnswerText               string  `json:"answerText"`
	Confidence               float64 `json:"confidence"`
	SourceType               string  `json:"sourceType"`
	SourceID                 string  `json:"sourceId"`
	MatchedQuestion          string  `json:"matchedQuestion,omitempty"`
	AnswerContext            string  `json:"answerContext,omitempty"`
	AnswerTextStartOffset    int     `json:"answerTextStartOffset"`
	AnswerTextEndOffset      int     `json:"answerTextEndOffset"`
	AnswerContextStartOffset int     `json:"answerContextStartOffset"`
}

// ThresholdMap maps the named confidence levels a user can configure to the
// cutoffs handed to the engine, per retrieval family.
var ThresholdMap = map[string]map[string]float64{
	SourceDocument: {
		"verylow": 0.15,
		"low":     0.30,
		"medium":  0.45,
		"high":    0.65,
	},
	SourceSavedReply: {
		"verylow": 0.50,
		"low":     0.65,
		"medium":  0.75,
		"high":    0.85,
	},
}

// ValidThreshold reports whether name is a known named level.
func ValidThreshold(name string) bool {
	_, ok := ThresholdMap[SourceDocument][name]
	return ok
}

// Engine answers questions. Implementations may block; timeout and retry
// policy belongs to them, not to the callers in this repository.
type Engine interface {
	// AnswersFromSimilarQuestions matches the question against saved
	// replies and annotations.
	AnswersFromSimilarQuestions(ctx context.Context, userToken, question, sourceType string, documentIDs []string, threshold float64) ([]AnswerRecord, error)

	// AnswersFromDocuments extracts candidate spans from the user's
	// documents, or from inlineText when non-empty.
	AnswersFromDocuments(ctx context.Context, userToken, question string, documentIDs []string, offset, numberOfItems int, inlineText string, threshold float64) ([]AnswerRecord, error)
}
