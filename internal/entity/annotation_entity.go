package entity

import "time"

// Annotation is a question/answer pair with optional paraphrase questions
// and multiple candidate answers. Saved replies are annotations without a
// document anchor.
type Annotation struct {
	AnnotationID string
	UserToken    string
	SavedReply   bool
	Question     string
	Paraphrases  []ParaphraseQuestion
	Answers      []AnnotationAnswer
	DocumentID   *string
	Page         *string
	Metadata     map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ParaphraseQuestion struct {
	QuestionID string
	Question   string
}

type AnnotationAnswer struct {
	AnswerID string
	Answer   string
}

// CanonicalAnswer is the answer surfaced when the annotation matches.
func (a *Annotation) CanonicalAnswer() string {
	if len(a.Answers) == 0 {
		return ""
	}
	return a.Answers[0].Answer
}
