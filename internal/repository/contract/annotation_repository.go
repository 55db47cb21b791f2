package contract

import (
	"context"

	"qa-assistant-be/internal/entity"
)

// AnnotationFilter narrows get-annotations / get-saved-replies listings.
type AnnotationFilter struct {
	AnnotationIDs []string
	DocumentIDs   []string
	Pages         []string
	SearchTerm    string
	SavedReplies  bool
}

// AnnotationRepository stores annotations and saved replies, including
// their paraphrase questions and candidate answers.
type AnnotationRepository interface {
	Create(ctx context.Context, annotation *entity.Annotation) error
	Find(ctx context.Context, userToken, annotationID string) (*entity.Annotation, error)
	List(ctx context.Context, userToken string, filter AnnotationFilter) ([]*entity.Annotation, error)
	Delete(ctx context.Context, userToken, annotationID string) error
	DeleteAllByUser(ctx context.Context, userToken string) error

	EditCanonicalQuestion(ctx context.Context, userToken, annotationID, question string) error

	AddParaphrase(ctx context.Context, userToken, annotationID, question string) (questionID string, err error)
	EditParaphrase(ctx context.Context, userToken, questionID, question string) error
	DeleteParaphrase(ctx context.Context, userToken, questionID string) error

	AddAnswer(ctx context.Context, userToken, annotationID, answer string) (answerID string, err error)
	EditAnswer(ctx context.Context, userToken, answerID, answer string) error
	DeleteAnswer(ctx context.Context, userToken, answerID string) error
}
