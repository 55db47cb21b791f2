package contract

import (
	"context"

	"qa-assistant-be/internal/entity"
)

type DocumentRepository interface {
	// Save inserts the document. With replace it overwrites an existing
	// document with the same id; without, saving a duplicate id fails.
	Save(ctx context.Context, document *entity.Document, replace bool) error
	// List filters by optional ids and search term, newest first.
	List(ctx context.Context, userToken string, documentIDs []string, searchTerm string) ([]*entity.Document, error)
	Find(ctx context.Context, userToken, documentID string) (*entity.Document, error)
	Delete(ctx context.Context, userToken, documentID string) error
	DeleteAllByUser(ctx context.Context, userToken string) error
}
