package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/repository/contract"
)

type IDocumentService interface {
	// Upsert stores a document and returns its id. An empty documentID is
	// replaced by the sha256 of the text, so re-uploading identical
	// content is idempotent.
	Upsert(ctx context.Context, user *entity.User, documentID, title, text, origin string, replace bool) (string, error)
	List(ctx context.Context, user *entity.User, documentIDs []string, searchTerm string, numberOfItems, offset int) ([]*entity.Document, int, error)
	Delete(ctx context.Context, user *entity.User, documentID string) error
}

type documentService struct {
	documents     contract.DocumentRepository
	maxInlineText int
}

func NewDocumentService(documents contract.DocumentRepository, maxInlineText int) IDocumentService {
	return &documentService{documents: documents, maxInlineText: maxInlineText}
}

func (s *documentService) Upsert(ctx context.Context, user *entity.User, documentID, title, text, origin string, replace bool) (string, error) {
	if title == "" {
		return "", apierr.MissingParameter("title")
	}
	if text == "" {
		return "", apierr.MissingParameter("text")
	}
	if len(text) > s.maxInlineText {
		return "", apierr.User(apierr.MaxSizeInlineTextText, s.maxInlineText, len(text))
	}
	if documentID == "" {
		sum := sha256.Sum256([]byte(text))
		documentID = hex.EncodeToString(sum[:])
	}
	document := &entity.Document{
		DocumentID: documentID,
		UserToken:  user.Token,
		Title:      title,
		Text:       text,
		Origin:     origin,
		Type:       "text",
	}
	if err := s.documents.Save(ctx, document, replace); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return "", apierr.User("Document '%s' already exists, pass replace=true to overwrite it.", documentID)
		}
		return "", err
	}
	return documentID, nil
}

func (s *documentService) List(ctx context.Context, user *entity.User, documentIDs []string, searchTerm string, numberOfItems, offset int) ([]*entity.Document, int, error) {
	documents, err := s.documents.List(ctx, user.Token, documentIDs, searchTerm)
	if err != nil {
		return nil, 0, err
	}
	total := len(documents)
	if offset >= total {
		return []*entity.Document{}, total, nil
	}
	end := offset + numberOfItems
	if end > total {
		end = total
	}
	return documents[offset:end], total, nil
}

func (s *documentService) Delete(ctx context.Context, user *entity.User, documentID string) error {
	if err := s.documents.Delete(ctx, user.Token, documentID); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return apierr.User(apierr.DocumentDoesNotExistText, documentID)
		}
		return err
	}
	return nil
}
