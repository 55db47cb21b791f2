package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/repository/contract"
)

// IAnnotationService manages annotations and saved replies. Saved replies
// are annotations without a document anchor, so one service covers both
// endpoint families.
type IAnnotationService interface {
	CreateSavedReply(ctx context.Context, user *entity.User, question, answer string) (*entity.Annotation, error)
	CreateAnnotation(ctx context.Context, user *entity.User, question, answer, documentID, page string, startOffset, endOffset int, metadata map[string]interface{}) (*entity.Annotation, error)
	List(ctx context.Context, user *entity.User, filter contract.AnnotationFilter, numberOfItems, offset int) ([]*entity.Annotation, int, error)
	Delete(ctx context.Context, user *entity.User, annotationID string, savedReply bool) error

	EditCanonicalQuestion(ctx context.Context, user *entity.User, annotationID, question string, savedReply bool) error

	AddParaphrase(ctx context.Context, user *entity.User, annotationID, question string, savedReply bool) (string, error)
	EditParaphrase(ctx context.Context, user *entity.User, questionID, question string) error
	DeleteParaphrase(ctx context.Context, user *entity.User, questionID string) error

	AddAnswer(ctx context.Context, user *entity.User, annotationID, answer string, savedReply bool) (string, error)
	EditAnswer(ctx context.Context, user *entity.User, answerID, answer string) error
	DeleteAnswer(ctx context.Context, user *entity.User, answerID string) error
}

type annotationService struct {
	annotations contract.AnnotationRepository
}

func NewAnnotationService(annotations contract.AnnotationRepository) IAnnotationService {
	return &annotationService{annotations: annotations}
}

func (s *annotationService) CreateSavedReply(ctx context.Context, user *entity.User, question, answer string) (*entity.Annotation, error) {
	annotation := &entity.Annotation{
		AnnotationID: uuid.NewString(),
		UserToken:    user.Token,
		SavedReply:   true,
		Question:     question,
		Answers:      []entity.AnnotationAnswer{{AnswerID: uuid.NewString(), Answer: answer}},
	}
	if err := s.annotations.Create(ctx, annotation); err != nil {
		return nil, err
	}
	return annotation, nil
}

func (s *annotationService) CreateAnnotation(ctx context.Context, user *entity.User, question, answer, documentID, page string, startOffset, endOffset int, metadata map[string]interface{}) (*entity.Annotation, error) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	// the anchoring span travels with the rest of the client metadata
	metadata["startOffset"] = startOffset
	metadata["endOffset"] = endOffset

	annotation := &entity.Annotation{
		AnnotationID: uuid.NewString(),
		UserToken:    user.Token,
		Question:     question,
		DocumentID:   &documentID,
		Answers:      []entity.AnnotationAnswer{{AnswerID: uuid.NewString(), Answer: answer}},
		Metadata:     metadata,
	}
	if page != "" {
		annotation.Page = &page
	}
	if err := s.annotations.Create(ctx, annotation); err != nil {
		return nil, err
	}
	return annotation, nil
}

func (s *annotationService) List(ctx context.Context, user *entity.User, filter contract.AnnotationFilter, numberOfItems, offset int) ([]*entity.Annotation, int, error) {
	annotations, err := s.annotations.List(ctx, user.Token, filter)
	if err != nil {
		return nil, 0, err
	}
	total := len(annotations)
	if offset >= total {
		return []*entity.Annotation{}, total, nil
	}
	end := offset + numberOfItems
	if end > total {
		end = total
	}
	return annotations[offset:end], total, nil
}

func (s *annotationService) Delete(ctx context.Context, user *entity.User, annotationID string, savedReply bool) error {
	return s.wrapNotFound(s.annotations.Delete(ctx, user.Token, annotationID), annotationID, savedReply)
}

func (s *annotationService) EditCanonicalQuestion(ctx context.Context, user *entity.User, annotationID, question string, savedReply bool) error {
	return s.wrapNotFound(s.annotations.EditCanonicalQuestion(ctx, user.Token, annotationID, question), annotationID, savedReply)
}

func (s *annotationService) AddParaphrase(ctx context.Context, user *entity.User, annotationID, question string, savedReply bool) (string, error) {
	questionID, err := s.annotations.AddParaphrase(ctx, user.Token, annotationID, question)
	if err != nil {
		return "", s.wrapNotFound(err, annotationID, savedReply)
	}
	return questionID, nil
}

func (s *annotationService) EditParaphrase(ctx context.Context, user *entity.User, questionID, question string) error {
	if err := s.annotations.EditParaphrase(ctx, user.Token, questionID, question); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return apierr.User(apierr.ParaphraseDoesNotExistText, questionID)
		}
		return err
	}
	return nil
}

func (s *annotationService) DeleteParaphrase(ctx context.Context, user *entity.User, questionID string) error {
	if err := s.annotations.DeleteParaphrase(ctx, user.Token, questionID); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return apierr.User(apierr.ParaphraseDoesNotExistText, questionID)
		}
		return err
	}
	return nil
}

func (s *annotationService) AddAnswer(ctx context.Context, user *entity.User, annotationID, answer string, savedReply bool) (string, error) {
	answerID, err := s.annotations.AddAnswer(ctx, user.Token, annotationID, answer)
	if err != nil {
		return "", s.wrapNotFound(err, annotationID, savedReply)
	}
	return answerID, nil
}

func (s *annotationService) EditAnswer(ctx context.Context, user *entity.User, answerID, answer string) error {
	if err := s.annotations.EditAnswer(ctx, user.Token, answerID, answer); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return apierr.User(apierr.AnswerDoesNotExistText, answerID)
		}
		return err
	}
	return nil
}

func (s *annotationService) DeleteAnswer(ctx context.Context, user *entity.User, answerID string) error {
	if err := s.annotations.DeleteAnswer(ctx, user.Token, answerID); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return apierr.User(apierr.AnswerDoesNotExistText, answerID)
		}
		return err
	}
	return nil
}

func (s *annotationService) wrapNotFound(err error, annotationID string, savedReply bool) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, contract.ErrNotFound) {
		if savedReply {
			return apierr.User(apierr.SavedReplyDoesNotExistText, annotationID)
		}
		return apierr.User(apierr.AnnotationDoesNotExistText, annotationID)
	}
	return err
}
