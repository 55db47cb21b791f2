package implementation

import (
	"context"
	"errors"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/mapper"
	"qa-assistant-be/internal/model"
	"qa-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnotationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnnotationMapper
}

func NewAnnotationRepository(db *gorm.DB) contract.AnnotationRepository {
	return &AnnotationRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnnotationMapper(),
	}
}

func (r *AnnotationRepositoryImpl) Create(ctx context.Context, annotation *entity.Annotation) error {
	m, err := r.mapper.ToModel(annotation)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*annotation = *e
	return nil
}

func (r *AnnotationRepositoryImpl) Find(ctx context.Context, userToken, annotationID string) (*entity.Annotation, error) {
	var m model.Annotation
	err := r.db.WithContext(ctx).
		Preload("Paraphrases").
		Preload("Answers").
		Where("user_token = ? AND annotation_id = ?", userToken, annotationID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *AnnotationRepositoryImpl) List(ctx context.Context, userToken string, filter contract.AnnotationFilter) ([]*entity.Annotation, error) {
	q := r.db.WithContext(ctx).
		Preload("Paraphrases").
		Preload("Answers").
		Where("user_token = ?", userToken).
		Where("saved_reply = ?", filter.SavedReplies)
	if len(filter.AnnotationIDs) > 0 {
		q = q.Where("annotation_id IN ?", filter.AnnotationIDs)
	}
	if len(filter.DocumentIDs) > 0 {
		q = q.Where("document_id IN ?", filter.DocumentIDs)
	}
	if len(filter.Pages) > 0 {
		q = q.Where("page IN ?", filter.Pages)
	}
	if filter.SearchTerm != "" {
		q = q.Where("question ILIKE ?", "%"+filter.SearchTerm+"%")
	}

	var models []*model.Annotation
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	annotations := make([]*entity.Annotation, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, e)
	}
	return annotations, nil
}

func (r *AnnotationRepositoryImpl) Delete(ctx context.Context, userToken, annotationID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_token = ? AND annotation_id = ?", userToken, annotationID).
			Delete(&model.Annotation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return contract.ErrNotFound
		}
		if err := tx.Where("annotation_id = ?", annotationID).Delete(&model.ParaphraseQuestion{}).Error; err != nil {
			return err
		}
		return tx.Where("annotation_id = ?", annotationID).Delete(&model.AnnotationAnswer{}).Error
	})
}

func (r *AnnotationRepositoryImpl) DeleteAllByUser(ctx context.Context, userToken string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.Annotation{}).
			Where("user_token = ?", userToken).
			Pluck("annotation_id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("annotation_id IN ?", ids).Delete(&model.ParaphraseQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("annotation_id IN ?", ids).Delete(&model.AnnotationAnswer{}).Error; err != nil {
			return err
		}
		return tx.Where("user_token = ?", userToken).Delete(&model.Annotation{}).Error
	})
}

func (r *AnnotationRepositoryImpl) EditCanonicalQuestion(ctx context.Context, userToken, annotationID, question string) error {
	res := r.db.WithContext(ctx).Model(&model.Annotation{}).
		Where("user_token = ? AND annotation_id = ?", userToken, annotationID).
		Update("question", question)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}

// owns verifies the annotation belongs to userToken before touching its
// child rows, which are not keyed by token themselves.
func (r *AnnotationRepositoryImpl) owns(ctx context.Context, userToken, annotationID string) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Annotation{}).
		Where("user_token = ? AND annotation_id = ?", userToken, annotationID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *AnnotationRepositoryImpl) ownsChild(ctx context.Context, userToken string, childAnnotationID string) error {
	return r.owns(ctx, userToken, childAnnotationID)
}

func (r *AnnotationRepositoryImpl) AddParaphrase(ctx context.Context, userToken, annotationID, question string) (string, error) {
	if err := r.owns(ctx, userToken, annotationID); err != nil {
		return "", err
	}
	m := &model.ParaphraseQuestion{
		QuestionID:   uuid.NewString(),
		AnnotationID: annotationID,
		Question:     question,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return "", err
	}
	return m.QuestionID, nil
}

func (r *AnnotationRepositoryImpl) EditParaphrase(ctx context.Context, userToken, questionID, question string) error {
	var m model.ParaphraseQuestion
	err := r.db.WithContext(ctx).Where("question_id = ?", questionID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract.ErrNotFound
		}
		return err
	}
	if err := r.ownsChild(ctx, userToken, m.AnnotationID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&m).Update("question", question).Error
}

func (r *AnnotationRepositoryImpl) DeleteParaphrase(ctx context.Context, userToken, questionID string) error {
	var m model.ParaphraseQuestion
	err := r.db.WithContext(ctx).Where("question_id = ?", questionID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract.ErrNotFound
		}
		return err
	}
	if err := r.ownsChild(ctx, userToken, m.AnnotationID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&m).Error
}

func (r *AnnotationRepositoryImpl) AddAnswer(ctx context.Context, userToken, annotationID, answer string) (string, error) {
	if err := r.owns(ctx, userToken, annotationID); err != nil {
		return "", err
	}
	var position int64
	if err := r.db.WithContext(ctx).Model(&model.AnnotationAnswer{}).
		Where("annotation_id = ?", annotationID).Count(&position).Error; err != nil {
		return "", err
	}
	m := &model.AnnotationAnswer{
		AnswerID:     uuid.NewString(),
		AnnotationID: annotationID,
		Answer:       answer,
		Position:     int(position),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return "", err
	}
	return m.AnswerID, nil
}

func (r *AnnotationRepositoryImpl) EditAnswer(ctx context.Context, userToken, answerID, answer string) error {
	var m model.AnnotationAnswer
	err := r.db.WithContext(ctx).Where("answer_id = ?", answerID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract.ErrNotFound
		}
		return err
	}
	if err := r.ownsChild(ctx, userToken, m.AnnotationID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&m).Update("answer", answer).Error
}

func (r *AnnotationRepositoryImpl) DeleteAnswer(ctx context.Context, userToken, answerID string) error {
	var m model.AnnotationAnswer
	err := r.db.WithContext(ctx).Where("answer_id = ?", answerID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract.ErrNotFound
		}
		return err
	}
	if err := r.ownsChild(ctx, userToken, m.AnnotationID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&m).Error
}
