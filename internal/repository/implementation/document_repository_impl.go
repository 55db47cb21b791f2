package implementation

import (
	"context"
	"errors"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/mapper"
	"qa-assistant-be/internal/model"
	"qa-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Save(ctx context.Context, document *entity.Document, replace bool) error {
	m := r.mapper.ToModel(document)
	q := r.db.WithContext(ctx)
	if replace {
		q = q.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}, {Name: "user_token"}},
			UpdateAll: true,
		})
	}
	if err := q.Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) List(ctx context.Context, userToken string, documentIDs []string, searchTerm string) ([]*entity.Document, error) {
	q := r.db.WithContext(ctx).Where("user_token = ?", userToken)
	if len(documentIDs) > 0 {
		q = q.Where("document_id IN ?", documentIDs)
	}
	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		q = q.Where("title ILIKE ? OR text ILIKE ?", pattern, pattern)
	}
	var models []*model.Document
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) Find(ctx context.Context, userToken, documentID string) (*entity.Document, error) {
	var m model.Document
	err := r.db.WithContext(ctx).
		Where("user_token = ? AND document_id = ?", userToken, documentID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, userToken, documentID string) error {
	return r.db.WithContext(ctx).
		Where("user_token = ? AND document_id = ?", userToken, documentID).
		Delete(&model.Document{}).Error
}

func (r *DocumentRepositoryImpl) DeleteAllByUser(ctx context.Context, userToken string) error {
	return r.db.WithContext(ctx).
		Where("user_token = ?", userToken).
		Delete(&model.Document{}).Error
}
