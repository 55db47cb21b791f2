package implementation

import (
	"context"
	"errors"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/mapper"
	"qa-assistant-be/internal/model"
	"qa-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
)

type EventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EventMapper
}

func NewEventRepository(db *gorm.DB) contract.EventRepository {
	return &EventRepositoryImpl{
		db:     db,
		mapper: mapper.NewEventMapper(),
	}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *entity.Event) error {
	m, err := r.mapper.ToModel(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	event.ModifiedAt = m.UpdatedAt
	return nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *entity.Event) error {
	m, err := r.mapper.ToModel(event)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int64) (*entity.Event, error) {
	var m model.Event
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func applyTriState(q *gorm.DB, column string, v contract.TriState) *gorm.DB {
	switch v {
	case contract.TriTrue:
		return q.Where(column+" = ?", true)
	case contract.TriFalse:
		return q.Where(column+" = ?", false)
	}
	return q
}

func (r *EventRepositoryImpl) List(ctx context.Context, userID string, filter contract.EventFilter) ([]*entity.Event, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("user_id = ?", userID).
		Where("archived = ?", false)
	q = applyTriState(q, "read", filter.Read)
	q = applyTriState(q, "answered", filter.Answered)
	if filter.SearchTerm != "" {
		q = q.Where("question ILIKE ?", "%"+filter.SearchTerm+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []*model.Event
	if err := q.Order("created_at DESC").Limit(filter.NumberOfItems).Offset(filter.Offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	events := make([]*entity.Event, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, nil
}

func (r *EventRepositoryImpl) ListAll(ctx context.Context, userID string) ([]*entity.Event, error) {
	var models []*model.Event
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	events := make([]*entity.Event, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *EventRepositoryImpl) Counts(ctx context.Context, userID string) (int64, int64, error) {
	var total, automatic int64
	if err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("user_id = ? AND automatic = ?", userID, true).Count(&automatic).Error; err != nil {
		return 0, 0, err
	}
	return total, automatic, nil
}

func (r *EventRepositoryImpl) SaveCoverage(ctx context.Context, coverage *entity.Coverage) error {
	m := &model.Coverage{
		UserID:   coverage.UserID,
		Coverage: coverage.Coverage,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	coverage.ID = m.ID
	coverage.CreatedAt = m.CreatedAt
	return nil
}

func (r *EventRepositoryImpl) ListCoverage(ctx context.Context, userID string) ([]*entity.Coverage, error) {
	var models []*model.Coverage
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	stats := make([]*entity.Coverage, len(models))
	for i, m := range models {
		stats[i] = r.mapper.CoverageToEntity(m)
	}
	return stats, nil
}

func (r *EventRepositoryImpl) DeleteAllByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Event{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.Coverage{}).Error
	})
}
