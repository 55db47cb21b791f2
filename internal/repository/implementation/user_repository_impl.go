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

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.User{}).Error
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, value string) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where(query, value).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *UserRepositoryImpl) FindByToken(ctx context.Context, token string) (*entity.User, error) {
	return r.findOne(ctx, "token = ?", token)
}

func (r *UserRepositoryImpl) FindByAdminToken(ctx context.Context, adminToken string) (*entity.User, error) {
	return r.findOne(ctx, "admin_token = ?", adminToken)
}

func (r *UserRepositoryImpl) CreateForwardEmailToken(ctx context.Context, token *entity.ForwardEmailToken) error {
	m := &model.ForwardEmailToken{
		Token:     token.Token,
		UserID:    token.UserID,
		Email:     token.Email,
		ExpiresAt: token.ExpiresAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *UserRepositoryImpl) FindForwardEmailToken(ctx context.Context, token string) (*entity.ForwardEmailToken, error) {
	var m model.ForwardEmailToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.ForwardEmailToken{
		Token:     m.Token,
		UserID:    m.UserID,
		Email:     m.Email,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *UserRepositoryImpl) DeleteForwardEmailToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.ForwardEmailToken{}).Error
}
