package mapper

import (
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToModel(e *entity.User) *model.User {
	return &model.User{
		UserID:               e.UserID,
		PasswordHash:         e.PasswordHash,
		Token:                e.Token,
		AdminToken:           e.AdminToken,
		Plan:                 string(e.Plan),
		DocumentThreshold:    e.DocumentThreshold,
		SavedReplyThreshold:  e.SavedReplyThreshold,
		TermsAgreed:          e.TermsAgreed,
		OnboardingCompleted:  e.OnboardingCompleted,
		ForwardEmail:         e.ForwardEmail,
		ForwardEmailVerified: e.ForwardEmailVerified,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (m *UserMapper) ToEntity(mod *model.User) *entity.User {
	return &entity.User{
		UserID:               mod.UserID,
		PasswordHash:         mod.PasswordHash,
		Token:                mod.Token,
		AdminToken:           mod.AdminToken,
		Plan:                 entity.Plan(mod.Plan),
		DocumentThreshold:    mod.DocumentThreshold,
		SavedReplyThreshold:  mod.SavedReplyThreshold,
		TermsAgreed:          mod.TermsAgreed,
		OnboardingCompleted:  mod.OnboardingCompleted,
		ForwardEmail:         mod.ForwardEmail,
		ForwardEmailVerified: mod.ForwardEmailVerified,
		CreatedAt:            mod.CreatedAt,
		UpdatedAt:            mod.UpdatedAt,
	}
}
