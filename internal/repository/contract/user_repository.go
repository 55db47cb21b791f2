package contract

import (
	"context"

	"qa-assistant-be/internal/entity"
)

// UserRepository is the user store collaborator. Lookups return (nil, nil)
// when no user matches; the authenticator depends on that to stay silent on
// unknown tokens.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, userID string) error
	FindByUserID(ctx context.Context, userID string) (*entity.User, error)
	FindByToken(ctx context.Context, token string) (*entity.User, error)
	FindByAdminToken(ctx context.Context, adminToken string) (*entity.User, error)

	// Forward email verification tokens. FindForwardEmailToken returns
	// (nil, nil) for unknown tokens.
	CreateForwardEmailToken(ctx context.Context, token *entity.ForwardEmailToken) error
	FindForwardEmailToken(ctx context.Context, token string) (*entity.ForwardEmailToken, error)
	DeleteForwardEmailToken(ctx context.Context, token string) error
}
