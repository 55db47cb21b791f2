package contract

import (
	"context"

	"qa-assistant-be/internal/entity"
)

// SessionStore owns cookie sessions. Get returns (nil, nil) for unknown or
// expired ids.
type SessionStore interface {
	Create(ctx context.Context, userID string) (*entity.Session, error)
	Get(ctx context.Context, sessionID string) (*entity.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
