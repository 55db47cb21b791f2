package memory

import (
	"context"
	"time"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/random"
	"qa-assistant-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SessionStore is the in-process SessionStore used in tests and single-node
// deployments without Redis. Expired sessions are purged by the cache.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore() contract.SessionStore {
	return &SessionStore{
		cache: cache.New(entity.SessionTTL, 10*time.Minute),
	}
}

func (s *SessionStore) Create(ctx context.Context, userID string) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		SessionID: random.URLSafeToken(32),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(entity.SessionTTL),
	}
	s.cache.Set(session.SessionID, session, cache.DefaultExpiration)
	return session, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	if x, found := s.cache.Get(sessionID); found {
		return x.(*entity.Session), nil
	}
	return nil, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}
