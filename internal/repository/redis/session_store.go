package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/random"
	"qa-assistant-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps cookie sessions in Redis with the 30-day TTL enforced
// by the server instead of application code.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) contract.SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Create(ctx context.Context, userID string) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		SessionID: random.URLSafeToken(32),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(entity.SessionTTL),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+session.SessionID, payload, entity.SessionTTL).Err(); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	payload, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
