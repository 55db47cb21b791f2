package entity

import "time"

// SessionTTL also drives the session cookie expiry (30 days).
const SessionTTL = 30 * 24 * time.Hour

// Session binds a cookie value to a user.
type Session struct {
	SessionID string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
