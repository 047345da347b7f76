package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind a session cookie. Its payload is
// the bound user's identifier only, never the password hash or full record.
type Session struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func NewSession(username string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Username:  username,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
