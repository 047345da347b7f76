package repository

import (
	"context"
	"time"

	"github.com/martijn/clubhouse/internal/core/domain"
)

// SessionRepository is the server-side session store. Implementations exist
// for sqlite and redis; the route layer only ever sees this interface.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	// Touch slides the session expiry forward to the given time.
	Touch(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}
