package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/core/repository"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	rdb *redis.Client
}

// NewClient connects to redis and verifies the connection.
func NewClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// NewSessionRepository stores sessions as JSON values under TTL keys. Redis
// expires them natively, so DeleteExpired has nothing to do.
func NewSessionRepository(rdb *redis.Client) repository.SessionRepository {
	return &sessionRepository{rdb: rdb}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired: %s", session.ID)
	}

	if err := r.rdb.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := r.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	session.ExpiresAt = expiresAt
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.rdb.Set(ctx, sessionKeyPrefix+id, payload, time.Until(expiresAt)).Err(); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	// Key TTLs already purge expired sessions.
	return nil
}
