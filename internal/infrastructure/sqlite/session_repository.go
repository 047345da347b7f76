package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/core/repository"
)

type sessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO session (id, username, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Username,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT id, username, expires_at, created_at
		FROM session
		WHERE id = ?
	`
	var session domain.Session
	err := r.db.GetContext(ctx, &session, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	query := `UPDATE session SET expires_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, expiresAt, id)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found: %s", id)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM session WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM session WHERE expires_at < ?`
	_, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
