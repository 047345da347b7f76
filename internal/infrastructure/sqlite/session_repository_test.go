package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/clubhouse/internal/core/domain"
)

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	repo := NewSessionRepository(db)
	ctx := context.Background()

	live := domain.NewSession("alice", 24*time.Hour)
	stale := domain.NewSession("bob", 24*time.Hour)
	stale.ExpiresAt = time.Now().Add(-time.Minute)

	for _, s := range []*domain.Session{live, stale} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
	}

	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("failed to delete expired sessions: %v", err)
	}

	if _, err := repo.FindByID(ctx, live.ID); err != nil {
		t.Errorf("live session must survive the reaper: %v", err)
	}
	if _, err := repo.FindByID(ctx, stale.ID); err == nil {
		t.Error("expired session must be reaped")
	}
}

func TestSessionRepositoryTouch(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := domain.NewSession("alice", time.Minute)
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	newExpiry := time.Now().Add(24 * time.Hour)
	if err := repo.Touch(ctx, session.ID, newExpiry); err != nil {
		t.Fatalf("failed to touch session: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if !reloaded.ExpiresAt.After(session.ExpiresAt) {
		t.Errorf("expected expiry to move forward, got %v", reloaded.ExpiresAt)
	}

	if err := repo.Touch(ctx, "missing", newExpiry); err == nil {
		t.Error("touching a missing session must fail")
	}
}
