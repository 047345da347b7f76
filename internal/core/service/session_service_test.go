package service

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/infrastructure/sqlite"
	"go.uber.org/zap"
)

func setupSessionService(t *testing.T) (*SessionService, *AuthService, *sqlite.DB) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	svc := NewSessionService(sessionRepo, userRepo, "test-secret", zap.NewNop())

	return svc, NewAuthService(userRepo), db
}

func registerAlice(t *testing.T, auth *AuthService) *domain.User {
	t.Helper()

	user, err := auth.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "abcde", Confirm: "abcde", Firstname: "A", Lastname: "L",
	})
	if err != nil {
		t.Fatalf("failed to register alice: %v", err)
	}
	return user
}

func TestSessionIssueResolve(t *testing.T) {
	svc, auth, _ := setupSessionService(t)
	ctx := context.Background()
	user := registerAlice(t, auth)

	token, err := svc.Issue(ctx, user)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}

	resolved, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("failed to resolve session: %v", err)
	}
	if resolved == nil || resolved.Username != "alice" {
		t.Fatalf("expected alice to be bound, got %+v", resolved)
	}
}

func TestSessionResolveFailuresYieldNoIdentity(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, svc *SessionService, auth *AuthService, db *sqlite.DB) string
	}{
		{
			name: "tampered token",
			prepare: func(t *testing.T, svc *SessionService, auth *AuthService, db *sqlite.DB) string {
				user := registerAlice(t, auth)
				token, err := svc.Issue(context.Background(), user)
				if err != nil {
					t.Fatalf("failed to issue session: %v", err)
				}
				return token + "x"
			},
		},
		{
			name: "garbage token",
			prepare: func(t *testing.T, svc *SessionService, auth *AuthService, db *sqlite.DB) string {
				return "not-a-token"
			},
		},
		{
			name: "destroyed session",
			prepare: func(t *testing.T, svc *SessionService, auth *AuthService, db *sqlite.DB) string {
				user := registerAlice(t, auth)
				token, err := svc.Issue(context.Background(), user)
				if err != nil {
					t.Fatalf("failed to issue session: %v", err)
				}
				if err := svc.Destroy(context.Background(), token); err != nil {
					t.Fatalf("failed to destroy session: %v", err)
				}
				return token
			},
		},
		{
			name: "user deleted after session issued",
			prepare: func(t *testing.T, svc *SessionService, auth *AuthService, db *sqlite.DB) string {
				user := registerAlice(t, auth)
				token, err := svc.Issue(context.Background(), user)
				if err != nil {
					t.Fatalf("failed to issue session: %v", err)
				}
				if _, err := db.Exec("DELETE FROM user WHERE username = ?", "alice"); err != nil {
					t.Fatalf("failed to delete user: %v", err)
				}
				return token
			},
		},
		{
			name: "expired session",
			prepare: func(t *testing.T, svc *SessionService, auth *AuthService, db *sqlite.DB) string {
				user := registerAlice(t, auth)
				token, err := svc.Issue(context.Background(), user)
				if err != nil {
					t.Fatalf("failed to issue session: %v", err)
				}
				if _, err := db.Exec("UPDATE session SET expires_at = ?", time.Now().Add(-time.Minute)); err != nil {
					t.Fatalf("failed to expire session: %v", err)
				}
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, auth, db := setupSessionService(t)

			token := tt.prepare(t, svc, auth, db)

			user, err := svc.Resolve(context.Background(), token)
			if err != nil {
				t.Fatalf("resolve must not fail the request: %v", err)
			}
			if user != nil {
				t.Errorf("expected no bound identity, got %s", user.Username)
			}
		})
	}
}

func TestSessionResolveSlidesExpiry(t *testing.T) {
	svc, auth, db := setupSessionService(t)
	ctx := context.Background()
	user := registerAlice(t, auth)

	token, err := svc.Issue(ctx, user)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}

	// Pull the expiry back so the slide is observable.
	nearExpiry := time.Now().Add(time.Minute)
	if _, err := db.Exec("UPDATE session SET expires_at = ?", nearExpiry); err != nil {
		t.Fatalf("failed to rewind expiry: %v", err)
	}

	if _, err := svc.Resolve(ctx, token); err != nil {
		t.Fatalf("failed to resolve session: %v", err)
	}

	var expiresAt time.Time
	if err := db.Get(&expiresAt, "SELECT expires_at FROM session"); err != nil {
		t.Fatalf("failed to read expiry: %v", err)
	}
	if !expiresAt.After(nearExpiry.Add(time.Hour)) {
		t.Errorf("expected expiry to slide to ~24h out, got %v", expiresAt)
	}
}

func TestSessionPayloadIsIdentifierOnly(t *testing.T) {
	svc, auth, db := setupSessionService(t)
	ctx := context.Background()
	user := registerAlice(t, auth)

	if _, err := svc.Issue(ctx, user); err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}

	var stored struct {
		ID       string `db:"id"`
		Username string `db:"username"`
	}
	if err := db.Get(&stored, "SELECT id, username FROM session"); err != nil {
		t.Fatalf("failed to read session: %v", err)
	}
	if stored.Username != "alice" {
		t.Errorf("expected session payload to be the username, got %q", stored.Username)
	}
}
