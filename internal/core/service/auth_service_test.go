package service

import (
	"context"
	"errors"
	"testing"

	"github.com/martijn/clubhouse/internal/infrastructure/sqlite"
)

func setupAuthService(t *testing.T) (*AuthService, *sqlite.DB) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewAuthService(sqlite.NewUserRepository(db)), db
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    RegisterInput
		existing *RegisterInput // registered beforehand
		wantMsgs []string
	}{
		{
			name:  "valid registration",
			input: RegisterInput{Username: "alice", Password: "abcde", Confirm: "abcde", Firstname: "A", Lastname: "L"},
		},
		{
			name:     "duplicate username",
			existing: &RegisterInput{Username: "alice", Password: "abcde", Confirm: "abcde", Firstname: "A", Lastname: "L"},
			input:    RegisterInput{Username: "alice", Password: "fghij", Confirm: "fghij", Firstname: "B", Lastname: "M"},
			wantMsgs: []string{"Username is taken."},
		},
		{
			name:     "short password",
			input:    RegisterInput{Username: "bob", Password: "abcd", Confirm: "abcd", Firstname: "B", Lastname: "M"},
			wantMsgs: []string{"Password has to be at least 5 symbols long"},
		},
		{
			name:     "mismatched confirmation",
			input:    RegisterInput{Username: "carol", Password: "abcde", Confirm: "abcdf", Firstname: "C", Lastname: "N"},
			wantMsgs: []string{"Passwords do not match"},
		},
		{
			name:  "short password and mismatch collected together",
			input: RegisterInput{Username: "dave", Password: "abc", Confirm: "xyz", Firstname: "D", Lastname: "O"},
			wantMsgs: []string{
				"Password has to be at least 5 symbols long",
				"Passwords do not match",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := setupAuthService(t)
			ctx := context.Background()

			if tt.existing != nil {
				if _, err := svc.Register(ctx, *tt.existing); err != nil {
					t.Fatalf("failed to register existing user: %v", err)
				}
			}

			var before int
			if err := db.Get(&before, "SELECT COUNT(*) FROM user"); err != nil {
				t.Fatalf("failed to count users: %v", err)
			}

			user, err := svc.Register(ctx, tt.input)

			if len(tt.wantMsgs) == 0 {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if user.Membership || user.Admin {
					t.Errorf("new user must start without membership and admin, got membership=%t admin=%t", user.Membership, user.Admin)
				}
				if user.Password == tt.input.Password {
					t.Error("stored password must be hashed, got plaintext")
				}
				return
			}

			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			got := ve.Messages()
			if len(got) != len(tt.wantMsgs) {
				t.Fatalf("expected %d messages, got %d: %v", len(tt.wantMsgs), len(got), got)
			}
			for i, msg := range tt.wantMsgs {
				if got[i] != msg {
					t.Errorf("message[%d]: expected %q, got %q", i, msg, got[i])
				}
			}

			var after int
			if err := db.Get(&after, "SELECT COUNT(*) FROM user"); err != nil {
				t.Fatalf("failed to count users: %v", err)
			}
			if after != before {
				t.Errorf("validation failure must not create a user record: %d -> %d", before, after)
			}
		})
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Password: "abcde", Confirm: "abcde", Firstname: "A", Lastname: "L",
	}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "alice", "abcde")
	if err != nil {
		t.Fatalf("expected successful authentication, got %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected user alice, got %s", user.Username)
	}

	if _, err := svc.Authenticate(ctx, "alice", "abcdf"); !errors.Is(err, ErrIncorrectPassword) {
		t.Errorf("expected ErrIncorrectPassword, got %v", err)
	}

	if _, err := svc.Authenticate(ctx, "nobody", "abcde"); !errors.Is(err, ErrIncorrectUsername) {
		t.Errorf("expected ErrIncorrectUsername, got %v", err)
	}
}
