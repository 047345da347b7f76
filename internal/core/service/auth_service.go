package service

import (
	"context"
	"fmt"

	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost        = 10
	MinPasswordLength = 5
)

// AuthService is the credential-verification strategy plus the sign-up flow.
// It is an injected value, not a process-wide registration; the login handler
// receives it explicitly.
type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Authenticate looks up exactly one user by username and compares the
// password against the stored hash. An unknown username returns before any
// hash comparison is made. No state is mutated either way.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrIncorrectUsername
	}

	if !s.VerifyPassword(password, user.Password) {
		return nil, ErrIncorrectPassword
	}

	return user, nil
}

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Username  string
	Password  string
	Confirm   string
	Firstname string
	Lastname  string
}

// Register validates a sign-up submission and creates the user. All field
// failures are collected into one ValidationError so the form can show every
// message at once. New users start without membership and without admin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	var ve ValidationError

	if _, err := s.userRepo.FindByUsername(ctx, in.Username); err == nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "username", Message: "Username is taken."})
	}

	if len(in.Password) < MinPasswordLength {
		ve.Errors = append(ve.Errors, FieldError{Field: "password", Message: "Password has to be at least 5 symbols long"})
	}

	if in.Confirm != in.Password {
		ve.Errors = append(ve.Errors, FieldError{Field: "confirm", Message: "Passwords do not match"})
	}

	if len(ve.Errors) > 0 {
		return nil, &ve
	}

	hashedPassword, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(in.Username, hashedPassword, in.Firstname, in.Lastname)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
