package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/core/repository"
	"go.uber.org/zap"
)

const (
	// SessionTTL is the sliding expiry window: each resolved request pushes
	// the server-side expiry another 24h out.
	SessionTTL = 24 * time.Hour

	// ReapInterval is how often the background reaper purges expired
	// sessions from the store.
	ReapInterval = time.Hour
)

// SessionService binds authenticated users to server-side sessions. The
// cookie handed to the browser is the session ID wrapped in an HS256-signed
// token; the session payload itself is the username only.
type SessionService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	secret      string
	logger      *zap.Logger

	stop chan struct{}
	done chan struct{}
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	secret string,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		secret:      secret,
		logger:      logger,
	}
}

// Issue serializes a user into a new session and returns the signed cookie
// token. Only the username crosses into the session store.
func (s *SessionService) Issue(ctx context.Context, user *domain.User) (string, error) {
	session := domain.NewSession(user.Username, SessionTTL)

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return s.signToken(session.ID)
}

// Resolve deserializes a cookie token back into the full user record. The
// record is re-fetched from the user store on every request; a session whose
// user no longer resolves yields (nil, nil) so the request proceeds with no
// bound identity. Resolving also slides the session expiry forward.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil
	}

	if session.IsExpired() {
		return nil, nil
	}

	user, err := s.userRepo.FindByUsername(ctx, session.Username)
	if err != nil {
		// User deleted since the session was issued.
		return nil, nil
	}

	if err := s.sessionRepo.Touch(ctx, sessionID, time.Now().Add(SessionTTL)); err != nil {
		s.logger.Warn("failed to touch session", zap.Error(err))
	}

	return user, nil
}

// Destroy clears the server-side session behind a cookie token.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

// Start launches the background reaper. Expired sessions are rejected at
// resolve time regardless; the reaper only reclaims storage.
func (s *SessionService) Start() {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(ReapInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.sessionRepo.DeleteExpired(context.Background()); err != nil {
					s.logger.Warn("failed to reap expired sessions", zap.Error(err))
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the reaper and waits for it to exit.
func (s *SessionService) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
}

func (s *SessionService) signToken(sessionID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  sessionID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *SessionService) parseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid session token claims")
	}

	return claims.Subject, nil
}
