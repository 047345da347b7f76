package service

import (
	"context"
	"fmt"
	"time"

	"github.com/martijn/clubhouse/internal/core/repository"
)

// MemberService upgrades users to members when they present the trial code.
type MemberService struct {
	userRepo  repository.UserRepository
	trialCode string
}

func NewMemberService(userRepo repository.UserRepository, trialCode string) *MemberService {
	return &MemberService{
		userRepo:  userRepo,
		trialCode: trialCode,
	}
}

// Upgrade flips the user's membership flag when the submitted code matches
// the configured trial code.
func (s *MemberService) Upgrade(ctx context.Context, username, code string) error {
	if code != s.trialCode {
		return NewValidationError("trial", "WRONG!")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.Membership = true
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	return nil
}
