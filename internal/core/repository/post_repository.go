package repository

import (
	"context"

	"github.com/martijn/clubhouse/internal/core/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns all posts, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	// Delete removes a post by ID. Deleting a nonexistent ID is a no-op.
	Delete(ctx context.Context, id string) error
}
