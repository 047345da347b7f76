package service

import (
	"context"
	"fmt"

	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/core/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create validates and persists a new post attributed to the given author.
func (s *PostService) Create(ctx context.Context, author, content string) (*domain.Post, error) {
	if content == "" {
		return nil, NewValidationError("message", "WRITE SOMETHING FIRST!")
	}

	post := domain.NewPost(author, content)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// List returns the full feed, newest first.
func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.postRepo.List(ctx)
}

// Get retrieves a post by ID.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

// Delete removes a post by ID. A nonexistent ID deletes nothing and returns
// no error.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.postRepo.Delete(ctx, id)
}
