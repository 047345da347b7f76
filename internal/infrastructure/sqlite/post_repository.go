package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/core/repository"
)

type postRepository struct {
	db *DB
}

func NewPostRepository(db *DB) repository.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO post (id, author, content, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.Author,
		post.Content,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `
		SELECT id, author, content, created_at
		FROM post
		WHERE id = ?
	`
	var post domain.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*domain.Post, error) {
	// Ties on created_at fall back to the store's default order.
	query := `
		SELECT id, author, content, created_at
		FROM post
		ORDER BY created_at DESC
	`
	var posts []*domain.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	// Deleting a nonexistent ID is deliberately a no-op.
	query := `DELETE FROM post WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
