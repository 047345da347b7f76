package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/martijn/clubhouse/internal/core/repository"
	"github.com/martijn/clubhouse/internal/infrastructure/sqlite"
)

func setupPostService(t *testing.T) (*PostService, *sqlite.DB) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewPostService(sqlite.NewPostRepository(db)), db
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	svc, db := setupPostService(t)

	_, err := svc.Create(context.Background(), "alice", "")
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Messages()[0] != "WRITE SOMETHING FIRST!" {
		t.Errorf("unexpected message: %v", ve.Messages())
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM post"); err != nil {
		t.Fatalf("failed to count posts: %v", err)
	}
	if count != 0 {
		t.Errorf("expected zero posts after rejected submission, got %d", count)
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()

	base := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	rows := []struct {
		id      string
		content string
		at      time.Time
	}{
		{"post-1", "oldest", base},
		{"post-2", "middle", base.Add(time.Hour)},
		{"post-3", "newest", base.Add(2 * time.Hour)},
	}
	for _, row := range rows {
		if _, err := db.Exec(
			"INSERT INTO post (id, author, content, created_at) VALUES (?, ?, ?, ?)",
			row.id, "alice", row.content, row.at.Format(time.RFC3339),
		); err != nil {
			t.Fatalf("failed to seed post %s: %v", row.id, err)
		}
	}

	posts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if posts[i].Content != want {
			t.Errorf("posts[%d]: expected %q, got %q", i, want, posts[i].Content)
		}
	}
}

func TestGetPostNotFound(t *testing.T) {
	svc, _ := setupPostService(t)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "alice", "hello")
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Fatalf("failed to delete post: %v", err)
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM post"); err != nil {
		t.Fatalf("failed to count posts: %v", err)
	}
	if count != 0 {
		t.Errorf("expected post to be deleted, got %d rows", count)
	}

	// Deleting a nonexistent ID is a silent no-op.
	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Errorf("expected no-op delete, got %v", err)
	}
}
