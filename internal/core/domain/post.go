package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        string    `db:"id"`
	Author    string    `db:"author"` // username snapshot, not a foreign key
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func NewPost(author, content string) *Post {
	return &Post{
		ID:        uuid.New().String(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// URL is the admin delete-confirmation path for this post.
func (p *Post) URL() string {
	return "/" + p.ID
}

// DateFormatted renders the creation date as YYYY-MM-DD for the feed.
func (p *Post) DateFormatted() string {
	return p.CreatedAt.Format("2006-01-02")
}
