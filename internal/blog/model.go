package blog

import (
	"time"

	"github.com/mkravets/blog-api/internal/db"
)

const MaxTitleLength = 200

type Post struct {
	ID          int
	Title       string
	Content     string
	IsDraft     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// PostInput is the full replacement payload for create and update.
type PostInput struct {
	Title   string
	Content string
	IsDraft bool
}

func NewPost(p *db.Post) Post {
	return Post{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		IsDraft:     p.IsDraft,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
	}
}

func NewPosts(list []db.Post) []Post {
	result := make([]Post, len(list))
	for i := range list {
		result[i] = NewPost(&list[i])
	}
	return result
}
