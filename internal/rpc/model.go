package rpc

import (
	"time"

	"github.com/mkravets/blog-api/internal/blog"
)

type Post struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func NewPost(p blog.Post) Post {
	return Post{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		PublishedAt: p.PublishedAt,
	}
}

func NewPosts(list []blog.Post) []Post {
	result := make([]Post, len(list))
	for i := range list {
		result[i] = NewPost(list[i])
	}
	return result
}
