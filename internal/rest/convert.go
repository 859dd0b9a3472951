package rest

import "github.com/mkravets/blog-api/internal/blog"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewPost(p blog.Post) Post {
	return Post{
		PostID:      p.ID,
		Title:       p.Title,
		Content:     p.Content,
		IsDraft:     p.IsDraft,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
	}
}

func NewPosts(list []blog.Post) []Post {
	return Map(list, NewPost)
}
