package rpc

import (
	"context"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/mkravets/blog-api/internal/blog"
)

//go:generate zenrpc

// PostService provides read-only RPC methods over published posts.
// Drafts are never visible through this surface.
type PostService struct {
	zenrpc.Service
	manager *blog.Manager
}

func NewPostService(manager *blog.Manager) *PostService {
	return &PostService{manager: manager}
}

// List retrieves published posts sorted by publishedAt DESC.
//
//zenrpc:return list of published posts
//zenrpc:500 internal server error
func (s *PostService) List(ctx context.Context) ([]Post, error) {
	posts, err := s.manager.Posts(ctx, false)
	return NewPosts(posts), err
}

// Count returns the number of published posts.
//
//zenrpc:return count of published posts
//zenrpc:500 internal server error
func (s *PostService) Count(ctx context.Context) (int, error) {
	posts, err := s.manager.Posts(ctx, false)
	return len(posts), err
}

// ByID retrieves a single published post with full content.
//
//zenrpc:id post numeric ID
//zenrpc:return published post
//zenrpc:404 post not found
//zenrpc:500 internal server error
func (s *PostService) ByID(ctx context.Context, id int) (*Post, error) {
	post, err := s.manager.PostByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, zenrpc.NewStringError(404, "post not found")
	}

	result := NewPost(*post)
	return &result, nil
}
