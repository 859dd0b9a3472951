package blog

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mkravets/blog-api/internal/db"
)

// ErrValidation marks client input errors so the boundary can map them
// to a client-error response instead of a server error.
var ErrValidation = errors.New("validation failed")

type Manager struct {
	db *db.Repository
}

func NewPostManager(repo *db.Repository) *Manager {
	return &Manager{
		db: repo,
	}
}

// Posts lists posts for the caller. Admin callers see the whole table
// ordered by createdAt DESC; anonymous callers see only published posts
// ordered by publishedAt DESC.
func (m *Manager) Posts(ctx context.Context, admin bool) ([]Post, error) {
	dbPosts, err := m.db.Posts(ctx, admin)
	if err != nil {
		return nil, fmt.Errorf("db get posts: %w", err)
	}

	return NewPosts(dbPosts), nil
}

// PostByID returns nil without error when the post is absent, or when it
// is a draft and the caller is not admin. The two cases are deliberately
// indistinguishable so anonymous callers cannot probe for drafts.
func (m *Manager) PostByID(ctx context.Context, postID int, admin bool) (*Post, error) {
	dbPost, err := m.db.PostByID(ctx, postID, admin)
	if err != nil {
		return nil, fmt.Errorf("db get post by id: %w", err)
	} else if dbPost == nil {
		return nil, nil
	}

	post := NewPost(dbPost)
	return &post, nil
}

// CreatePost persists a new post. Posts created published get their
// publishedAt stamped immediately.
func (m *Manager) CreatePost(ctx context.Context, input PostInput) (*Post, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := nowStamp()
	dbPost := &db.Post{
		Title:     input.Title,
		Content:   input.Content,
		IsDraft:   input.IsDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !input.IsDraft {
		dbPost.PublishedAt = &now
	}

	if err := m.db.CreatePost(ctx, dbPost); err != nil {
		return nil, fmt.Errorf("db create post: %w", err)
	}

	post := NewPost(dbPost)
	return &post, nil
}

// UpdatePost fully replaces title, content and draft state. The first
// transition out of draft stamps publishedAt; the stamp is never cleared
// or moved afterwards, even when the post goes back to draft.
// Returns false when the post does not exist.
func (m *Manager) UpdatePost(ctx context.Context, postID int, input PostInput) (bool, error) {
	if err := validateInput(input); err != nil {
		return false, err
	}

	existing, err := m.db.PostByID(ctx, postID, true)
	if err != nil {
		return false, fmt.Errorf("db get post by id: %w", err)
	} else if existing == nil {
		return false, nil
	}

	now := nowStamp()
	updated := &db.Post{
		ID:          postID,
		Title:       input.Title,
		Content:     input.Content,
		IsDraft:     input.IsDraft,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   now,
		PublishedAt: existing.PublishedAt,
	}
	if !input.IsDraft && existing.PublishedAt == nil {
		updated.PublishedAt = &now
	}

	found, err := m.db.UpdatePost(ctx, updated)
	if err != nil {
		return false, fmt.Errorf("db update post: %w", err)
	}

	// The row may have been deleted between the read and the write;
	// surface that as not-found, same as a missing id.
	return found, nil
}

// DeletePost hard-removes a post. Returns false when it does not exist.
func (m *Manager) DeletePost(ctx context.Context, postID int) (bool, error) {
	found, err := m.db.DeletePost(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("db delete post: %w", err)
	}

	return found, nil
}

// nowStamp truncates to microseconds, the precision postgres keeps, so
// stored timestamps round-trip exactly.
func nowStamp() time.Time {
	return time.Now().Truncate(time.Microsecond)
}

func validateInput(input PostInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(input.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrValidation, MaxTitleLength)
	}
	if input.Content == "" {
		return fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	return nil
}
