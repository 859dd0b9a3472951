package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// Posts retrieves posts for listing. With includeDrafts the full table is
// returned ordered by createdAt DESC; otherwise only published posts,
// ordered by publishedAt DESC.
func (r *Repository) Posts(ctx context.Context, includeDrafts bool) ([]Post, error) {
	var posts []Post
	query := r.db.ModelContext(ctx, &posts)

	if includeDrafts {
		query = query.OrderExpr(`"t"."createdAt" DESC`)
	} else {
		query = query.
			Where(`"t"."isDraft" = ?`, false).
			OrderExpr(`"t"."publishedAt" DESC`)
	}

	if err := query.Select(); err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	return posts, nil
}

// PostByID retrieves a single post. Without includeDrafts a draft row is
// not distinguishable from an absent one: both return (nil, nil).
func (r *Repository) PostByID(ctx context.Context, postID int, includeDrafts bool) (*Post, error) {
	post := &Post{}
	query := r.db.ModelContext(ctx, post).
		Where(`"t"."postId" = ?`, postID)

	if !includeDrafts {
		query = query.Where(`"t"."isDraft" = ?`, false)
	}

	err := query.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *Repository) CreatePost(ctx context.Context, post *Post) error {
	_, err := r.db.ModelContext(ctx, post).Insert()
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// UpdatePost replaces the stored row. Returns false when the row no
// longer exists (raced with a delete).
func (r *Repository) UpdatePost(ctx context.Context, post *Post) (bool, error) {
	result, err := r.db.ModelContext(ctx, post).WherePK().Update()
	if err != nil {
		return false, fmt.Errorf("failed to update post: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// DeletePost hard-removes the row. Returns false when no row matched.
func (r *Repository) DeletePost(ctx context.Context, postID int) (bool, error) {
	result, err := r.db.ModelContext(ctx, (*Post)(nil)).
		Where(`"t"."postId" = ?`, postID).
		Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
