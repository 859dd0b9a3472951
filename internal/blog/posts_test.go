package blog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"

	"github.com/mkravets/blog-api/internal/db"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	opt, err := pg.ParseURL(db.TestDBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse database URL: %v\n", err)
		os.Exit(1)
	}

	testDB = pg.Connect(opt)

	if err := testDB.Ping(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect to test database. Make sure PostgreSQL is running:")
		fmt.Fprintln(os.Stderr, "  docker-compose -f docker-compose.test.yml up -d")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := db.PrepareTestDB(ctx, testDB); err != nil {
		fmt.Fprintf(os.Stderr, "failed to prepare test database: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func withTx(t *testing.T) (context.Context, *Manager) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	repo := db.New(tx)
	manager := NewPostManager(repo)
	return ctx, manager
}

func TestManager_CreatePost_Integration(t *testing.T) {
	ctx, manager := withTx(t)

	t.Run("DraftHasNoPublishedAt", func(t *testing.T) {
		post, err := manager.CreatePost(ctx, PostInput{Title: "Draft", Content: "Body", IsDraft: true})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		if post.ID == 0 {
			t.Error("expected assigned id")
		}
		if post.PublishedAt != nil {
			t.Errorf("draft must not have publishedAt, got %v", post.PublishedAt)
		}
		if post.CreatedAt.IsZero() || post.UpdatedAt.IsZero() {
			t.Error("createdAt and updatedAt must be set")
		}
	})

	t.Run("PublishedAtCreationIsStampedImmediately", func(t *testing.T) {
		post, err := manager.CreatePost(ctx, PostInput{Title: "Live", Content: "Body", IsDraft: false})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		if post.PublishedAt == nil {
			t.Fatal("publishedAt must be stamped when created published")
		}
		if time.Since(*post.PublishedAt) > time.Minute {
			t.Errorf("publishedAt should be about now, got %v", post.PublishedAt)
		}
	})

	t.Run("EmptyTitleRejected", func(t *testing.T) {
		_, err := manager.CreatePost(ctx, PostInput{Title: "", Content: "Body"})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("OverlongTitleRejected", func(t *testing.T) {
		_, err := manager.CreatePost(ctx, PostInput{
			Title:   strings.Repeat("x", MaxTitleLength+1),
			Content: "Body",
		})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("EmptyContentRejected", func(t *testing.T) {
		_, err := manager.CreatePost(ctx, PostInput{Title: "Title", Content: ""})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestManager_UpdatePost_Integration(t *testing.T) {
	ctx, manager := withTx(t)

	t.Run("FirstPublishStampsPublishedAt", func(t *testing.T) {
		post, err := manager.CreatePost(ctx, PostInput{Title: "Draft", Content: "Body", IsDraft: true})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}

		found, err := manager.UpdatePost(ctx, post.ID, PostInput{Title: "Draft", Content: "Body", IsDraft: false})
		if err != nil || !found {
			t.Fatalf("UpdatePost failed: found=%v err=%v", found, err)
		}

		updated, err := manager.PostByID(ctx, post.ID, true)
		if err != nil {
			t.Fatalf("PostByID failed: %v", err)
		}
		if updated.PublishedAt == nil {
			t.Fatal("publishedAt must be stamped on first publish")
		}
	})

	t.Run("RedraftingKeepsPublishedAt", func(t *testing.T) {
		post, err := manager.CreatePost(ctx, PostInput{Title: "Live", Content: "Body", IsDraft: false})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		stamped := *post.PublishedAt

		found, err := manager.UpdatePost(ctx, post.ID, PostInput{Title: "Live", Content: "Body", IsDraft: true})
		if err != nil || !found {
			t.Fatalf("UpdatePost failed: found=%v err=%v", found, err)
		}

		redrafted, err := manager.PostByID(ctx, post.ID, true)
		if err != nil {
			t.Fatalf("PostByID failed: %v", err)
		}
		if !redrafted.IsDraft {
			t.Error("post should be draft again")
		}
		if redrafted.PublishedAt == nil || !redrafted.PublishedAt.Equal(stamped) {
			t.Errorf("publishedAt must keep its original value %v, got %v", stamped, redrafted.PublishedAt)
		}

		// Publishing again must not move the stamp either.
		found, err = manager.UpdatePost(ctx, post.ID, PostInput{Title: "Live", Content: "Body", IsDraft: false})
		if err != nil || !found {
			t.Fatalf("UpdatePost failed: found=%v err=%v", found, err)
		}
		republished, err := manager.PostByID(ctx, post.ID, true)
		if err != nil {
			t.Fatalf("PostByID failed: %v", err)
		}
		if !republished.PublishedAt.Equal(stamped) {
			t.Errorf("publishedAt moved on republish: %v != %v", republished.PublishedAt, stamped)
		}
	})

	t.Run("RefreshesUpdatedAt", func(t *testing.T) {
		post, err := manager.CreatePost(ctx, PostInput{Title: "Live", Content: "Body", IsDraft: false})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}

		found, err := manager.UpdatePost(ctx, post.ID, PostInput{Title: "Edited", Content: "Body", IsDraft: false})
		if err != nil || !found {
			t.Fatalf("UpdatePost failed: found=%v err=%v", found, err)
		}

		updated, err := manager.PostByID(ctx, post.ID, true)
		if err != nil {
			t.Fatalf("PostByID failed: %v", err)
		}
		if updated.Title != "Edited" {
			t.Errorf("title not replaced: %s", updated.Title)
		}
		if updated.UpdatedAt.Before(post.UpdatedAt) {
			t.Errorf("updatedAt must not move backward: %v < %v", updated.UpdatedAt, post.UpdatedAt)
		}
		if !updated.CreatedAt.Equal(post.CreatedAt) {
			t.Errorf("createdAt must be immutable: %v != %v", updated.CreatedAt, post.CreatedAt)
		}
	})

	t.Run("MissingIDReportsNotFound", func(t *testing.T) {
		found, err := manager.UpdatePost(ctx, 999999, PostInput{Title: "T", Content: "C"})
		if err != nil {
			t.Fatalf("UpdatePost failed: %v", err)
		}
		if found {
			t.Error("expected not-found for missing id")
		}
	})
}

func TestManager_Visibility_Integration(t *testing.T) {
	ctx, manager := withTx(t)

	draft, err := manager.CreatePost(ctx, PostInput{Title: "Hidden", Content: "Body", IsDraft: true})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	t.Run("AnonymousDraftReadEqualsMissingRead", func(t *testing.T) {
		hidden, err := manager.PostByID(ctx, draft.ID, false)
		if err != nil {
			t.Fatalf("PostByID failed: %v", err)
		}
		missing, err := manager.PostByID(ctx, 999999, false)
		if err != nil {
			t.Fatalf("PostByID failed: %v", err)
		}
		if hidden != nil || missing != nil {
			t.Errorf("both reads must come back empty: hidden=%v missing=%v", hidden, missing)
		}
	})

	t.Run("AdminReadsDraft", func(t *testing.T) {
		post, err := manager.PostByID(ctx, draft.ID, true)
		if err != nil {
			t.Fatalf("PostByID failed: %v", err)
		}
		if post == nil {
			t.Fatal("admin must see the draft")
		}
		if !post.IsDraft {
			t.Error("expected draft state")
		}
	})

	t.Run("AnonymousListExcludesDraftsOrderedByPublishedAt", func(t *testing.T) {
		posts, err := manager.Posts(ctx, false)
		if err != nil {
			t.Fatalf("Posts failed: %v", err)
		}
		if len(posts) == 0 {
			t.Fatal("expected published posts from fixtures")
		}
		for i, p := range posts {
			if p.IsDraft {
				t.Errorf("posts[%d] is a draft", i)
			}
			if p.PublishedAt == nil {
				t.Errorf("posts[%d] has no publishedAt", i)
			}
			if i > 0 && posts[i-1].PublishedAt.Before(*p.PublishedAt) {
				t.Errorf("posts not ordered by publishedAt DESC at %d", i)
			}
		}
	})

	t.Run("AdminListIncludesDraftsOrderedByCreatedAt", func(t *testing.T) {
		posts, err := manager.Posts(ctx, true)
		if err != nil {
			t.Fatalf("Posts failed: %v", err)
		}
		hasDraft := false
		for i, p := range posts {
			if p.IsDraft {
				hasDraft = true
			}
			if i > 0 && posts[i-1].CreatedAt.Before(p.CreatedAt) {
				t.Errorf("posts not ordered by createdAt DESC at %d", i)
			}
		}
		if !hasDraft {
			t.Error("admin list must include drafts")
		}
	})
}

func TestManager_DeletePost_Integration(t *testing.T) {
	ctx, manager := withTx(t)

	post, err := manager.CreatePost(ctx, PostInput{Title: "Doomed", Content: "Body", IsDraft: false})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	found, err := manager.DeletePost(ctx, post.ID)
	if err != nil || !found {
		t.Fatalf("DeletePost failed: found=%v err=%v", found, err)
	}

	gone, err := manager.PostByID(ctx, post.ID, true)
	if err != nil {
		t.Fatalf("PostByID failed: %v", err)
	}
	if gone != nil {
		t.Error("post must be gone after delete")
	}

	found, err = manager.DeletePost(ctx, post.ID)
	if err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if found {
		t.Error("second delete must report not-found")
	}
}
