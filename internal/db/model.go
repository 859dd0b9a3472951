// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	Post struct {
		ID, Title, Content, IsDraft, CreatedAt, UpdatedAt, PublishedAt string
	}
}{
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	Post: struct {
		ID, Title, Content, IsDraft, CreatedAt, UpdatedAt, PublishedAt string
	}{
		ID:          "postId",
		Title:       "title",
		Content:     "content",
		IsDraft:     "isDraft",
		CreatedAt:   "createdAt",
		UpdatedAt:   "updatedAt",
		PublishedAt: "publishedAt",
	},
}

var Tables = struct {
	GooseDbVersion struct {
		Name, Alias string
	}
	Post struct {
		Name, Alias string
	}
}{
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	Post: struct {
		Name, Alias string
	}{
		Name:  "posts",
		Alias: "t",
	},
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID          int        `pg:"postId,pk"`
	Title       string     `pg:"title,use_zero"`
	Content     string     `pg:"content,use_zero"`
	IsDraft     bool       `pg:"isDraft,use_zero"`
	CreatedAt   time.Time  `pg:"createdAt,use_zero"`
	UpdatedAt   time.Time  `pg:"updatedAt,use_zero"`
	PublishedAt *time.Time `pg:"publishedAt"`
}
