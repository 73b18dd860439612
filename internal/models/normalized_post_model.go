package models

import (
	"time"
)

// NormalizedPost is the provider-agnostic post shape returned to clients
// and kept in the cache table. IsError marks a synthetic placeholder built
// for a failed refresh; placeholders are never persisted.
type NormalizedPost struct {
	PostID       string     `db:"post_id" json:"post_id"`
	Title        string     `db:"title" json:"title,omitempty"`
	Description  string     `db:"description" json:"description,omitempty"`
	PublishedAt  *time.Time `db:"published_at" json:"published_at,omitempty"`
	Permalink    string     `db:"permalink" json:"permalink,omitempty"`
	ThumbnailURL string     `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	LikeCount    int64      `db:"like_count" json:"like_count"`
	CommentCount int64      `db:"comment_count" json:"comment_count"`
	RawPayload   string     `db:"raw_payload" json:"raw_payload,omitempty"`
	IsError      bool       `db:"-" json:"is_error"`
}
