package model

import (
	"errors"
	"time"
)

// Comment is a comment on a post. Text is required and non-empty.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"commentedPost"`
	UserID    int64     `db:"user_id" json:"commentedBy"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CommentView is a comment joined with its author's public profile.
type CommentView struct {
	ID        int64       `json:"id"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    UserSummary `json:"commentedByDetails"`
}

// CreateCommentRequest is the body for adding a comment.
type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

// Comment errors
var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the owner of this comment")
	ErrCommentRequired = errors.New("comment is required")
)
