package model

import (
	"errors"
	"time"
)

// Like marks a post as liked by a user. One row per (post, user) pair.
type Like struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"likedPost"`
	UserID    int64     `db:"user_id" json:"likedBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// LikeEntry is one row of the likes-on-post view: the liker's public
// profile plus whether the viewer follows them.
type LikeEntry struct {
	User        UserSummary `json:"userDetails"`
	IsFollowing bool        `json:"isFollowing"`
}

var (
	// ErrNoLikes is returned when a post has no likes at all. The listing
	// endpoint reports this as NotFound rather than an empty page.
	ErrNoLikes = errors.New("no likes found for this post")
)
