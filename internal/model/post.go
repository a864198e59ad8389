package model

import (
	"errors"
	"time"
)

// Post is the stored entity. Image and caption are required at creation.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	Image     string    `db:"image" json:"image"`
	ImageKey  *string   `db:"image_key" json:"-"`
	Caption   string    `db:"caption" json:"caption"`
	OwnerID   int64     `db:"owner_id" json:"owner"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// PostView is the derived post document used by the feed, the global list
// and the detail endpoint. Counts and flags are computed per request for
// the viewing user, never persisted.
type PostView struct {
	ID            int64       `json:"id"`
	Image         string      `json:"image"`
	Caption       string      `json:"caption"`
	CreatedAt     time.Time   `json:"createdAt"`
	LikesCount    int64       `json:"likesCount"`
	CommentsCount int64       `json:"commentsCount"`
	IsLiked       bool        `json:"isLiked"`
	IsSaved       bool        `json:"isSaved"`
	Owner         UserSummary `json:"ownerDetails"`
}

// PostWithOwner is a post resolved together with its owner's public fields
// and privacy flag. The access guard attaches it to the request context so
// handlers do not repeat the lookup.
type PostWithOwner struct {
	Post
	Owner        UserSummary `json:"ownerDetails"`
	OwnerPrivate bool        `json:"-"`
}

// UpdatePostRequest is the body for a caption update.
type UpdatePostRequest struct {
	Caption string `json:"caption"`
}

// Post errors
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostOwner    = errors.New("not the owner of this post")
	ErrImageRequired   = errors.New("image is required for a post")
	ErrCaptionRequired = errors.New("caption is required for a post")
)
