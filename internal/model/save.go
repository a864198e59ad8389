package model

import "time"

// Save bookmarks a post for a user. One row per (post, user) pair.
type Save struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"savedPost"`
	UserID    int64     `db:"user_id" json:"savedBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SavedPostView is one row of the saved-posts view: the save record joined
// through to the post and its owner's public profile.
type SavedPostView struct {
	ID   int64            `json:"id"`
	Post SavedPostDetails `json:"postDetails"`
}

// SavedPostDetails carries the joined post fields for a saved-posts row.
type SavedPostDetails struct {
	ID        int64       `json:"id"`
	Image     string      `json:"image"`
	Caption   string      `json:"caption"`
	CreatedAt time.Time   `json:"createdAt"`
	Owner     UserSummary `json:"ownerDetails"`
}
