package model

import (
	"errors"
	"time"
)

// Follow is one edge of the follower graph. At most one row exists per
// (follower, followee) pair, enforced by a unique index.
type Follow struct {
	ID         int64     `db:"id" json:"id"`
	FollowerID int64     `db:"follower_id" json:"follower"`
	FolloweeID int64     `db:"followee_id" json:"followedTo"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// FollowListEntry is one row of a followers or followings list. IsFollowing
// reports whether the requesting viewer follows this row's user, not
// whether the list's target does.
type FollowListEntry struct {
	User        UserSummary `json:"user"`
	IsFollowing bool        `json:"isFollowing"`
}

var (
	// ErrCannotFollowSelf is returned when a user tries to follow themself
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
