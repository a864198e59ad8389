package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Insert adds the follow edge if absent. ON CONFLICT DO NOTHING makes the
// toggle's "already exists" branch a zero-row result instead of a race.
func (r *followRepository) Insert(ctx context.Context, followerID, followeeID int64) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *followRepository) DeletePair(ctx context.Context, followerID, followeeID int64) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

// followListRow carries one list entry plus the viewer's follow flag.
type followListRow struct {
	model.UserSummary
	IsFollowing bool `db:"is_following"`
}

func toFollowEntries(rows []followListRow) []model.FollowListEntry {
	entries := make([]model.FollowListEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.FollowListEntry{
			User:        row.UserSummary,
			IsFollowing: row.IsFollowing,
		}
	}
	return entries
}

// Followers lists the users following userID, each annotated with whether
// the viewer follows them. Plain skip/limit slice, no total count.
func (r *followRepository) Followers(ctx context.Context, userID, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar,
		       EXISTS(SELECT 1 FROM follows vf
		              WHERE vf.follower_id = $2 AND vf.followee_id = u.id) AS is_following
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC
		LIMIT $3 OFFSET $4
	`

	var rows []followListRow
	err := r.db.SelectContext(ctx, &rows, query, userID, viewerID, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}

	return toFollowEntries(rows), nil
}

// Followings lists the users that userID follows, annotated the same way.
func (r *followRepository) Followings(ctx context.Context, userID, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar,
		       EXISTS(SELECT 1 FROM follows vf
		              WHERE vf.follower_id = $2 AND vf.followee_id = u.id) AS is_following
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $3 OFFSET $4
	`

	var rows []followListRow
	err := r.db.SelectContext(ctx, &rows, query, userID, viewerID, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get followings: %w", err)
	}

	return toFollowEntries(rows), nil
}
