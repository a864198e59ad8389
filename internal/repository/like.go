package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Insert(ctx context.Context, postID, userID int64) (bool, error) {
	query := `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to create like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *likeRepository) DeletePair(ctx context.Context, postID, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// ListForPost pages the likers of a post, newest like first, each with the
// viewer's follow flag toward that liker.
func (r *likeRepository) ListForPost(ctx context.Context, postID, viewerID int64, p pagination.Params) ([]model.LikeEntry, int64, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar,
		       EXISTS(SELECT 1 FROM follows f
		              WHERE f.follower_id = $2 AND f.followee_id = u.id) AS is_following
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.post_id = $1
		ORDER BY l.created_at DESC
		LIMIT $3 OFFSET $4
	`

	type likeRow struct {
		model.UserSummary
		IsFollowing bool `db:"is_following"`
	}

	var rows []likeRow
	err := r.db.SelectContext(ctx, &rows, query, postID, viewerID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get likes: %w", err)
	}

	total, err := r.CountForPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]model.LikeEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.LikeEntry{
			User:        row.UserSummary,
			IsFollowing: row.IsFollowing,
		}
	}
	return entries, total, nil
}
