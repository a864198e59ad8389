package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
)

type saveRepository struct {
	db *sqlx.DB
}

func NewSaveRepository(db *sqlx.DB) SaveRepository {
	return &saveRepository{db: db}
}

func (r *saveRepository) Insert(ctx context.Context, postID, userID int64) (bool, error) {
	query := `
		INSERT INTO saves (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to create save: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *saveRepository) DeletePair(ctx context.Context, postID, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM saves WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete save: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// SavedPosts pages the user's saves joined through to the post and its
// owner, ordered by the saved post's creation time descending.
func (r *saveRepository) SavedPosts(ctx context.Context, userID int64, p pagination.Params) ([]model.SavedPostView, int64, error) {
	query := `
		SELECT s.id,
		       p.id         AS post_id,
		       p.image      AS post_image,
		       p.caption    AS post_caption,
		       p.created_at AS post_created_at,
		       u.id         AS owner_id,
		       u.username   AS owner_username,
		       u.full_name  AS owner_full_name,
		       u.avatar     AS owner_avatar
		FROM saves s
		JOIN posts p ON p.id = s.post_id
		JOIN users u ON u.id = p.owner_id
		WHERE s.user_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	type savedRow struct {
		ID            int64     `db:"id"`
		PostID        int64     `db:"post_id"`
		PostImage     string    `db:"post_image"`
		PostCaption   string    `db:"post_caption"`
		PostCreatedAt time.Time `db:"post_created_at"`
		OwnerID       int64     `db:"owner_id"`
		OwnerUsername string    `db:"owner_username"`
		OwnerFullName string    `db:"owner_full_name"`
		OwnerAvatar   string    `db:"owner_avatar"`
	}

	var rows []savedRow
	err := r.db.SelectContext(ctx, &rows, query, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get saved posts: %w", err)
	}

	var total int64
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM saves WHERE user_id = $1`, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count saved posts: %w", err)
	}

	views := make([]model.SavedPostView, len(rows))
	for i, row := range rows {
		views[i] = model.SavedPostView{
			ID: row.ID,
			Post: model.SavedPostDetails{
				ID:        row.PostID,
				Image:     row.PostImage,
				Caption:   row.PostCaption,
				CreatedAt: row.PostCreatedAt,
				Owner: model.UserSummary{
					ID:       row.OwnerID,
					Username: row.OwnerUsername,
					FullName: row.OwnerFullName,
					Avatar:   row.OwnerAvatar,
				},
			},
		}
	}
	return views, total, nil
}
