package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, c.PostID, c.UserID, c.Comment).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	query := `
		SELECT id, post_id, user_id, comment, created_at
		FROM comments
		WHERE id = $1
	`

	var c model.Comment
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &c, nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return checkOneRow(result, model.ErrCommentNotFound)
}

// ListForPost pages a post's comments joined with author profiles, newest
// first, plus the total for the page envelope.
func (r *commentRepository) ListForPost(ctx context.Context, postID int64, p pagination.Params) ([]model.CommentView, int64, error) {
	query := `
		SELECT c.id, c.comment, c.created_at,
		       u.id        AS author_id,
		       u.username  AS author_username,
		       u.full_name AS author_full_name,
		       u.avatar    AS author_avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`

	type commentRow struct {
		ID             int64     `db:"id"`
		Comment        string    `db:"comment"`
		CreatedAt      time.Time `db:"created_at"`
		AuthorID       int64     `db:"author_id"`
		AuthorUsername string    `db:"author_username"`
		AuthorFullName string    `db:"author_full_name"`
		AuthorAvatar   string    `db:"author_avatar"`
	}

	var rows []commentRow
	err := r.db.SelectContext(ctx, &rows, query, postID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get comments: %w", err)
	}

	var total int64
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	views := make([]model.CommentView, len(rows))
	for i, row := range rows {
		views[i] = model.CommentView{
			ID:        row.ID,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
			Author: model.UserSummary{
				ID:       row.AuthorID,
				Username: row.AuthorUsername,
				FullName: row.AuthorFullName,
				Avatar:   row.AuthorAvatar,
			},
		}
	}
	return views, total, nil
}
