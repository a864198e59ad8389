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

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postViewColumns computes every derived field of a post view in one
// round trip: owner public fields joined, counts as correlated subqueries,
// viewer flags as EXISTS checks against the relation tables. $1 is always
// the viewer id.
const postViewColumns = `
	p.id, p.image, p.caption, p.created_at,
	u.id        AS owner_id,
	u.username  AS owner_username,
	u.full_name AS owner_full_name,
	u.avatar    AS owner_avatar,
	(SELECT COUNT(*) FROM likes l    WHERE l.post_id = p.id) AS likes_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
	EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1) AS is_liked,
	EXISTS(SELECT 1 FROM saves s WHERE s.post_id = p.id AND s.user_id = $1) AS is_saved`

type postViewRow struct {
	ID            int64     `db:"id"`
	Image         string    `db:"image"`
	Caption       string    `db:"caption"`
	CreatedAt     time.Time `db:"created_at"`
	OwnerID       int64     `db:"owner_id"`
	OwnerUsername string    `db:"owner_username"`
	OwnerFullName string    `db:"owner_full_name"`
	OwnerAvatar   string    `db:"owner_avatar"`
	LikesCount    int64     `db:"likes_count"`
	CommentsCount int64     `db:"comments_count"`
	IsLiked       bool      `db:"is_liked"`
	IsSaved       bool      `db:"is_saved"`
}

func (row postViewRow) toView() model.PostView {
	return model.PostView{
		ID:            row.ID,
		Image:         row.Image,
		Caption:       row.Caption,
		CreatedAt:     row.CreatedAt,
		LikesCount:    row.LikesCount,
		CommentsCount: row.CommentsCount,
		IsLiked:       row.IsLiked,
		IsSaved:       row.IsSaved,
		Owner: model.UserSummary{
			ID:       row.OwnerID,
			Username: row.OwnerUsername,
			FullName: row.OwnerFullName,
			Avatar:   row.OwnerAvatar,
		},
	}
}

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (image, image_key, caption, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, p.Image, p.ImageKey, p.Caption, p.OwnerID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT id, image, image_key, caption, owner_id, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	var p model.Post
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &p, nil
}

func (r *postRepository) GetWithOwner(ctx context.Context, id int64) (*model.PostWithOwner, error) {
	query := `
		SELECT p.id, p.image, p.image_key, p.caption, p.owner_id, p.created_at, p.updated_at,
		       u.username        AS owner_username,
		       u.full_name       AS owner_full_name,
		       u.avatar          AS owner_avatar,
		       u.private_account AS owner_private
		FROM posts p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`

	var row struct {
		model.Post
		OwnerUsername string `db:"owner_username"`
		OwnerFullName string `db:"owner_full_name"`
		OwnerAvatar   string `db:"owner_avatar"`
		OwnerPrivate  bool   `db:"owner_private"`
	}

	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post with owner: %w", err)
	}

	return &model.PostWithOwner{
		Post: row.Post,
		Owner: model.UserSummary{
			ID:       row.Post.OwnerID,
			Username: row.OwnerUsername,
			FullName: row.OwnerFullName,
			Avatar:   row.OwnerAvatar,
		},
		OwnerPrivate: row.OwnerPrivate,
	}, nil
}

func (r *postRepository) GetDetail(ctx context.Context, postID, viewerID int64) (*model.PostView, error) {
	query := `
		SELECT` + postViewColumns + `
		FROM posts p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $2
	`

	var row postViewRow
	err := r.db.GetContext(ctx, &row, query, viewerID, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post detail: %w", err)
	}

	view := row.toView()
	return &view, nil
}

func (r *postRepository) UpdateCaption(ctx context.Context, postID int64, caption string) (*model.Post, error) {
	query := `
		UPDATE posts SET caption = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, image, image_key, caption, owner_id, created_at, updated_at
	`

	var p model.Post
	err := r.db.GetContext(ctx, &p, query, postID, caption)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update caption: %w", err)
	}

	return &p, nil
}

// DeleteCascade removes the post and every dependent like, comment and
// save in a single transaction, so a crash never leaves orphaned rows.
func (r *postRepository) DeleteCascade(ctx context.Context, postID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM likes WHERE post_id = $1`,
		`DELETE FROM comments WHERE post_id = $1`,
		`DELETE FROM saves WHERE post_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, postID); err != nil {
			return fmt.Errorf("failed to delete dependents: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if err := checkOneRow(result, model.ErrPostNotFound); err != nil {
		return err
	}

	return tx.Commit()
}

// Feed selects posts whose owner the viewer follows, newest first.
func (r *postRepository) Feed(ctx context.Context, viewerID int64, p pagination.Params) ([]model.PostView, int64, error) {
	const fromFollowed = `
		FROM posts p
		JOIN users u ON u.id = p.owner_id
		WHERE EXISTS(SELECT 1 FROM follows f
		             WHERE f.follower_id = $1 AND f.followee_id = p.owner_id)`

	query := `SELECT` + postViewColumns + fromFollowed + `
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	var rows []postViewRow
	err := r.db.SelectContext(ctx, &rows, query, viewerID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get feed: %w", err)
	}

	var total int64
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+fromFollowed, viewerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count feed: %w", err)
	}

	views := make([]model.PostView, len(rows))
	for i, row := range rows {
		views[i] = row.toView()
	}
	return views, total, nil
}

// GlobalFeed selects every post the viewer may see: public owner, an owner
// the viewer follows, or the viewer's own. Ordered by update time, which
// intentionally differs from the followed feed's creation-time ordering.
func (r *postRepository) GlobalFeed(ctx context.Context, viewerID int64, p pagination.Params) ([]model.PostView, int64, error) {
	const fromVisible = `
		FROM posts p
		JOIN users u ON u.id = p.owner_id
		WHERE u.private_account = FALSE
		   OR p.owner_id = $1
		   OR EXISTS(SELECT 1 FROM follows f
		             WHERE f.follower_id = $1 AND f.followee_id = p.owner_id)`

	query := `SELECT` + postViewColumns + fromVisible + `
		ORDER BY p.updated_at DESC
		LIMIT $2 OFFSET $3
	`

	var rows []postViewRow
	err := r.db.SelectContext(ctx, &rows, query, viewerID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get posts: %w", err)
	}

	var total int64
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+fromVisible, viewerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	views := make([]model.PostView, len(rows))
	for i, row := range rows {
		views[i] = row.toView()
	}
	return views, total, nil
}

func (r *postRepository) PostsByOwner(ctx context.Context, ownerID int64, p pagination.Params) ([]model.ProfilePost, error) {
	query := `
		SELECT id, image, caption, created_at
		FROM posts
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var posts []model.ProfilePost
	err := r.db.SelectContext(ctx, &posts, query, ownerID, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by owner: %w", err)
	}

	return posts, nil
}
