package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pixelgram/internal/model"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password, full_name, avatar, avatar_key, bio,
       private_account, refresh_token_hash, created_at, updated_at`

// Create inserts a new user. A duplicate username or email surfaces as
// model.ErrUserExists.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, email, password, full_name, avatar, avatar_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, private_account, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		u.Username,
		u.Email,
		u.Password,
		u.FullName,
		u.Avatar,
		u.AvatarKey,
	)

	err := row.Scan(&u.ID, &u.PrivateAccount, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return model.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// GetByUsernameOrEmail resolves the login identifier; either argument may
// be empty.
func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (username = $1 AND $1 <> '') OR (email = $2 AND $2 <> '')
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username or email: %w", err)
	}

	return &u, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username, email)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// UpdateAvatar swaps the avatar and returns the previous storage key so the
// caller can schedule deletion of the replaced object.
func (r *userRepository) UpdateAvatar(ctx context.Context, id int64, url string, key *string) (*model.User, *string, error) {
	var oldKey *string
	err := r.db.GetContext(ctx, &oldKey, `SELECT avatar_key FROM users WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, model.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to read current avatar: %w", err)
	}

	u, err := r.updateReturning(ctx, id, `avatar = $2, avatar_key = $3`, url, key)
	if err != nil {
		return nil, nil, err
	}
	return u, oldKey, nil
}

func (r *userRepository) UpdateBio(ctx context.Context, id int64, bio string) (*model.User, error) {
	return r.updateReturning(ctx, id, `bio = $2`, bio)
}

func (r *userRepository) UpdateFullName(ctx context.Context, id int64, fullName string) (*model.User, error) {
	return r.updateReturning(ctx, id, `full_name = $2`, fullName)
}

func (r *userRepository) UpdateUsername(ctx context.Context, id int64, username string) (*model.User, error) {
	u, err := r.updateReturning(ctx, id, `username = $2`, username)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, model.ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) TogglePrivate(ctx context.Context, id int64) (*model.User, error) {
	query := `
		UPDATE users SET private_account = NOT private_account, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to toggle private account: %w", err)
	}

	return &u, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return checkOneRow(result, model.ErrUserNotFound)
}

// SetRefreshTokenHash stores the hash of the current refresh token; nil
// clears it (logout).
func (r *userRepository) SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	return checkOneRow(result, model.ErrUserNotFound)
}

// GetProfile assembles the profile view in a single aggregation query:
// follower/following/post counts plus the viewer's follow flag, all
// computed at read time. The embedded posts page is fetched separately by
// the service once visibility is decided.
func (r *userRepository) GetProfile(ctx context.Context, username string, viewerID int64) (*model.Profile, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.bio, u.private_account,
		       (SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.id) AS followers_count,
		       (SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id) AS following_to_count,
		       (SELECT COUNT(*) FROM posts p WHERE p.owner_id = u.id)      AS posts_count,
		       EXISTS(SELECT 1 FROM follows f
		              WHERE f.follower_id = $2 AND f.followee_id = u.id)   AS is_following
		FROM users u
		WHERE u.username = $1
	`

	var row struct {
		ID               int64  `db:"id"`
		Username         string `db:"username"`
		FullName         string `db:"full_name"`
		Avatar           string `db:"avatar"`
		Bio              string `db:"bio"`
		PrivateAccount   bool   `db:"private_account"`
		FollowersCount   int64  `db:"followers_count"`
		FollowingToCount int64  `db:"following_to_count"`
		PostsCount       int64  `db:"posts_count"`
		IsFollowing      bool   `db:"is_following"`
	}

	err := r.db.GetContext(ctx, &row, query, username, viewerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &model.Profile{
		ID:               row.ID,
		Username:         row.Username,
		FullName:         row.FullName,
		Avatar:           row.Avatar,
		Bio:              row.Bio,
		PrivateAccount:   row.PrivateAccount,
		FollowersCount:   row.FollowersCount,
		FollowingToCount: row.FollowingToCount,
		PostsCount:       row.PostsCount,
		IsFollowing:      row.IsFollowing,
	}, nil
}

// updateReturning applies a single-user update and returns the fresh row.
func (r *userRepository) updateReturning(ctx context.Context, id int64, setClause string, args ...interface{}) (*model.User, error) {
	query := `UPDATE users SET ` + setClause + `, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns

	all := append([]interface{}{id}, args...)

	var u model.User
	err := r.db.GetContext(ctx, &u, query, all...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &u, nil
}

// checkOneRow converts a zero-row update into the given sentinel.
func checkOneRow(result sql.Result, missing error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return missing
	}
	return nil
}
