package model

import (
	"errors"
	"time"
)

// User represents a registered account. Password and refresh-token material
// are never serialized.
type User struct {
	ID               int64     `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	Password         string    `db:"password" json:"-"` // bcrypt hash
	FullName         string    `db:"full_name" json:"fullName"`
	Avatar           string    `db:"avatar" json:"avatar"`
	AvatarKey        *string   `db:"avatar_key" json:"-"`
	Bio              string    `db:"bio" json:"bio"`
	PrivateAccount   bool      `db:"private_account" json:"privateAccount"`
	RefreshTokenHash *string   `db:"refresh_token_hash" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// UserSummary is the public profile slice joined into view models.
type UserSummary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"fullName"`
	Avatar   string `db:"avatar" json:"avatar"`
}

// Profile is the derived profile view: counts are computed at read time and
// Posts is omitted entirely when the target is private and the viewer does
// not follow them. The count fields are always present.
type Profile struct {
	ID               int64         `json:"id"`
	Username         string        `json:"username"`
	FullName         string        `json:"fullName"`
	Avatar           string        `json:"avatar"`
	Bio              string        `json:"bio"`
	PrivateAccount   bool          `json:"privateAccount"`
	FollowersCount   int64         `json:"followersCount"`
	FollowingToCount int64         `json:"followingToCount"`
	PostsCount       int64         `json:"postsCount"`
	IsFollowing      bool          `json:"isFollowing"`
	Posts            []ProfilePost `json:"posts,omitempty"`
}

// ProfilePost is a post as embedded in a profile view.
type ProfilePost struct {
	ID        int64     `db:"id" json:"id"`
	Image     string    `db:"image" json:"image"`
	Caption   string    `db:"caption" json:"caption"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// RegisterRequest carries the registration form fields. An avatar may
// accompany them as a multipart file part.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// LoginRequest accepts username or email plus the password.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse bundles the authenticated user with a fresh token pair.
type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// ChangePasswordRequest is the body for the change-password endpoint.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingFields is returned when a required registration field is empty
	ErrMissingFields = errors.New("all fields are required")

	// ErrUserExists is returned when the username or email is already registered
	ErrUserExists = errors.New("user with email or username already exists")

	// ErrUsernameTaken is returned when renaming to a username that is in use
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidEmail is returned for a malformed email address
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrSamePassword is returned when the new password equals the old one
	ErrSamePassword = errors.New("new password is same as old password")

	// ErrWrongPassword is returned when the provided old password does not match
	ErrWrongPassword = errors.New("invalid old password")
)
