package model

import "errors"

// TokenPair is an access token plus the refresh token that can mint its
// successor. ExpiresIn is the access-token lifetime in seconds.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// RefreshRequest is the body for the refresh-token endpoint; the token may
// alternatively arrive in a cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

var (
	// ErrRefreshTokenInvalid is returned when the refresh token does not verify
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")

	// ErrRefreshTokenMismatch is returned when a verified refresh token no
	// longer matches the one stored for the user (rotated or revoked)
	ErrRefreshTokenMismatch = errors.New("refresh token expired or already used")
)
