package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pixelgram/internal/config"
	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

// AuthService handles JWT issuance and refresh token rotation. A single
// refresh token per user is active at a time; its SHA-256 hash lives on the
// user row so presenting a rotated-out token fails the comparison.
type AuthService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		config:   cfg,
	}
}

// GenerateTokenPair issues an access/refresh pair and persists the hash of
// the refresh token, invalidating any previously issued one.
func (s *AuthService) GenerateTokenPair(ctx context.Context, userID int64) (*model.TokenPair, error) {
	accessToken, err := s.signToken(userID, s.config.AccessTokenSecret, s.config.AccessTokenMaxAge)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.signToken(userID, s.config.RefreshTokenSecret, s.config.RefreshTokenMaxAge)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	hash := s.hashToken(refreshToken)
	if err := s.userRepo.SetRefreshTokenHash(ctx, userID, &hash); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.config.AccessTokenMaxAge,
	}, nil
}

// RefreshTokens validates the presented refresh token against the stored
// hash and rotates a new pair.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshTokenRaw string) (*model.TokenPair, int64, error) {
	userID, err := s.verifyToken(refreshTokenRaw, s.config.RefreshTokenSecret)
	if err != nil {
		return nil, 0, model.ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, 0, model.ErrRefreshTokenInvalid
		}
		return nil, 0, err
	}

	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != s.hashToken(refreshTokenRaw) {
		return nil, 0, model.ErrRefreshTokenMismatch
	}

	pair, err := s.GenerateTokenPair(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return pair, userID, nil
}

// RevokeRefreshToken clears the stored hash so no outstanding refresh token
// can mint new access tokens.
func (s *AuthService) RevokeRefreshToken(ctx context.Context, userID int64) error {
	return s.userRepo.SetRefreshTokenHash(ctx, userID, nil)
}

// VerifyAccessToken parses and validates an access token, returning the
// user id it was issued for.
func (s *AuthService) VerifyAccessToken(tokenString string) (int64, error) {
	return s.verifyToken(tokenString, s.config.AccessTokenSecret)
}

func (s *AuthService) signToken(userID int64, secret string, maxAgeSeconds int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Duration(maxAgeSeconds) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *AuthService) verifyToken(tokenString, secret string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("missing user_id claim")
	}
	return int64(userIDFloat), nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
