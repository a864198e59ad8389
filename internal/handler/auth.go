package handler

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"pixelgram/internal/config"
	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	config      *config.Config
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		config:      cfg,
	}
}

// Register handles sign-up. Accepts JSON, a plain form, or a multipart form
// carrying an optional avatar file.
// POST /users/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, avatarFile, avatarHeader, err := decodeRegisterRequest(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if avatarFile != nil {
		defer avatarFile.Close()
	}

	user, err := h.userService.Register(r.Context(), req, avatarFile, avatarHeader)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMissingFields):
			httputil.WriteBadRequest(w, "All fields are required")
		case errors.Is(err, model.ErrInvalidEmail):
			httputil.WriteBadRequest(w, "Invalid email format")
		case errors.Is(err, model.ErrUserExists):
			httputil.WriteConflict(w, "User with email or username already exists")
		default:
			log.Printf("[AuthHandler] Register: %v", err)
			httputil.WriteInternalError(w, "Failed to register user")
		}
		return
	}

	httputil.WriteData(w, http.StatusCreated, "User registered successfully", user)
}

// decodeRegisterRequest reads the registration fields from JSON, multipart,
// or urlencoded form data. Multipart bodies may carry an optional avatar
// file; the caller closes it.
func decodeRegisterRequest(r *http.Request) (*model.RegisterRequest, multipart.File, *multipart.FileHeader, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req model.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, nil, nil, err
		}
		return &req, nil, nil, nil
	}

	if strings.HasPrefix(contentType, "multipart/form-data") {
		maxFormSize := int64(model.MaxAvatarSizeBytes) + 1024*1024 // allow form overhead
		if err := r.ParseMultipartForm(maxFormSize); err != nil {
			return nil, nil, nil, err
		}
		req := &model.RegisterRequest{
			Username: r.FormValue("username"),
			Email:    r.FormValue("email"),
			FullName: r.FormValue("fullName"),
			Password: r.FormValue("password"),
		}
		file, header, err := r.FormFile("avatar")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return req, nil, nil, nil
			}
			return nil, nil, nil, err
		}
		return req, file, header, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, nil, nil, err
	}
	return &model.RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
	}, nil, nil, nil
}

// Login authenticates by username or email and issues a token pair.
// POST /users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid credentials")
			return
		}
		log.Printf("[AuthHandler] Login: %v", err)
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	tokenPair, err := h.authService.GenerateTokenPair(r.Context(), user.ID)
	if err != nil {
		log.Printf("[AuthHandler] Login tokens: %v", err)
		httputil.WriteInternalError(w, "Failed to generate tokens")
		return
	}

	h.setAuthCookies(w, tokenPair)

	response := model.LoginResponse{
		User:         user,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}
	httputil.WriteData(w, http.StatusOK, "Logged in successfully", response)
}

// Refresh rotates the token pair. The refresh token may arrive in the body
// or in the refresh_token cookie.
// POST /users/refresh-token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.RefreshToken == "" {
		if cookie, err := r.Cookie("refresh_token"); err == nil {
			req.RefreshToken = cookie.Value
		}
	}
	if req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "Refresh token is required")
		return
	}

	tokenPair, _, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRefreshTokenInvalid):
			httputil.WriteUnauthorized(w, "Invalid refresh token")
		case errors.Is(err, model.ErrRefreshTokenMismatch):
			httputil.WriteUnauthorized(w, "Refresh token expired or already used")
		default:
			log.Printf("[AuthHandler] Refresh: %v", err)
			httputil.WriteInternalError(w, "Failed to refresh tokens")
		}
		return
	}

	h.setAuthCookies(w, tokenPair)
	httputil.WriteData(w, http.StatusOK, "Tokens refreshed successfully", tokenPair)
}

// Logout revokes the refresh token and clears auth cookies.
// POST /users/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.authService.RevokeRefreshToken(r.Context(), userID); err != nil {
		log.Printf("[AuthHandler] Logout: %v", err)
		httputil.WriteInternalError(w, "Failed to logout")
		return
	}

	h.clearAuthCookies(w)
	httputil.WriteData(w, http.StatusOK, "Logged out successfully", nil)
}

// CurrentUser returns the authenticated user.
// GET /users/current-user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[AuthHandler] CurrentUser: %v", err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Current user fetched successfully", user)
}

// ChangePassword verifies the old password and sets a new one.
// POST /users/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(r.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, model.ErrMissingFields):
			httputil.WriteBadRequest(w, "Old and new passwords are required")
		case errors.Is(err, model.ErrSamePassword):
			httputil.WriteBadRequest(w, "New password is same as old password")
		case errors.Is(err, model.ErrWrongPassword):
			httputil.WriteBadRequest(w, "Invalid old password")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[AuthHandler] ChangePassword: %v", err)
			httputil.WriteInternalError(w, "Failed to change password")
		}
		return
	}

	httputil.WriteData(w, http.StatusOK, "Password changed successfully", nil)
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, pair *model.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   h.config.AccessTokenMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   h.config.RefreshTokenMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}
