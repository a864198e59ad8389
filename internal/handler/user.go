package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// UserHandler groups profile and account-mutation endpoints.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the counted profile view for a username, with a page
// of posts when the viewer may see them.
// GET /users/u/{username}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	p, err := pagination.ParseParams(r.URL.Query(), pagination.DefaultLimit)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), username, viewerID, p)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[UserHandler] GetProfile: %v", err)
		httputil.WriteInternalError(w, "Failed to get profile")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Profile fetched successfully", profile)
}

// UpdateAvatar replaces the avatar from a multipart upload.
// PATCH /users/avatar
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxAvatarSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "Avatar file is required")
		return
	}
	defer file.Close()

	user, err := h.userService.UpdateAvatar(r.Context(), userID, file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Avatar exceeds 5MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
		default:
			log.Printf("[UserHandler] UpdateAvatar: %v", err)
			httputil.WriteInternalError(w, "Failed to update avatar")
		}
		return
	}

	httputil.WriteData(w, http.StatusOK, "Avatar updated successfully", user)
}

// UpdateBio sets the bio text.
// PATCH /users/bio
func (h *UserHandler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req struct {
		Bio string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateBio(r.Context(), userID, req.Bio)
	if err != nil {
		log.Printf("[UserHandler] UpdateBio: %v", err)
		httputil.WriteInternalError(w, "Failed to update bio")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Bio updated successfully", user)
}

// UpdateFullName sets the display name.
// PATCH /users/fullName
func (h *UserHandler) UpdateFullName(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req struct {
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateFullName(r.Context(), userID, req.FullName)
	if err != nil {
		if errors.Is(err, model.ErrMissingFields) {
			httputil.WriteBadRequest(w, "Full name is required")
			return
		}
		log.Printf("[UserHandler] UpdateFullName: %v", err)
		httputil.WriteInternalError(w, "Failed to update full name")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Full name updated successfully", user)
}

// UpdateUsername renames the account.
// PATCH /users/username
func (h *UserHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUsername(r.Context(), userID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMissingFields):
			httputil.WriteBadRequest(w, "Username is required")
		case errors.Is(err, model.ErrUsernameTaken):
			httputil.WriteConflict(w, "Username already taken")
		default:
			log.Printf("[UserHandler] UpdateUsername: %v", err)
			httputil.WriteInternalError(w, "Failed to update username")
		}
		return
	}

	httputil.WriteData(w, http.StatusOK, "Username updated successfully", user)
}

// TogglePrivate flips the account between public and private.
// PATCH /users/privateAccount
func (h *UserHandler) TogglePrivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.userService.TogglePrivate(r.Context(), userID)
	if err != nil {
		log.Printf("[UserHandler] TogglePrivate: %v", err)
		httputil.WriteInternalError(w, "Failed to toggle private account")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Account privacy updated successfully", user)
}
