package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// FollowHandler groups follow endpoints.
type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Toggle follows or unfollows the target user.
// POST /followings/follow/{id}
func (h *FollowHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	followeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user id")
		return
	}

	following, err := h.followService.Toggle(r.Context(), userID, followeeID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "You cannot follow yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[FollowHandler] Toggle: %v", err)
			httputil.WriteInternalError(w, "Failed to toggle follow")
		}
		return
	}

	message := "Unfollowed successfully"
	if following {
		message = "Followed successfully"
	}
	httputil.WriteData(w, http.StatusOK, message, map[string]bool{"isFollowing": following})
}

// Followers lists who follows the named user, as a plain slice.
// GET /followers/{username}
func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.followService.Followers, "Followers fetched successfully")
}

// Followings lists who the named user follows, as a plain slice.
// GET /followings/{username}
func (h *FollowHandler) Followings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.followService.Followings, "Followings fetched successfully")
}

func (h *FollowHandler) list(w http.ResponseWriter, r *http.Request,
	fetch func(ctx context.Context, username string, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error),
	message string,
) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	username := chi.URLParam(r, "username")

	p, err := pagination.ParseParams(r.URL.Query(), pagination.DefaultLimit)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	entries, err := fetch(r.Context(), username, userID, p)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[FollowHandler] list: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch list")
		return
	}

	httputil.WriteData(w, http.StatusOK, message, entries)
}
