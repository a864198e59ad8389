package handler

import (
	"log"
	"net/http"

	"pixelgram/internal/httputil"
	"pixelgram/internal/pagination"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// SaveHandler groups the save toggle and saved-posts listing.
type SaveHandler struct {
	saveService *service.SaveService
}

func NewSaveHandler(saveService *service.SaveService) *SaveHandler {
	return &SaveHandler{saveService: saveService}
}

// Toggle saves the post, or removes an existing save. Sits behind the post
// access middleware.
// POST /save/p/{id}
func (h *SaveHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	post, ok := middleware.GetPostFromContext(r.Context())
	if !ok {
		httputil.WriteInternalError(w, "Post not resolved")
		return
	}

	saved, err := h.saveService.Toggle(r.Context(), post.ID, userID)
	if err != nil {
		log.Printf("[SaveHandler] Toggle: %v", err)
		httputil.WriteInternalError(w, "Failed to toggle save")
		return
	}

	message := "Post unsaved successfully"
	if saved {
		message = "Post saved successfully"
	}
	httputil.WriteData(w, http.StatusOK, message, map[string]bool{"isSaved": saved})
}

// SavedPosts pages the viewer's saved posts.
// GET /save/saved
func (h *SaveHandler) SavedPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	p, err := pagination.ParseParams(r.URL.Query(), pagination.DefaultLimit)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	page, err := h.saveService.SavedPosts(r.Context(), userID, p)
	if err != nil {
		log.Printf("[SaveHandler] SavedPosts: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch saved posts")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Saved posts fetched successfully", page)
}
