package handler

import (
	"errors"
	"log"
	"net/http"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// LikeHandler groups the like toggle and likers listing. Its routes sit
// behind the post access middleware, so the post is read from the context.
type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Toggle likes the post, or removes an existing like.
// POST /posts/{id}/toggle-like, POST /likes/p/{id}
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	liked, err := h.likeService.Toggle(r.Context(), post.ID, userID)
	if err != nil {
		log.Printf("[LikeHandler] Toggle: %v", err)
		httputil.WriteInternalError(w, "Failed to toggle like")
		return
	}

	message := "Post unliked successfully"
	if liked {
		message = "Post liked successfully"
	}
	httputil.WriteData(w, http.StatusOK, message, map[string]bool{"isLiked": liked})
}

// List pages the users who liked the post. A post nobody has liked returns
// not found rather than an empty page.
// GET /likes/p/{id}
func (h *LikeHandler) List(w http.ResponseWriter, r *http.Request) {
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

	p, err := pagination.ParseParams(r.URL.Query(), pagination.DefaultLikesLimit)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	page, total, err := h.likeService.LikesOnPost(r.Context(), post.ID, userID, p)
	if err != nil {
		if errors.Is(err, model.ErrNoLikes) {
			httputil.WriteNotFound(w, "No likes on this post")
			return
		}
		log.Printf("[LikeHandler] List: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch likes")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Likes fetched successfully", map[string]interface{}{
		"totalLikes": total,
		"likes":      page.Docs,
	})
}
