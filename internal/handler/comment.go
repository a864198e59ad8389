package handler

import (
	"encoding/json"
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

// CommentHandler groups comment endpoints. Add and List sit behind the
// post access middleware; Delete addresses the comment directly.
type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add creates a comment on the post.
// POST /comments/p/{id}
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Add(r.Context(), post.ID, userID, req.Comment)
	if err != nil {
		if errors.Is(err, model.ErrCommentRequired) {
			httputil.WriteBadRequest(w, "Comment is required")
			return
		}
		log.Printf("[CommentHandler] Add: %v", err)
		httputil.WriteInternalError(w, "Failed to add comment")
		return
	}

	httputil.WriteData(w, http.StatusCreated, "Comment added successfully", comment)
}

// List pages the post's comments, newest first.
// GET /comments/p/{id}
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	post, ok := middleware.GetPostFromContext(r.Context())
	if !ok {
		httputil.WriteInternalError(w, "Post not resolved")
		return
	}

	p, err := pagination.ParseParams(r.URL.Query(), pagination.DefaultLimit)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	page, err := h.commentService.List(r.Context(), post.ID, p)
	if err != nil {
		log.Printf("[CommentHandler] List: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch comments")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Comments fetched successfully", page)
}

// Delete removes the requester's own comment.
// DELETE /comments/c/{commentId}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment id")
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You cannot delete this comment")
		default:
			log.Printf("[CommentHandler] Delete: %v", err)
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteData(w, http.StatusOK, "Comment deleted successfully", nil)
}
