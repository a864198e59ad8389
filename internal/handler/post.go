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
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// PostHandler groups post CRUD endpoints.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create makes a new post from a multipart form with an image and caption.
// POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxPostImageSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	caption := r.FormValue("caption")

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteBadRequest(w, "Image file is required")
		return
	}
	defer file.Close()

	post, err := h.postService.Create(r.Context(), userID, caption, file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCaptionRequired):
			httputil.WriteBadRequest(w, "Caption is required")
		case errors.Is(err, model.ErrImageRequired):
			httputil.WriteBadRequest(w, "Image file is required")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Image exceeds 10MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
		default:
			log.Printf("[PostHandler] Create: %v", err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteData(w, http.StatusCreated, "Post created successfully", post)
}

// GetDetail returns the aggregated view of one post. Access was already
// checked by the route middleware.
// GET /posts/{id}
func (h *PostHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
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

	view, err := h.postService.GetDetail(r.Context(), post.ID, userID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[PostHandler] GetDetail: %v", err)
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Post fetched successfully", view)
}

// UpdateCaption changes a post's caption; owner only.
// PATCH /posts/{id}
func (h *PostHandler) UpdateCaption(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.UpdateCaption(r.Context(), postID, userID, req.Caption)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCaptionRequired):
			httputil.WriteBadRequest(w, "Caption is required")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You cannot edit this post")
		default:
			log.Printf("[PostHandler] UpdateCaption: %v", err)
			httputil.WriteInternalError(w, "Failed to update post")
		}
		return
	}

	httputil.WriteData(w, http.StatusOK, "Post updated successfully", post)
}

// Delete removes a post with its likes, comments and saves; owner only.
// DELETE /posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), postID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You cannot delete this post")
		default:
			log.Printf("[PostHandler] Delete: %v", err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	httputil.WriteData(w, http.StatusOK, "Post deleted successfully", nil)
}
