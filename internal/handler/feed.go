package handler

import (
	"log"
	"net/http"

	"pixelgram/internal/httputil"
	"pixelgram/internal/pagination"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// FeedHandler serves the two paged timelines.
type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Feed pages posts from accounts the viewer follows.
// GET /users/feed
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.feedService.Feed(r.Context(), userID, p)
	if err != nil {
		log.Printf("[FeedHandler] Feed: %v", err)
		httputil.WriteInternalError(w, "Failed to get feed")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Feed fetched successfully", page)
}

// GlobalFeed pages every post visible to the viewer.
// GET /posts
func (h *FeedHandler) GlobalFeed(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.feedService.GlobalFeed(r.Context(), userID, p)
	if err != nil {
		log.Printf("[FeedHandler] GlobalFeed: %v", err)
		httputil.WriteInternalError(w, "Failed to get posts")
		return
	}

	httputil.WriteData(w, http.StatusOK, "Posts fetched successfully", page)
}
