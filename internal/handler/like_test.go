package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

type stubLikeRepo struct {
	entries []model.LikeEntry
	total   int64
}

func (s *stubLikeRepo) Insert(ctx context.Context, postID, userID int64) (bool, error) {
	return false, nil
}

func (s *stubLikeRepo) DeletePair(ctx context.Context, postID, userID int64) (bool, error) {
	return false, nil
}

func (s *stubLikeRepo) CountForPost(ctx context.Context, postID int64) (int64, error) {
	return s.total, nil
}

func (s *stubLikeRepo) ListForPost(ctx context.Context, postID, viewerID int64, p pagination.Params) ([]model.LikeEntry, int64, error) {
	return s.entries, s.total, nil
}

// The likers payload is a flat array under "likes" next to a single
// "totalLikes", not a nested page envelope repeating the count.
func TestLikeHandlerList_ResponseShape(t *testing.T) {
	repo := &stubLikeRepo{
		entries: []model.LikeEntry{
			{User: model.UserSummary{ID: 2, Username: "bob"}, IsFollowing: true},
		},
		total: 1,
	}
	h := NewLikeHandler(service.NewLikeService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/likes/p/7", nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, int64(1))
	ctx = context.WithValue(ctx, middleware.PostKey, &model.PostWithOwner{Post: model.Post{ID: 7}})
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			TotalLikes int64             `json:"totalLikes"`
			Likes      []json.RawMessage `json:"likes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v: %s", err, rec.Body.String())
	}

	if envelope.Data.TotalLikes != 1 {
		t.Errorf("totalLikes = %d, want 1", envelope.Data.TotalLikes)
	}
	if len(envelope.Data.Likes) != 1 {
		t.Fatalf("likes entries = %d, want 1", len(envelope.Data.Likes))
	}

	var entry struct {
		UserDetails struct {
			Username string `json:"username"`
		} `json:"userDetails"`
		IsFollowing bool `json:"isFollowing"`
	}
	if err := json.Unmarshal(envelope.Data.Likes[0], &entry); err != nil {
		t.Fatalf("failed to decode like entry: %v", err)
	}
	if entry.UserDetails.Username != "bob" || !entry.IsFollowing {
		t.Errorf("entry = %+v, want bob with isFollowing=true", entry)
	}
}
