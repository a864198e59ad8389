package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
)

type stubPostRepo struct {
	posts map[int64]*model.PostWithOwner
}

func (s *stubPostRepo) GetWithOwner(ctx context.Context, id int64) (*model.PostWithOwner, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return post, nil
}

// The guard only calls GetWithOwner; the rest satisfy the interface.
func (s *stubPostRepo) Create(context.Context, *model.Post) error { return nil }
func (s *stubPostRepo) GetByID(context.Context, int64) (*model.Post, error) {
	return nil, model.ErrPostNotFound
}
func (s *stubPostRepo) GetDetail(context.Context, int64, int64) (*model.PostView, error) {
	return nil, model.ErrPostNotFound
}
func (s *stubPostRepo) UpdateCaption(context.Context, int64, string) (*model.Post, error) {
	return nil, model.ErrPostNotFound
}
func (s *stubPostRepo) DeleteCascade(context.Context, int64) error { return nil }
func (s *stubPostRepo) Feed(context.Context, int64, pagination.Params) ([]model.PostView, int64, error) {
	return nil, 0, nil
}
func (s *stubPostRepo) GlobalFeed(context.Context, int64, pagination.Params) ([]model.PostView, int64, error) {
	return nil, 0, nil
}
func (s *stubPostRepo) PostsByOwner(context.Context, int64, pagination.Params) ([]model.ProfilePost, error) {
	return nil, nil
}

type stubFollowRepo struct {
	follows map[[2]int64]bool
}

func (s *stubFollowRepo) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return s.follows[[2]int64{followerID, followeeID}], nil
}

func (s *stubFollowRepo) Insert(context.Context, int64, int64) (bool, error)     { return false, nil }
func (s *stubFollowRepo) DeletePair(context.Context, int64, int64) (bool, error) { return false, nil }
func (s *stubFollowRepo) Followers(context.Context, int64, int64, pagination.Params) ([]model.FollowListEntry, error) {
	return nil, nil
}
func (s *stubFollowRepo) Followings(context.Context, int64, int64, pagination.Params) ([]model.FollowListEntry, error) {
	return nil, nil
}

func newGuardedRouter(postRepo *stubPostRepo, followRepo *stubFollowRepo, viewerID int64) chi.Router {
	r := chi.NewRouter()

	// Stand-in for the auth middleware.
	withUser := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), UserIDKey, viewerID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}

	r.With(withUser, PostAccess(postRepo, followRepo)).Get("/posts/{id}", func(w http.ResponseWriter, req *http.Request) {
		post, ok := GetPostFromContext(req.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]int64{"id": post.ID})
	})

	return r
}

func TestPostAccess(t *testing.T) {
	publicPost := &model.PostWithOwner{
		Post:  model.Post{ID: 1, OwnerID: 10},
		Owner: model.UserSummary{ID: 10, Username: "pub"},
	}
	privatePost := &model.PostWithOwner{
		Post:         model.Post{ID: 2, OwnerID: 20},
		Owner:        model.UserSummary{ID: 20, Username: "priv"},
		OwnerPrivate: true,
	}

	postRepo := &stubPostRepo{posts: map[int64]*model.PostWithOwner{1: publicPost, 2: privatePost}}

	tests := []struct {
		name       string
		path       string
		viewerID   int64
		follows    map[[2]int64]bool
		wantStatus int
	}{
		{
			name:       "malformed id",
			path:       "/posts/not-a-number",
			viewerID:   99,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing post",
			path:       "/posts/404",
			viewerID:   99,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "public post allowed",
			path:       "/posts/1",
			viewerID:   99,
			wantStatus: http.StatusOK,
		},
		{
			name:       "private post denied to stranger",
			path:       "/posts/2",
			viewerID:   99,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "private post allowed to follower",
			path:       "/posts/2",
			viewerID:   99,
			follows:    map[[2]int64]bool{{99, 20}: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "private post allowed to owner",
			path:       "/posts/2",
			viewerID:   20,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			followRepo := &stubFollowRepo{follows: tt.follows}
			router := newGuardedRouter(postRepo, followRepo, tt.viewerID)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestPostAccess_AttachesPost(t *testing.T) {
	post := &model.PostWithOwner{
		Post:  model.Post{ID: 7, OwnerID: 10},
		Owner: model.UserSummary{ID: 10, Username: "pub"},
	}
	postRepo := &stubPostRepo{posts: map[int64]*model.PostWithOwner{7: post}}
	router := newGuardedRouter(postRepo, &stubFollowRepo{}, 99)

	req := httptest.NewRequest(http.MethodGet, "/posts/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id"] != 7 {
		t.Errorf("handler saw post %d, want 7", body["id"])
	}
}
