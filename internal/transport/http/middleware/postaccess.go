package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

const (
	// PostKey is the context key for the post resolved by PostAccess
	PostKey contextKey = "post"
)

// PostAccess guards routes addressing a single post by its {id} URL param.
// The post must exist, and when its owner is private the viewer must be the
// owner or a follower. The resolved post is attached to the context so
// handlers don't fetch it twice.
func PostAccess(postRepo repository.PostRepository, followRepo repository.FollowRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewerID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				httputil.WriteBadRequest(w, "Invalid post id")
				return
			}

			post, err := postRepo.GetWithOwner(r.Context(), postID)
			if err != nil {
				if errors.Is(err, model.ErrPostNotFound) {
					httputil.WriteNotFound(w, "Post not found")
					return
				}
				httputil.WriteInternalError(w, "Failed to load post")
				return
			}

			if post.OwnerPrivate && post.OwnerID != viewerID {
				follows, err := followRepo.Exists(r.Context(), viewerID, post.OwnerID)
				if err != nil {
					httputil.WriteInternalError(w, "Failed to check access")
					return
				}
				if !follows {
					httputil.WriteForbidden(w, "You cannot view this post")
					return
				}
			}

			ctx := context.WithValue(r.Context(), PostKey, post)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPostFromContext extracts the post attached by PostAccess.
func GetPostFromContext(ctx context.Context) (*model.PostWithOwner, bool) {
	post, ok := ctx.Value(PostKey).(*model.PostWithOwner)
	return post, ok
}
