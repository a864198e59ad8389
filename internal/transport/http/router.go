package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pixelgram/internal/handler"
	"pixelgram/internal/httputil"
	"pixelgram/internal/repository"
	authmw "pixelgram/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	FeedHandler    *handler.FeedHandler
	PostHandler    *handler.PostHandler
	FollowHandler  *handler.FollowHandler
	LikeHandler    *handler.LikeHandler
	CommentHandler *handler.CommentHandler
	SaveHandler    *handler.SaveHandler

	PostRepo   repository.PostRepository
	FollowRepo repository.FollowRepository

	AccessTokenSecret string
	CORSOrigin        string
}

// NewRouter creates and configures a new Chi router with all route groups
// mounted under /api/v1.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	auth := authmw.AuthMiddleware(cfg.AccessTokenSecret)
	postAccess := authmw.PostAccess(cfg.PostRepo, cfg.FollowRepo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public routes - no authentication required
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/refresh-token", cfg.AuthHandler.Refresh)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(auth)

				r.Post("/logout", cfg.AuthHandler.Logout)
				r.Post("/change-password", cfg.AuthHandler.ChangePassword)
				r.Get("/current-user", cfg.AuthHandler.CurrentUser)
				r.Get("/feed", cfg.FeedHandler.Feed)
				r.Get("/u/{username}", cfg.UserHandler.GetProfile)

				r.Patch("/avatar", cfg.UserHandler.UpdateAvatar)
				r.Patch("/privateAccount", cfg.UserHandler.TogglePrivate)
				r.Patch("/bio", cfg.UserHandler.UpdateBio)
				r.Patch("/fullName", cfg.UserHandler.UpdateFullName)
				r.Patch("/username", cfg.UserHandler.UpdateUsername)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(auth)

			r.Get("/", cfg.FeedHandler.GlobalFeed)
			r.Post("/", cfg.PostHandler.Create)

			r.With(postAccess).Get("/{id}", cfg.PostHandler.GetDetail)
			r.Patch("/{id}", cfg.PostHandler.UpdateCaption)
			r.Delete("/{id}", cfg.PostHandler.Delete)

			r.With(postAccess).Post("/{id}/toggle-like", cfg.LikeHandler.Toggle)
		})

		r.Route("/followings", func(r chi.Router) {
			r.Use(auth)

			r.Post("/follow/{id}", cfg.FollowHandler.Toggle)
			r.Get("/{username}", cfg.FollowHandler.Followings)
		})

		r.Route("/followers", func(r chi.Router) {
			r.Use(auth)

			r.Get("/{username}", cfg.FollowHandler.Followers)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(auth)

			r.With(postAccess).Get("/p/{id}", cfg.LikeHandler.List)
			r.With(postAccess).Post("/p/{id}", cfg.LikeHandler.Toggle)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(auth)

			r.With(postAccess).Post("/p/{id}", cfg.CommentHandler.Add)
			r.With(postAccess).Get("/p/{id}", cfg.CommentHandler.List)
			r.Delete("/c/{commentId}", cfg.CommentHandler.Delete)
		})

		r.Route("/save", func(r chi.Router) {
			r.Use(auth)

			r.Get("/saved", cfg.SaveHandler.SavedPosts)
			r.With(postAccess).Post("/p/{id}", cfg.SaveHandler.Toggle)
		})
	})

	return r
}
