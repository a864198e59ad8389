package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixelgram/internal/config"
	"pixelgram/internal/database"
	"pixelgram/internal/handler"
	"pixelgram/internal/queue"
	redisclient "pixelgram/internal/redis"
	"pixelgram/internal/repository"
	"pixelgram/internal/service"
	"pixelgram/internal/worker"
)

// Run wires the whole application together and serves until interrupted.
func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis (media cleanup stream)
	rdb, err := redisclient.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer rdb.Close()

	if err := rdb.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	// 4. Media storage
	mediaService, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to init media service: %w", err)
	}

	// 5. Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	saveRepo := repository.NewSaveRepository(db)

	// 6. Queue plumbing
	publisher := queue.NewPublisher(rdb.Client)
	consumer := queue.NewConsumer(rdb.Client)

	// 7. Services
	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo, postRepo, mediaService, publisher)
	postService := service.NewPostService(postRepo, mediaService, publisher)
	feedService := service.NewFeedService(postRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	likeService := service.NewLikeService(likeRepo)
	commentService := service.NewCommentService(commentRepo)
	saveService := service.NewSaveService(saveRepo)

	// 8. Cleanup workers
	manager := worker.NewManager(consumer, worker.NewHandler(mediaService), worker.DefaultManagerConfig())
	if err := manager.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	defer manager.Stop()

	// 9. Handlers and router
	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService, cfg),
		UserHandler:    handler.NewUserHandler(userService),
		FeedHandler:    handler.NewFeedHandler(feedService),
		PostHandler:    handler.NewPostHandler(postService),
		FollowHandler:  handler.NewFollowHandler(followService),
		LikeHandler:    handler.NewLikeHandler(likeService),
		CommentHandler: handler.NewCommentHandler(commentService),
		SaveHandler:    handler.NewSaveHandler(saveService),

		PostRepo:   postRepo,
		FollowRepo: followRepo,

		AccessTokenSecret: cfg.AccessTokenSecret,
		CORSOrigin:        cfg.CORSOrigin,
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Serve until SIGINT/SIGTERM, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
