package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"pixelgram/internal/config"
	"pixelgram/internal/database"
	"pixelgram/internal/model"
	"pixelgram/internal/repository"
	"pixelgram/internal/service"
)

const (
	numUsers        = 50
	postsPerUser    = 8
	followsPerUser  = 12
	likesPerPost    = 6
	commentsPerPost = 3
	savesPerUser    = 10
)

// Placeholder images; the seed never touches object storage.
const placeholderImage = "https://picsum.photos/seed/%d/1080"

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("config: ", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("connect: ", err)
	}
	defer db.Close()

	if len(os.Args) > 1 && os.Args[1] == "--clean" {
		clean(ctx, db)
		return
	}

	// Existing seed check
	var existing int
	if err := db.GetContext(ctx, &existing, "SELECT COUNT(*) FROM users WHERE email LIKE '%@seed.local'"); err != nil {
		log.Fatal("check: ", err)
	}
	if existing > 0 {
		fmt.Printf("Seed data already present (%d users). Run with --clean first to regenerate.\n", existing)
		return
	}

	seed(ctx, db)
}

func seed(ctx context.Context, db *sqlx.DB) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	saveRepo := repository.NewSaveRepository(db)

	// One bcrypt hash for every account keeps the run fast.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt: ", err)
	}

	// 1. Users
	fmt.Printf("[1/5] users (%d)...", numUsers)
	users := make([]*model.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		username := service.NormalizeUsername(fmt.Sprintf("%s%d", gofakeit.Username(), i))
		user := &model.User{
			Username:       username,
			Email:          fmt.Sprintf("%s@seed.local", username),
			Password:       string(hashed),
			FullName:       gofakeit.Name(),
			Bio:            gofakeit.Sentence(8),
			PrivateAccount: rand.Intn(5) == 0, // roughly one in five private
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal("user: ", err)
		}
		users = append(users, user)
	}
	fmt.Printf(" done\n")

	// 2. Follows
	fmt.Printf("[2/5] follows...")
	var followCount int
	for _, u := range users {
		for _, j := range rand.Perm(len(users))[:followsPerUser] {
			target := users[j]
			if target.ID == u.ID {
				continue
			}
			inserted, err := followRepo.Insert(ctx, u.ID, target.ID)
			if err != nil {
				log.Fatal("follow: ", err)
			}
			if inserted {
				followCount++
			}
		}
	}
	fmt.Printf(" %d\n", followCount)

	// 3. Posts
	fmt.Printf("[3/5] posts (%d)...", numUsers*postsPerUser)
	posts := make([]*model.Post, 0, numUsers*postsPerUser)
	for _, u := range users {
		for i := 0; i < postsPerUser; i++ {
			post := &model.Post{
				Image:   fmt.Sprintf(placeholderImage, len(posts)+1),
				Caption: gofakeit.Sentence(6 + rand.Intn(10)),
				OwnerID: u.ID,
			}
			if err := postRepo.Create(ctx, post); err != nil {
				log.Fatal("post: ", err)
			}
			posts = append(posts, post)
		}
	}
	fmt.Printf(" done\n")

	// 4. Likes and comments
	fmt.Printf("[4/5] likes and comments...")
	for _, post := range posts {
		for _, j := range rand.Perm(len(users))[:likesPerPost] {
			if _, err := likeRepo.Insert(ctx, post.ID, users[j].ID); err != nil {
				log.Fatal("like: ", err)
			}
		}
		for _, j := range rand.Perm(len(users))[:commentsPerPost] {
			comment := &model.Comment{
				PostID:  post.ID,
				UserID:  users[j].ID,
				Comment: gofakeit.Comment(),
			}
			if err := commentRepo.Create(ctx, comment); err != nil {
				log.Fatal("comment: ", err)
			}
		}
	}
	fmt.Printf(" done\n")

	// 5. Saves
	fmt.Printf("[5/5] saves...")
	for _, u := range users {
		for _, j := range rand.Perm(len(posts))[:savesPerUser] {
			if _, err := saveRepo.Insert(ctx, posts[j].ID, u.ID); err != nil {
				log.Fatal("save: ", err)
			}
		}
	}
	fmt.Printf(" done\n")

	fmt.Printf("Seeded %d users, %d posts. Every account's password is %q.\n",
		len(users), len(posts), "password123")
}

func clean(ctx context.Context, db *sqlx.DB) {
	// Seeded accounts all share the synthetic email domain; cascading order
	// matters because nothing is ON DELETE CASCADE.
	statements := []string{
		`DELETE FROM saves WHERE user_id IN (SELECT id FROM users WHERE email LIKE '%@seed.local')
		   OR post_id IN (SELECT p.id FROM posts p JOIN users u ON u.id = p.owner_id WHERE u.email LIKE '%@seed.local')`,
		`DELETE FROM likes WHERE user_id IN (SELECT id FROM users WHERE email LIKE '%@seed.local')
		   OR post_id IN (SELECT p.id FROM posts p JOIN users u ON u.id = p.owner_id WHERE u.email LIKE '%@seed.local')`,
		`DELETE FROM comments WHERE user_id IN (SELECT id FROM users WHERE email LIKE '%@seed.local')
		   OR post_id IN (SELECT p.id FROM posts p JOIN users u ON u.id = p.owner_id WHERE u.email LIKE '%@seed.local')`,
		`DELETE FROM follows WHERE follower_id IN (SELECT id FROM users WHERE email LIKE '%@seed.local')
		   OR followee_id IN (SELECT id FROM users WHERE email LIKE '%@seed.local')`,
		`DELETE FROM posts WHERE owner_id IN (SELECT id FROM users WHERE email LIKE '%@seed.local')`,
		`DELETE FROM users WHERE email LIKE '%@seed.local'`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatal("clean: ", err)
		}
	}
	fmt.Println("Seed data removed.")
}
