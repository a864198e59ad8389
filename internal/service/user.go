package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/queue"
	"pixelgram/internal/repository"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService handles business logic for user accounts and profiles.
type UserService struct {
	repo      repository.UserRepository
	postRepo  repository.PostRepository
	media     *MediaService
	publisher queue.Publisher
}

func NewUserService(repo repository.UserRepository, postRepo repository.PostRepository, media *MediaService, publisher queue.Publisher) *UserService {
	return &UserService{
		repo:      repo,
		postRepo:  postRepo,
		media:     media,
		publisher: publisher,
	}
}

// NormalizeUsername lowercases a username and strips all whitespace, so
// "John Doe " and "johndoe" collide rather than coexist.
func NormalizeUsername(username string) string {
	lowered := strings.ToLower(username)
	return strings.Join(strings.Fields(lowered), "")
}

// Register creates a new account. All fields are required; the username is
// normalized before the uniqueness check so later lookups are exact-match.
// An avatar may be uploaded alongside; it is best-effort, and on failure the
// account is created without one.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest, avatarFile multipart.File, avatarHeader *multipart.FileHeader) (*model.User, error) {
	if strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Password) == "" {
		return nil, model.ErrMissingFields
	}

	if !emailRegexp.MatchString(req.Email) {
		return nil, model.ErrInvalidEmail
	}

	username := NormalizeUsername(req.Username)

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, model.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
	}

	if avatarFile != nil && s.media != nil {
		result, err := s.media.UploadAvatar(ctx, avatarFile, avatarHeader)
		if err != nil {
			// The account is still created; the user can upload an
			// avatar later via PATCH /users/avatar.
			log.Printf("[UserService] registration avatar upload failed: %v", err)
		} else {
			user.Avatar = result.URL
			user.AvatarKey = &result.Key
		}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates by username or email. Failures never reveal whether
// the account exists.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	if req.Password == "" || (req.Username == "" && req.Email == "") {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsernameOrEmail(ctx, NormalizeUsername(req.Username), req.Email)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ChangePassword verifies the old password and stores the hash of the new
// one. The new password must differ from the old.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *model.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return model.ErrMissingFields
	}
	if req.OldPassword == req.NewPassword {
		return model.ErrSamePassword
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return model.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hashed))
}

// UpdateAvatar uploads the new image, swaps it onto the user row, and
// queues the replaced object for deletion.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (*model.User, error) {
	result, err := s.media.UploadAvatar(ctx, file, header)
	if err != nil {
		return nil, err
	}

	user, oldKey, err := s.repo.UpdateAvatar(ctx, userID, result.URL, &result.Key)
	if err != nil {
		return nil, err
	}

	if oldKey != nil && *oldKey != "" && s.publisher != nil {
		if _, err := s.publisher.Publish(ctx, queue.StreamMedia, queue.NewAvatarReplacedEvent(userID, *oldKey)); err != nil {
			// The new avatar is already live; the orphan stays in storage
			// until a later cleanup sweep.
			log.Printf("[UserService] avatar cleanup publish failed: user=%d err=%v", userID, err)
		}
	}

	return user, nil
}

// UpdateBio sets the user's bio.
func (s *UserService) UpdateBio(ctx context.Context, userID int64, bio string) (*model.User, error) {
	return s.repo.UpdateBio(ctx, userID, bio)
}

// UpdateFullName sets the user's display name.
func (s *UserService) UpdateFullName(ctx context.Context, userID int64, fullName string) (*model.User, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, model.ErrMissingFields
	}
	return s.repo.UpdateFullName(ctx, userID, fullName)
}

// UpdateUsername normalizes and renames, surfacing ErrUsernameTaken on
// conflict.
func (s *UserService) UpdateUsername(ctx context.Context, userID int64, username string) (*model.User, error) {
	normalized := NormalizeUsername(username)
	if normalized == "" {
		return nil, model.ErrMissingFields
	}
	return s.repo.UpdateUsername(ctx, userID, normalized)
}

// TogglePrivate flips the account between public and private.
func (s *UserService) TogglePrivate(ctx context.Context, userID int64) (*model.User, error) {
	return s.repo.TogglePrivate(ctx, userID)
}

// GetProfile composes the counted profile view and, when the viewer may see
// them, a page of the target's posts. Posts are visible when the account is
// public, when the viewer is the owner, or when the viewer follows the
// owner.
func (s *UserService) GetProfile(ctx context.Context, username string, viewerID int64, p pagination.Params) (*model.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}

	canViewPosts := !profile.PrivateAccount || profile.ID == viewerID || profile.IsFollowing
	if canViewPosts {
		posts, err := s.postRepo.PostsByOwner(ctx, profile.ID, p)
		if err != nil {
			return nil, err
		}
		profile.Posts = posts
	}

	return profile, nil
}
