package service

import (
	"context"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/queue"
)

// Function-field mocks: each test assigns only the behavior it cares about,
// everything else falls back to a zero-value default.

type mockUserRepository struct {
	createFn                  func(ctx context.Context, user *model.User) error
	getByIDFn                 func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn           func(ctx context.Context, username string) (*model.User, error)
	getByUsernameOrEmailFn    func(ctx context.Context, username, email string) (*model.User, error)
	existsByUsernameOrEmailFn func(ctx context.Context, username, email string) (bool, error)
	updatePasswordFn          func(ctx context.Context, id int64, passwordHash string) error
	setRefreshTokenHashFn     func(ctx context.Context, id int64, hash *string) error
	getProfileFn              func(ctx context.Context, username string, viewerID int64) (*model.Profile, error)
	updateUsernameFn          func(ctx context.Context, id int64, username string) (*model.User, error)

	createCalls         []*model.User
	updatePasswordCalls []string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	if m.getByUsernameOrEmailFn != nil {
		return m.getByUsernameOrEmailFn(ctx, username, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if m.existsByUsernameOrEmailFn != nil {
		return m.existsByUsernameOrEmailFn(ctx, username, email)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, id int64, url string, key *string) (*model.User, *string, error) {
	return &model.User{ID: id, Avatar: url, AvatarKey: key}, nil, nil
}

func (m *mockUserRepository) UpdateBio(ctx context.Context, id int64, bio string) (*model.User, error) {
	return &model.User{ID: id, Bio: bio}, nil
}

func (m *mockUserRepository) UpdateFullName(ctx context.Context, id int64, fullName string) (*model.User, error) {
	return &model.User{ID: id, FullName: fullName}, nil
}

func (m *mockUserRepository) UpdateUsername(ctx context.Context, id int64, username string) (*model.User, error) {
	if m.updateUsernameFn != nil {
		return m.updateUsernameFn(ctx, id, username)
	}
	return &model.User{ID: id, Username: username}, nil
}

func (m *mockUserRepository) TogglePrivate(ctx context.Context, id int64) (*model.User, error) {
	return &model.User{ID: id, PrivateAccount: true}, nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	m.updatePasswordCalls = append(m.updatePasswordCalls, passwordHash)
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error {
	if m.setRefreshTokenHashFn != nil {
		return m.setRefreshTokenHashFn(ctx, id, hash)
	}
	return nil
}

func (m *mockUserRepository) GetProfile(ctx context.Context, username string, viewerID int64) (*model.Profile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, username, viewerID)
	}
	return nil, model.ErrUserNotFound
}

type mockPostRepository struct {
	createFn        func(ctx context.Context, post *model.Post) error
	getByIDFn       func(ctx context.Context, id int64) (*model.Post, error)
	getDetailFn     func(ctx context.Context, postID, viewerID int64) (*model.PostView, error)
	updateCaptionFn func(ctx context.Context, postID int64, caption string) (*model.Post, error)
	deleteCascadeFn func(ctx context.Context, postID int64) error
	feedFn          func(ctx context.Context, viewerID int64, p pagination.Params) ([]model.PostView, int64, error)
	globalFeedFn    func(ctx context.Context, viewerID int64, p pagination.Params) ([]model.PostView, int64, error)
	postsByOwnerFn  func(ctx context.Context, ownerID int64, p pagination.Params) ([]model.ProfilePost, error)

	deleteCascadeCalls []int64
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	post.ID = 1
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetWithOwner(ctx context.Context, id int64) (*model.PostWithOwner, error) {
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetDetail(ctx context.Context, postID, viewerID int64) (*model.PostView, error) {
	if m.getDetailFn != nil {
		return m.getDetailFn(ctx, postID, viewerID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) UpdateCaption(ctx context.Context, postID int64, caption string) (*model.Post, error) {
	if m.updateCaptionFn != nil {
		return m.updateCaptionFn(ctx, postID, caption)
	}
	return &model.Post{ID: postID, Caption: caption}, nil
}

func (m *mockPostRepository) DeleteCascade(ctx context.Context, postID int64) error {
	m.deleteCascadeCalls = append(m.deleteCascadeCalls, postID)
	if m.deleteCascadeFn != nil {
		return m.deleteCascadeFn(ctx, postID)
	}
	return nil
}

func (m *mockPostRepository) Feed(ctx context.Context, viewerID int64, p pagination.Params) ([]model.PostView, int64, error) {
	if m.feedFn != nil {
		return m.feedFn(ctx, viewerID, p)
	}
	return nil, 0, nil
}

func (m *mockPostRepository) GlobalFeed(ctx context.Context, viewerID int64, p pagination.Params) ([]model.PostView, int64, error) {
	if m.globalFeedFn != nil {
		return m.globalFeedFn(ctx, viewerID, p)
	}
	return nil, 0, nil
}

func (m *mockPostRepository) PostsByOwner(ctx context.Context, ownerID int64, p pagination.Params) ([]model.ProfilePost, error) {
	if m.postsByOwnerFn != nil {
		return m.postsByOwnerFn(ctx, ownerID, p)
	}
	return nil, nil
}

type mockFollowRepository struct {
	insertFn     func(ctx context.Context, followerID, followeeID int64) (bool, error)
	deletePairFn func(ctx context.Context, followerID, followeeID int64) (bool, error)
	existsFn     func(ctx context.Context, followerID, followeeID int64) (bool, error)
	followersFn  func(ctx context.Context, userID, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error)
	followingsFn func(ctx context.Context, userID, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error)
}

func (m *mockFollowRepository) Insert(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, followerID, followeeID)
	}
	return true, nil
}

func (m *mockFollowRepository) DeletePair(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.deletePairFn != nil {
		return m.deletePairFn(ctx, followerID, followeeID)
	}
	return true, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followeeID)
	}
	return false, nil
}

func (m *mockFollowRepository) Followers(ctx context.Context, userID, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error) {
	if m.followersFn != nil {
		return m.followersFn(ctx, userID, viewerID, p)
	}
	return nil, nil
}

func (m *mockFollowRepository) Followings(ctx context.Context, userID, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error) {
	if m.followingsFn != nil {
		return m.followingsFn(ctx, userID, viewerID, p)
	}
	return nil, nil
}

type mockLikeRepository struct {
	insertFn      func(ctx context.Context, postID, userID int64) (bool, error)
	deletePairFn  func(ctx context.Context, postID, userID int64) (bool, error)
	listForPostFn func(ctx context.Context, postID, viewerID int64, p pagination.Params) ([]model.LikeEntry, int64, error)

	deletePairCalls int
}

func (m *mockLikeRepository) Insert(ctx context.Context, postID, userID int64) (bool, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, postID, userID)
	}
	return true, nil
}

func (m *mockLikeRepository) DeletePair(ctx context.Context, postID, userID int64) (bool, error) {
	m.deletePairCalls++
	if m.deletePairFn != nil {
		return m.deletePairFn(ctx, postID, userID)
	}
	return true, nil
}

func (m *mockLikeRepository) CountForPost(ctx context.Context, postID int64) (int64, error) {
	return 0, nil
}

func (m *mockLikeRepository) ListForPost(ctx context.Context, postID, viewerID int64, p pagination.Params) ([]model.LikeEntry, int64, error) {
	if m.listForPostFn != nil {
		return m.listForPostFn(ctx, postID, viewerID, p)
	}
	return nil, 0, nil
}

type mockCommentRepository struct {
	createFn  func(ctx context.Context, comment *model.Comment) error
	getByIDFn func(ctx context.Context, id int64) (*model.Comment, error)
	deleteFn  func(ctx context.Context, id int64) error

	deleteCalls []int64
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCommentRepository) ListForPost(ctx context.Context, postID int64, p pagination.Params) ([]model.CommentView, int64, error) {
	return nil, 0, nil
}

type mockSaveRepository struct {
	insertFn     func(ctx context.Context, postID, userID int64) (bool, error)
	deletePairFn func(ctx context.Context, postID, userID int64) (bool, error)

	deletePairCalls int
}

func (m *mockSaveRepository) Insert(ctx context.Context, postID, userID int64) (bool, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, postID, userID)
	}
	return true, nil
}

func (m *mockSaveRepository) DeletePair(ctx context.Context, postID, userID int64) (bool, error) {
	m.deletePairCalls++
	if m.deletePairFn != nil {
		return m.deletePairFn(ctx, postID, userID)
	}
	return true, nil
}

func (m *mockSaveRepository) SavedPosts(ctx context.Context, userID int64, p pagination.Params) ([]model.SavedPostView, int64, error) {
	return nil, 0, nil
}

type mockPublisher struct {
	publishFn func(ctx context.Context, stream string, event queue.CleanupEvent) (string, error)

	published []queue.CleanupEvent
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.CleanupEvent) (string, error) {
	m.published = append(m.published, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, stream, event)
	}
	return "1-0", nil
}
