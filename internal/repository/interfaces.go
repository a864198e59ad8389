package repository

import (
	"context"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateAvatar(ctx context.Context, id int64, url string, key *string) (*model.User, *string, error)
	UpdateBio(ctx context.Context, id int64, bio string) (*model.User, error)
	UpdateFullName(ctx context.Context, id int64, fullName string) (*model.User, error)
	UpdateUsername(ctx context.Context, id int64, username string) (*model.User, error)
	TogglePrivate(ctx context.Context, id int64) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error
	// GetProfile computes the counted profile view for a username without
	// the embedded posts; the service decides post visibility separately.
	GetProfile(ctx context.Context, username string, viewerID int64) (*model.Profile, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	// GetWithOwner resolves a post together with the owner's public fields
	// and privacy flag, for the access guard.
	GetWithOwner(ctx context.Context, id int64) (*model.PostWithOwner, error)
	// GetDetail computes the single-post view for a viewer.
	GetDetail(ctx context.Context, postID, viewerID int64) (*model.PostView, error)
	UpdateCaption(ctx context.Context, postID int64, caption string) (*model.Post, error)
	// DeleteCascade removes the post and its likes, comments and saves in
	// one transaction.
	DeleteCascade(ctx context.Context, postID int64) error
	// Feed lists posts whose owner the viewer follows, newest first, with
	// the total count for the page envelope.
	Feed(ctx context.Context, viewerID int64, p pagination.Params) ([]model.PostView, int64, error)
	// GlobalFeed lists posts visible to the viewer (public owner, followed
	// owner, or own post), ordered by update time descending.
	GlobalFeed(ctx context.Context, viewerID int64, p pagination.Params) ([]model.PostView, int64, error)
	// PostsByOwner pages the posts embedded in a profile view.
	PostsByOwner(ctx context.Context, ownerID int64, p pagination.Params) ([]model.ProfilePost, error)
}

type FollowRepository interface {
	// Insert adds the pair unless it already exists; reports whether a row
	// was inserted. The unique index makes this race-free.
	Insert(ctx context.Context, followerID, followeeID int64) (bool, error)
	DeletePair(ctx context.Context, followerID, followeeID int64) (bool, error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	Followers(ctx context.Context, userID, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error)
	Followings(ctx context.Context, userID, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error)
}

type LikeRepository interface {
	Insert(ctx context.Context, postID, userID int64) (bool, error)
	DeletePair(ctx context.Context, postID, userID int64) (bool, error)
	CountForPost(ctx context.Context, postID int64) (int64, error)
	// ListForPost pages likers with the viewer's follow flag per row.
	ListForPost(ctx context.Context, postID, viewerID int64, p pagination.Params) ([]model.LikeEntry, int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
	ListForPost(ctx context.Context, postID int64, p pagination.Params) ([]model.CommentView, int64, error)
}

type SaveRepository interface {
	Insert(ctx context.Context, postID, userID int64) (bool, error)
	DeletePair(ctx context.Context, postID, userID int64) (bool, error)
	// SavedPosts pages the viewer's saved posts, newest saved post first.
	SavedPosts(ctx context.Context, userID int64, p pagination.Params) ([]model.SavedPostView, int64, error)
}
