package service

import (
	"context"
	"fmt"
	"log"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/repository"
)

// FollowService handles the follow toggle and follower/following listings.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Toggle follows the target, or unfollows if already following. Returns
// true when the result is following. Self-follow is rejected.
func (s *FollowService) Toggle(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if followerID == followeeID {
		return false, model.ErrCannotFollowSelf
	}

	// Make sure the target exists before touching the relation.
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return false, err
	}

	inserted, err := s.followRepo.Insert(ctx, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("insert follow: %w", err)
	}
	if inserted {
		log.Printf("[FollowService] User %d followed user %d", followerID, followeeID)
		return true, nil
	}

	if _, err := s.followRepo.DeletePair(ctx, followerID, followeeID); err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	log.Printf("[FollowService] User %d unfollowed user %d", followerID, followeeID)
	return false, nil
}

// Followers lists the users following the named account, each with the
// viewer's own follow flag. Plain slice, no count envelope.
func (s *FollowService) Followers(ctx context.Context, username string, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	entries, err := s.followRepo.Followers(ctx, user.ID, viewerID, p)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.FollowListEntry{}
	}
	return entries, nil
}

// Followings lists the users the named account follows.
func (s *FollowService) Followings(ctx context.Context, username string, viewerID int64, p pagination.Params) ([]model.FollowListEntry, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	entries, err := s.followRepo.Followings(ctx, user.ID, viewerID, p)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.FollowListEntry{}
	}
	return entries, nil
}
