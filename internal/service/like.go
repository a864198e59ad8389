package service

import (
	"context"
	"fmt"
	"log"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/repository"
)

// LikeService handles the like toggle and the likers listing.
type LikeService struct {
	likeRepo repository.LikeRepository
}

func NewLikeService(likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo}
}

// Toggle likes the post, or unlikes it if the like already exists. Returns
// true when the result is liked. Repeating the call restores the previous
// state; it never errors on either branch.
func (s *LikeService) Toggle(ctx context.Context, postID, userID int64) (bool, error) {
	inserted, err := s.likeRepo.Insert(ctx, postID, userID)
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}
	if inserted {
		log.Printf("[LikeService] User %d liked post %d", userID, postID)
		return true, nil
	}

	// Already liked; this toggle removes it.
	if _, err := s.likeRepo.DeletePair(ctx, postID, userID); err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	log.Printf("[LikeService] User %d unliked post %d", userID, postID)
	return false, nil
}

// LikesOnPost pages the users who liked a post, each carrying the viewer's
// follow flag. A post with no likes yields ErrNoLikes.
func (s *LikeService) LikesOnPost(ctx context.Context, postID, viewerID int64, p pagination.Params) (*pagination.Page[model.LikeEntry], int64, error) {
	entries, total, err := s.likeRepo.ListForPost(ctx, postID, viewerID, p)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, model.ErrNoLikes
	}

	page := pagination.NewPage(entries, total, p)
	return &page, total, nil
}
