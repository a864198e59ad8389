package service

import (
	"context"
	"fmt"
	"log"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/repository"
)

// SaveService handles the save toggle and the saved-posts listing.
type SaveService struct {
	saveRepo repository.SaveRepository
}

func NewSaveService(saveRepo repository.SaveRepository) *SaveService {
	return &SaveService{saveRepo: saveRepo}
}

// Toggle saves the post, or unsaves it if already saved. Returns true when
// the result is saved.
func (s *SaveService) Toggle(ctx context.Context, postID, userID int64) (bool, error) {
	inserted, err := s.saveRepo.Insert(ctx, postID, userID)
	if err != nil {
		return false, fmt.Errorf("insert save: %w", err)
	}
	if inserted {
		log.Printf("[SaveService] User %d saved post %d", userID, postID)
		return true, nil
	}

	if _, err := s.saveRepo.DeletePair(ctx, postID, userID); err != nil {
		return false, fmt.Errorf("delete save: %w", err)
	}
	log.Printf("[SaveService] User %d unsaved post %d", userID, postID)
	return false, nil
}

// SavedPosts pages the viewer's saved posts, most recently saved first.
func (s *SaveService) SavedPosts(ctx context.Context, userID int64, p pagination.Params) (*pagination.Page[model.SavedPostView], error) {
	saved, total, err := s.saveRepo.SavedPosts(ctx, userID, p)
	if err != nil {
		return nil, err
	}

	page := pagination.NewPage(saved, total, p)
	return &page, nil
}
