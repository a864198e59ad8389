package service

import (
	"context"
	"log"
	"mime/multipart"
	"strings"

	"pixelgram/internal/model"
	"pixelgram/internal/queue"
	"pixelgram/internal/repository"
)

// PostService handles post creation, mutation and single-post reads.
type PostService struct {
	postRepo  repository.PostRepository
	media     *MediaService
	publisher queue.Publisher
}

func NewPostService(postRepo repository.PostRepository, media *MediaService, publisher queue.Publisher) *PostService {
	return &PostService{
		postRepo:  postRepo,
		media:     media,
		publisher: publisher,
	}
}

// Create uploads the image and inserts the post. Both the image file and a
// non-empty caption are required.
func (s *PostService) Create(ctx context.Context, ownerID int64, caption string, file multipart.File, header *multipart.FileHeader) (*model.Post, error) {
	if file == nil || header == nil {
		return nil, model.ErrImageRequired
	}
	if strings.TrimSpace(caption) == "" {
		return nil, model.ErrCaptionRequired
	}

	result, err := s.media.UploadPostImage(ctx, file, header)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Image:    result.URL,
		ImageKey: &result.Key,
		Caption:  caption,
		OwnerID:  ownerID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		// The uploaded object is orphaned; queue it for deletion.
		if s.publisher != nil {
			if _, pubErr := s.publisher.Publish(ctx, queue.StreamMedia, queue.NewPostMediaOrphanedEvent(0, []string{result.Key})); pubErr != nil {
				log.Printf("[PostService] orphan cleanup publish failed: key=%s err=%v", result.Key, pubErr)
			}
		}
		return nil, err
	}

	return post, nil
}

// GetDetail returns the aggregated view of one post for a viewer. Access is
// checked by the route middleware before this runs.
func (s *PostService) GetDetail(ctx context.Context, postID, viewerID int64) (*model.PostView, error) {
	return s.postRepo.GetDetail(ctx, postID, viewerID)
}

// UpdateCaption changes the caption; only the owner may do so.
func (s *PostService) UpdateCaption(ctx context.Context, postID, requesterID int64, caption string) (*model.Post, error) {
	if strings.TrimSpace(caption) == "" {
		return nil, model.ErrCaptionRequired
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != requesterID {
		return nil, model.ErrNotPostOwner
	}

	return s.postRepo.UpdateCaption(ctx, postID, caption)
}

// Delete removes the post with its likes, comments and saves, then queues
// its image for deletion from storage.
func (s *PostService) Delete(ctx context.Context, postID, requesterID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.OwnerID != requesterID {
		return model.ErrNotPostOwner
	}

	if err := s.postRepo.DeleteCascade(ctx, postID); err != nil {
		return err
	}

	if post.ImageKey != nil && *post.ImageKey != "" && s.publisher != nil {
		event := queue.NewPostMediaOrphanedEvent(postID, []string{*post.ImageKey})
		if _, err := s.publisher.Publish(ctx, queue.StreamMedia, event); err != nil {
			log.Printf("[PostService] media cleanup publish failed: post=%d err=%v", postID, err)
		}
	}

	return nil
}
