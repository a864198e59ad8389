package service

import (
	"context"
	"log"
	"time"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/repository"
)

// FeedService builds the two paged timelines. Both are computed at read
// time against the relational store, so counts and flags are never stale.
type FeedService struct {
	postRepo repository.PostRepository
}

func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// Feed pages posts from accounts the viewer follows, newest first.
func (s *FeedService) Feed(ctx context.Context, viewerID int64, p pagination.Params) (*pagination.Page[model.PostView], error) {
	startTime := time.Now()

	posts, total, err := s.postRepo.Feed(ctx, viewerID, p)
	if err != nil {
		return nil, err
	}

	log.Printf("[FeedService] Feed OK: user=%d page=%d posts=%d total=%d duration=%v",
		viewerID, p.Page, len(posts), total, time.Since(startTime))

	page := pagination.NewPage(posts, total, p)
	return &page, nil
}

// GlobalFeed pages every post the viewer may see: public accounts, followed
// accounts, and the viewer's own. Ordered by update time, so an edited post
// resurfaces.
func (s *FeedService) GlobalFeed(ctx context.Context, viewerID int64, p pagination.Params) (*pagination.Page[model.PostView], error) {
	startTime := time.Now()

	posts, total, err := s.postRepo.GlobalFeed(ctx, viewerID, p)
	if err != nil {
		return nil, err
	}

	log.Printf("[FeedService] GlobalFeed OK: user=%d page=%d posts=%d total=%d duration=%v",
		viewerID, p.Page, len(posts), total, time.Since(startTime))

	page := pagination.NewPage(posts, total, p)
	return &page, nil
}
