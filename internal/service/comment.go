package service

import (
	"context"
	"strings"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
	"pixelgram/internal/repository"
)

// CommentService handles comments on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// Add creates a comment on a post. The text must be non-empty.
func (s *CommentService) Add(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, model.ErrCommentRequired
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  authorID,
		Comment: text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// List pages a post's comments, newest first, with author details.
func (s *CommentService) List(ctx context.Context, postID int64, p pagination.Params) (*pagination.Page[model.CommentView], error) {
	comments, total, err := s.commentRepo.ListForPost(ctx, postID, p)
	if err != nil {
		return nil, err
	}

	page := pagination.NewPage(comments, total, p)
	return &page, nil
}

// Delete removes a comment; only its author may do so.
func (s *CommentService) Delete(ctx context.Context, commentID, requesterID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != requesterID {
		return model.ErrNotCommentOwner
	}

	return s.commentRepo.Delete(ctx, commentID)
}
