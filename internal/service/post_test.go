package service

import (
	"context"
	"errors"
	"testing"

	"pixelgram/internal/model"
	"pixelgram/internal/queue"
)

func TestPostService_UpdateCaption(t *testing.T) {
	key := "posts/abc.jpg"
	mockRepo := &mockPostRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Post, error) {
			return &model.Post{ID: id, OwnerID: 10, ImageKey: &key}, nil
		},
	}
	svc := NewPostService(mockRepo, nil, nil)

	t.Run("owner can edit", func(t *testing.T) {
		post, err := svc.UpdateCaption(context.Background(), 1, 10, "new caption")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if post.Caption != "new caption" {
			t.Errorf("caption = %q, want %q", post.Caption, "new caption")
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		_, err := svc.UpdateCaption(context.Background(), 1, 11, "sneaky edit")
		if !errors.Is(err, model.ErrNotPostOwner) {
			t.Errorf("error = %v, want ErrNotPostOwner", err)
		}
	})

	t.Run("empty caption rejected", func(t *testing.T) {
		_, err := svc.UpdateCaption(context.Background(), 1, 10, "   ")
		if !errors.Is(err, model.ErrCaptionRequired) {
			t.Errorf("error = %v, want ErrCaptionRequired", err)
		}
	})
}

func TestPostService_Delete(t *testing.T) {
	key := "posts/abc.jpg"

	t.Run("owner delete cascades and queues cleanup", func(t *testing.T) {
		mockRepo := &mockPostRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.Post, error) {
				return &model.Post{ID: id, OwnerID: 10, ImageKey: &key}, nil
			},
		}
		pub := &mockPublisher{}
		svc := NewPostService(mockRepo, nil, pub)

		if err := svc.Delete(context.Background(), 1, 10); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if len(mockRepo.deleteCascadeCalls) != 1 || mockRepo.deleteCascadeCalls[0] != 1 {
			t.Errorf("DeleteCascade calls = %v, want [1]", mockRepo.deleteCascadeCalls)
		}

		if len(pub.published) != 1 {
			t.Fatalf("published events = %d, want 1", len(pub.published))
		}
		event := pub.published[0]
		if event.Type != queue.EventPostMediaOrphaned {
			t.Errorf("event type = %q, want %q", event.Type, queue.EventPostMediaOrphaned)
		}
		if len(event.Keys) != 1 || event.Keys[0] != key {
			t.Errorf("event keys = %v, want [%s]", event.Keys, key)
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		mockRepo := &mockPostRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.Post, error) {
				return &model.Post{ID: id, OwnerID: 10, ImageKey: &key}, nil
			},
		}
		svc := NewPostService(mockRepo, nil, &mockPublisher{})

		err := svc.Delete(context.Background(), 1, 11)
		if !errors.Is(err, model.ErrNotPostOwner) {
			t.Errorf("error = %v, want ErrNotPostOwner", err)
		}
		if len(mockRepo.deleteCascadeCalls) != 0 {
			t.Error("DeleteCascade should not run for a non-owner")
		}
	})

	t.Run("missing post", func(t *testing.T) {
		svc := NewPostService(&mockPostRepository{}, nil, &mockPublisher{})
		err := svc.Delete(context.Background(), 99, 10)
		if !errors.Is(err, model.ErrPostNotFound) {
			t.Errorf("error = %v, want ErrPostNotFound", err)
		}
	})
}

func TestCommentService_Delete(t *testing.T) {
	mockRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, PostID: 1, UserID: 20}, nil
		},
	}
	svc := NewCommentService(mockRepo)

	t.Run("author can delete", func(t *testing.T) {
		if err := svc.Delete(context.Background(), 5, 20); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(mockRepo.deleteCalls) != 1 || mockRepo.deleteCalls[0] != 5 {
			t.Errorf("Delete calls = %v, want [5]", mockRepo.deleteCalls)
		}
	})

	t.Run("non-author rejected", func(t *testing.T) {
		err := svc.Delete(context.Background(), 5, 21)
		if !errors.Is(err, model.ErrNotCommentOwner) {
			t.Errorf("error = %v, want ErrNotCommentOwner", err)
		}
	})
}

func TestCommentService_Add_Empty(t *testing.T) {
	svc := NewCommentService(&mockCommentRepository{})
	_, err := svc.Add(context.Background(), 1, 2, "  \t ")
	if !errors.Is(err, model.ErrCommentRequired) {
		t.Errorf("error = %v, want ErrCommentRequired", err)
	}
}
