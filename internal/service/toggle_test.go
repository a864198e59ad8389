package service

import (
	"context"
	"errors"
	"testing"

	"pixelgram/internal/model"
	"pixelgram/internal/pagination"
)

// fakeToggleState mimics the unique-index behavior the repositories build
// their toggles on: Insert reports false when the pair already exists, and
// DeletePair removes it.
type fakeToggleState struct {
	exists bool
}

func (f *fakeToggleState) insert(context.Context, int64, int64) (bool, error) {
	if f.exists {
		return false, nil
	}
	f.exists = true
	return true, nil
}

func (f *fakeToggleState) delete(context.Context, int64, int64) (bool, error) {
	was := f.exists
	f.exists = false
	return was, nil
}

func TestLikeService_Toggle(t *testing.T) {
	state := &fakeToggleState{}
	svc := NewLikeService(&mockLikeRepository{
		insertFn:     state.insert,
		deletePairFn: state.delete,
	})

	liked, err := svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !liked {
		t.Error("first toggle should like")
	}

	liked, err = svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike")
	}

	// A double toggle lands back where it started.
	liked, err = svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	if !liked {
		t.Error("third toggle should like again")
	}
}

func TestLikeService_LikesOnPost_Empty(t *testing.T) {
	svc := NewLikeService(&mockLikeRepository{
		listForPostFn: func(ctx context.Context, postID, viewerID int64, p pagination.Params) ([]model.LikeEntry, int64, error) {
			return nil, 0, nil
		},
	})

	_, _, err := svc.LikesOnPost(context.Background(), 1, 2, pagination.Params{Page: 1, Limit: 20})
	if !errors.Is(err, model.ErrNoLikes) {
		t.Errorf("error = %v, want ErrNoLikes", err)
	}
}

func TestLikeService_LikesOnPost(t *testing.T) {
	entries := []model.LikeEntry{
		{User: model.UserSummary{ID: 5, Username: "eve"}, IsFollowing: true},
		{User: model.UserSummary{ID: 6, Username: "mallory"}},
	}
	svc := NewLikeService(&mockLikeRepository{
		listForPostFn: func(ctx context.Context, postID, viewerID int64, p pagination.Params) ([]model.LikeEntry, int64, error) {
			return entries, 42, nil
		},
	})

	page, total, err := svc.LikesOnPost(context.Background(), 1, 2, pagination.Params{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if total != 42 {
		t.Errorf("total = %d, want 42", total)
	}
	if len(page.Docs) != 2 {
		t.Errorf("docs = %d, want 2", len(page.Docs))
	}
	if page.TotalPages != 3 { // ceil(42/20)
		t.Errorf("totalPages = %d, want 3", page.TotalPages)
	}
	if !page.HasNextPage {
		t.Error("hasNextPage should be true on page 1 of 3")
	}
}

func TestSaveService_Toggle(t *testing.T) {
	state := &fakeToggleState{}
	svc := NewSaveService(&mockSaveRepository{
		insertFn:     state.insert,
		deletePairFn: state.delete,
	})

	saved, err := svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !saved {
		t.Error("first toggle should save")
	}

	saved, err = svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if saved {
		t.Error("second toggle should unsave")
	}
}

func TestFollowService_Toggle(t *testing.T) {
	state := &fakeToggleState{}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			if id == 404 {
				return nil, model.ErrUserNotFound
			}
			return &model.User{ID: id}, nil
		},
	}
	svc := NewFollowService(&mockFollowRepository{
		insertFn:     state.insert,
		deletePairFn: state.delete,
	}, userRepo)

	t.Run("self follow rejected", func(t *testing.T) {
		_, err := svc.Toggle(context.Background(), 1, 1)
		if !errors.Is(err, model.ErrCannotFollowSelf) {
			t.Errorf("error = %v, want ErrCannotFollowSelf", err)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := svc.Toggle(context.Background(), 1, 404)
		if !errors.Is(err, model.ErrUserNotFound) {
			t.Errorf("error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("toggle cycle", func(t *testing.T) {
		following, err := svc.Toggle(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("first toggle: %v", err)
		}
		if !following {
			t.Error("first toggle should follow")
		}

		following, err = svc.Toggle(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("second toggle: %v", err)
		}
		if following {
			t.Error("second toggle should unfollow")
		}
	})
}
