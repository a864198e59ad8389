package worker_test

import (
	"context"
	"errors"
	"testing"

	"pixelgram/internal/queue"
	"pixelgram/internal/worker"
)

// MockDeleter simulates object storage: it records deletions and can be
// told to fail specific keys.
type MockDeleter struct {
	deleted  []string
	failKeys map[string]bool
}

func NewMockDeleter() *MockDeleter {
	return &MockDeleter{failKeys: make(map[string]bool)}
}

func (m *MockDeleter) FailKey(key string) {
	m.failKeys[key] = true
}

func (m *MockDeleter) DeleteObject(ctx context.Context, key string) error {
	if m.failKeys[key] {
		return errors.New("simulated storage failure")
	}
	m.deleted = append(m.deleted, key)
	return nil
}

func TestHandler_PostMediaOrphaned(t *testing.T) {
	deleter := NewMockDeleter()
	handler := worker.NewHandler(deleter)

	event := queue.NewPostMediaOrphanedEvent(42, []string{"posts/a.jpg", "posts/b.jpg"})
	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(deleter.deleted) != 2 {
		t.Fatalf("deleted %d objects, want 2", len(deleter.deleted))
	}
	if deleter.deleted[0] != "posts/a.jpg" || deleter.deleted[1] != "posts/b.jpg" {
		t.Errorf("deleted = %v", deleter.deleted)
	}
}

func TestHandler_AvatarReplaced(t *testing.T) {
	deleter := NewMockDeleter()
	handler := worker.NewHandler(deleter)

	event := queue.NewAvatarReplacedEvent(7, "avatars/old.jpg")
	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(deleter.deleted) != 1 || deleter.deleted[0] != "avatars/old.jpg" {
		t.Errorf("deleted = %v, want [avatars/old.jpg]", deleter.deleted)
	}
}

func TestHandler_PartialFailure(t *testing.T) {
	deleter := NewMockDeleter()
	deleter.FailKey("posts/stuck.jpg")
	handler := worker.NewHandler(deleter)

	event := queue.NewPostMediaOrphanedEvent(1, []string{"posts/ok.jpg", "posts/stuck.jpg"})
	err := handler.HandleEvent(context.Background(), event)
	if err == nil {
		t.Fatal("expected an error when a key fails to delete")
	}

	// The healthy key is still deleted.
	if len(deleter.deleted) != 1 || deleter.deleted[0] != "posts/ok.jpg" {
		t.Errorf("deleted = %v, want [posts/ok.jpg]", deleter.deleted)
	}
}

func TestHandler_SkipsEmptyKeys(t *testing.T) {
	deleter := NewMockDeleter()
	handler := worker.NewHandler(deleter)

	event := queue.CleanupEvent{Type: queue.EventAvatarReplaced, Keys: []string{"", "avatars/x.jpg"}}
	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(deleter.deleted) != 1 {
		t.Errorf("deleted = %v, want exactly the non-empty key", deleter.deleted)
	}
}

func TestHandler_UnknownEvent(t *testing.T) {
	handler := worker.NewHandler(NewMockDeleter())

	event := queue.CleanupEvent{Type: "bogus"}
	if err := handler.HandleEvent(context.Background(), event); err == nil {
		t.Fatal("expected an error for an unknown event type")
	}
}

func TestCleanupEvent_RoundTrip(t *testing.T) {
	event := queue.NewPostMediaOrphanedEvent(9, []string{"posts/z.jpg"})

	values, err := event.ToMap()
	if err != nil {
		t.Fatalf("ToMap: %v", err)
	}

	parsed, err := queue.ParseCleanupEvent(values)
	if err != nil {
		t.Fatalf("ParseCleanupEvent: %v", err)
	}

	if parsed.Type != event.Type || parsed.PostID != 9 || len(parsed.Keys) != 1 || parsed.Keys[0] != "posts/z.jpg" {
		t.Errorf("parsed = %+v, want %+v", parsed, event)
	}
}

func TestParseCleanupEvent_Malformed(t *testing.T) {
	if _, err := queue.ParseCleanupEvent(map[string]interface{}{"type": "x"}); err == nil {
		t.Error("expected error for missing data field")
	}
	if _, err := queue.ParseCleanupEvent(map[string]interface{}{"data": "{not json"}); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
