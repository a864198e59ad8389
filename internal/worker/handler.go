package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"pixelgram/internal/queue"
	"pixelgram/internal/service"
)

// Handler processes media cleanup events from the queue.
type Handler struct {
	deleter service.ObjectDeleter
}

// NewHandler creates a new event handler.
func NewHandler(deleter service.ObjectDeleter) *Handler {
	return &Handler{deleter: deleter}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.CleanupEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventPostMediaOrphaned, queue.EventAvatarReplaced:
		err = h.handleDeleteKeys(ctx, event)
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: type=%s duration=%v", event.Type, time.Since(startTime))
	return nil
}

// handleDeleteKeys removes each orphaned object from storage. A key that
// fails is reported and retried on the next delivery; keys already gone
// delete as a no-op, so redelivery is safe.
func (h *Handler) handleDeleteKeys(ctx context.Context, event queue.CleanupEvent) error {
	log.Printf("[Worker] Cleanup: type=%s keys=%d post=%d user=%d",
		event.Type, len(event.Keys), event.PostID, event.UserID)

	var failCount int
	for _, key := range event.Keys {
		if key == "" {
			continue
		}
		if err := h.deleter.DeleteObject(ctx, key); err != nil {
			log.Printf("[Worker] Cleanup: failed to delete key=%s err=%v", key, err)
			failCount++
			// Continue with other keys - don't fail the whole batch
		}
	}

	if failCount > 0 {
		return fmt.Errorf("failed to delete %d of %d objects", failCount, len(event.Keys))
	}

	log.Printf("[Worker] Cleanup DONE: type=%s deleted=%d", event.Type, len(event.Keys))
	return nil
}
