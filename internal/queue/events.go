package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the media cleanup stream
const (
	EventPostMediaOrphaned = "post_media_orphaned"
	EventAvatarReplaced    = "avatar_replaced"
)

// Stream and consumer group names
const (
	StreamMedia        = "stream:media"
	ConsumerGroupMedia = "media_workers"
)

// CleanupEvent asks the workers to delete orphaned objects from media
// storage: the image of a deleted post, or an avatar that was replaced.
type CleanupEvent struct {
	Type      string   `json:"type"`
	Timestamp int64    `json:"timestamp"` // Unix timestamp when event occurred
	Keys      []string `json:"keys"`      // object keys to delete

	// Origin of the orphaned keys, for log correlation
	PostID int64 `json:"post_id,omitempty"`
	UserID int64 `json:"user_id,omitempty"`
}

// NewPostMediaOrphanedEvent is published after a post delete commits.
func NewPostMediaOrphanedEvent(postID int64, keys []string) CleanupEvent {
	return CleanupEvent{
		Type:      EventPostMediaOrphaned,
		Timestamp: time.Now().Unix(),
		Keys:      keys,
		PostID:    postID,
	}
}

// NewAvatarReplacedEvent is published after an avatar update commits, with
// the key of the replaced object.
func NewAvatarReplacedEvent(userID int64, oldKey string) CleanupEvent {
	return CleanupEvent{
		Type:      EventAvatarReplaced,
		Timestamp: time.Now().Unix(),
		Keys:      []string{oldKey},
		UserID:    userID,
	}
}

// ToMap converts the event to a map for Redis XADD. Streams store
// field-value pairs, so the payload is JSON in a "data" field.
func (e CleanupEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseCleanupEvent parses a CleanupEvent from stream message values.
func ParseCleanupEvent(values map[string]interface{}) (CleanupEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return CleanupEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event CleanupEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return CleanupEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
