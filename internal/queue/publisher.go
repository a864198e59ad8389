package queue

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher defines the interface for publishing events to a stream.
type Publisher interface {
	// Publish adds an event to the specified stream.
	// Returns the message ID assigned by Redis.
	Publish(ctx context.Context, stream string, event CleanupEvent) (messageID string, err error)
}

// RedisPublisher implements Publisher using Redis Streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewPublisher creates a new Publisher backed by Redis Streams.
func NewPublisher(client *redis.Client) Publisher {
	return &RedisPublisher{client: client}
}

// Publish adds an event to the stream using XADD.
// Uses "*" for auto-generated message ID (timestamp-sequence).
func (p *RedisPublisher) Publish(ctx context.Context, stream string, event CleanupEvent) (string, error) {
	startTime := time.Now()

	values, err := event.ToMap()
	if err != nil {
		log.Printf("[Publisher] Publish FAILED: stream=%s type=%s err=%v", stream, event.Type, err)
		return "", fmt.Errorf("serialize event: %w", err)
	}

	// XADD stream * field value [field value ...]
	// "*" means Redis auto-generates the message ID
	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}).Result()

	if err != nil {
		log.Printf("[Publisher] Publish FAILED: stream=%s type=%s err=%v", stream, event.Type, err)
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	log.Printf("[Publisher] Publish OK: stream=%s type=%s msgID=%s keys=%d duration=%v",
		stream, event.Type, messageID, len(event.Keys), time.Since(startTime))

	return messageID, nil
}

// PublishPostMediaOrphaned is a convenience method for publishing the keys
// of a deleted post's media.
func (p *RedisPublisher) PublishPostMediaOrphaned(ctx context.Context, postID int64, keys []string) (string, error) {
	event := NewPostMediaOrphanedEvent(postID, keys)
	return p.Publish(ctx, StreamMedia, event)
}

// PublishAvatarReplaced is a convenience method for publishing a replaced
// avatar's key.
func (p *RedisPublisher) PublishAvatarReplaced(ctx context.Context, userID int64, oldKey string) (string, error) {
	event := NewAvatarReplacedEvent(userID, oldKey)
	return p.Publish(ctx, StreamMedia, event)
}
