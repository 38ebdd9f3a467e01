package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// ViewDeduper suppresses repeated analytics views backed by Redis.
// Key format: dedup:<event_type>:<resource_id>:<user_id>
type ViewDeduper struct {
	client *redis.Client
}

// NewViewDeduper creates a ViewDeduper wrapping the given Redis client.
func NewViewDeduper(client *redis.Client) *ViewDeduper {
	return &ViewDeduper{client: client}
}

// IsDuplicate reports whether this user viewed this resource within the TTL.
func (d *ViewDeduper) IsDuplicate(ctx context.Context, eventType string, resourceID, userID int64) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventType, resourceID, userID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the view (expires after dedupTTL).
func (d *ViewDeduper) Mark(ctx context.Context, eventType string, resourceID, userID int64) error {
	return d.client.Set(ctx, d.key(eventType, resourceID, userID), "1", dedupTTL).Err()
}

func (d *ViewDeduper) key(eventType string, resourceID, userID int64) string {
	return fmt.Sprintf("dedup:%s:%d:%d", eventType, resourceID, userID)
}
