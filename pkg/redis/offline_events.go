package redis

import (
	"fmt"
	"time"
)

// Offline event queue. When a recipient has no live channel connected the
// raw push payload is parked here and replayed on their next connect. Push
// delivery stays best-effort: the notification row is already durable.
const (
	OfflineEventsKeyPrefix = "rounds:offline:"
	OfflineEventsTTL       = 7 * 24 * time.Hour
	MaxOfflineEvents       = 200
)

// AddOfflineEvent appends one marshaled push payload to the user's queue.
func AddOfflineEvent(userID uint, payload []byte) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", OfflineEventsKeyPrefix, userID)

	if err := client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("queue offline event failed: %w", err)
	}

	// Keep only the newest events and refresh the TTL.
	if err := client.LTrim(ctx, key, -MaxOfflineEvents, -1).Err(); err != nil {
		return fmt.Errorf("trim offline events failed: %w", err)
	}
	if err := client.Expire(ctx, key, OfflineEventsTTL).Err(); err != nil {
		return fmt.Errorf("set offline events TTL failed: %w", err)
	}

	return nil
}

// GetOfflineEvents returns up to limit queued payloads, oldest first.
func GetOfflineEvents(userID uint, limit int64) ([][]byte, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", OfflineEventsKeyPrefix, userID)

	values, err := client.LRange(ctx, key, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read offline events failed: %w", err)
	}

	payloads := make([][]byte, 0, len(values))
	for _, v := range values {
		payloads = append(payloads, []byte(v))
	}
	return payloads, nil
}

// ClearOfflineEvents drops the queue after a successful replay.
func ClearOfflineEvents(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", OfflineEventsKeyPrefix, userID)

	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear offline events failed: %w", err)
	}

	return nil
}
