package redis

import (
	"fmt"
	"strconv"
	"time"
)

// Unread notification badge counters. The database is the source of truth;
// these keys are a cache with a TTL, resynced on miss.
const (
	UnreadCountKeyPrefix = "rounds:unread:"
	unreadCountTTL       = 24 * time.Hour
)

// IncrementUnreadCount bumps the unread notification badge for a user.
func IncrementUnreadCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadCountKeyPrefix, userID)

	if err := client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("increment unread count failed: %w", err)
	}
	if err := client.Expire(ctx, key, unreadCountTTL).Err(); err != nil {
		return fmt.Errorf("set unread count TTL failed: %w", err)
	}

	return nil
}

// DecrementUnreadCount lowers the badge, deleting the key at zero.
func DecrementUnreadCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadCountKeyPrefix, userID)

	if err := client.Decr(ctx, key).Err(); err != nil {
		return fmt.Errorf("decrement unread count failed: %w", err)
	}

	count, err := client.Get(ctx, key).Int64()
	if err == nil && count <= 0 {
		client.Del(ctx, key)
	}

	return nil
}

// GetUnreadCount returns the cached badge value, or -1 when the key is
// absent and the caller should fall back to the database.
func GetUnreadCount(userID uint) (int64, error) {
	if client == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadCountKeyPrefix, userID)

	result, err := client.Get(ctx, key).Result()
	if err != nil {
		if err.Error() == "redis: nil" {
			return -1, nil
		}
		return 0, fmt.Errorf("get unread count failed: %w", err)
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse unread count failed: %w", err)
	}

	return count, nil
}

// SetUnreadCount seeds the badge from a database count.
func SetUnreadCount(userID uint, count int64) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadCountKeyPrefix, userID)

	if err := client.Set(ctx, key, count, unreadCountTTL).Err(); err != nil {
		return fmt.Errorf("set unread count failed: %w", err)
	}

	return nil
}

// ResetUnreadCount clears the badge (mark-all-read).
func ResetUnreadCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadCountKeyPrefix, userID)

	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("reset unread count failed: %w", err)
	}

	return nil
}
