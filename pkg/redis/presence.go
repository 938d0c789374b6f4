package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// Presence keys carry a TTL so a crashed connection expires to offline on
// its own.
const (
	PresenceKeyPrefix = "rounds:presence:"
	PresenceTTL       = 2 * time.Minute
)

// PresenceData is the stored presence snapshot for one user.
type PresenceData struct {
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"last_seen"`
}

// SetUserPresence writes the user's presence. Status "offline" deletes the
// key instead of storing it.
func SetUserPresence(userID uint, username, status string) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	if status == "offline" {
		if err := client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("clear presence failed: %w", err)
		}
		return nil
	}

	data := PresenceData{
		UserID:   userID,
		Username: username,
		Status:   status,
		LastSeen: time.Now(),
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal presence failed: %w", err)
	}

	if err := client.Set(ctx, key, payload, PresenceTTL).Err(); err != nil {
		return fmt.Errorf("set presence failed: %w", err)
	}

	return nil
}

// RefreshUserPresence extends the TTL on a heartbeat.
func RefreshUserPresence(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	if err := client.Expire(ctx, key, PresenceTTL).Err(); err != nil {
		return fmt.Errorf("refresh presence failed: %w", err)
	}

	return nil
}

// IsUserOnline reports whether a presence key exists for the user.
func IsUserOnline(userID uint) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	n, err := client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check presence failed: %w", err)
	}
	return n > 0, nil
}

// GetUserPresence returns the stored presence, or nil when offline.
func GetUserPresence(userID uint) (*PresenceData, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	payload, err := client.Get(ctx, key).Result()
	if err != nil {
		if err.Error() == "redis: nil" {
			return nil, nil
		}
		return nil, fmt.Errorf("get presence failed: %w", err)
	}

	var data PresenceData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("unmarshal presence failed: %w", err)
	}
	return &data, nil
}
