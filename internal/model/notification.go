package model

import "time"

// Notification types emitted by this subsystem.
const (
	NotificationFriendRequest  = "friend_request"
	NotificationFriendAccepted = "friend_accepted"
	NotificationSessionInvite  = "session_invite"
	NotificationMention        = "mention"
)

// Notification is append-only except for the Read flag, which flips one way
// false -> true. Metadata is an opaque string, usually serialized JSON.
type Notification struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Type      string    `gorm:"type:varchar(32);not null"`
	Title     string    `gorm:"type:varchar(128);not null"`
	Message   string    `gorm:"type:varchar(512)"`
	Metadata  string    `gorm:"type:text"`
	Read      bool      `gorm:"default:false"`
	CreatedAt time.Time
}

func (Notification) TableName() string { return "notification" }
