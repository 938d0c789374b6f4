package model

import "time"

// FriendGroup is an owner-curated collection of friends used for bulk
// session invites. Only the owner mutates it.
type FriendGroup struct {
	ID          uint      `gorm:"primaryKey"`
	OwnerID     uint      `gorm:"not null;index"`
	Name        string    `gorm:"type:varchar(128);not null"`
	Description string    `gorm:"type:varchar(512)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (FriendGroup) TableName() string { return "friend_group" }

// FriendGroupMember is one group membership row. Every member must hold an
// accepted friendship with the group owner at the time of addition.
type FriendGroupMember struct {
	GroupID   uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"primaryKey"`
	AddedByID uint      `gorm:"not null"`
	AddedAt   time.Time `gorm:"autoCreateTime"`
}

func (FriendGroupMember) TableName() string { return "friend_group_member" }
