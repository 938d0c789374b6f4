package model

import "time"

// SessionComment is free text on a session, mutable by its author only.
type SessionComment struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID uint      `gorm:"not null;index"`
	AuthorID  uint      `gorm:"not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SessionComment) TableName() string { return "session_comment" }

// CommentMention is one resolved @-mention in a comment's current content.
// The full set is deleted and recreated whenever the comment is edited.
type CommentMention struct {
	ID              uint      `gorm:"primaryKey"`
	CommentID       uint      `gorm:"not null;index"`
	MentionedUserID uint      `gorm:"not null;index"`
	StartPosition   int       `gorm:"not null"`
	Length          int       `gorm:"not null"`
	CreatedAt       time.Time
}

func (CommentMention) TableName() string { return "comment_mention" }
