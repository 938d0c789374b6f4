package model

import "time"

// SessionInvite statuses.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteDeclined = "declined"
)

// DrinkingSession is a planned or running session that users get invited to
// and comment on. Drink tracking lives outside this subsystem.
type DrinkingSession struct {
	ID          uint      `gorm:"primaryKey"`
	HostID      uint      `gorm:"not null;index"`
	Name        string    `gorm:"type:varchar(128);not null"`
	Description string    `gorm:"type:varchar(512)"`
	Location    string    `gorm:"type:varchar(255)"`
	StartsAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (DrinkingSession) TableName() string { return "drinking_session" }

// SessionInvite is one user's invite to one session. Created pending, either
// individually or by the group fan-out.
type SessionInvite struct {
	ID          uint      `gorm:"primaryKey"`
	SessionID   uint      `gorm:"not null;index"`
	UserID      uint      `gorm:"not null;index"`
	Status      string    `gorm:"type:varchar(32);default:'pending'"`
	CreatedByID uint      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SessionInvite) TableName() string { return "session_invite" }
