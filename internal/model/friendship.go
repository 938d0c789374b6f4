package model

import "time"

// Friendship statuses. Pending transitions to accepted or rejected; both are
// terminal for the directed edge, though the edge can still be deleted.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipRejected = "rejected"
)

// Friendship is one directed edge (UserID -> FriendID). Acceptance creates a
// mirrored accepted edge in the other direction, so an accepted relation is
// stored as two rows. Rows are hard-deleted: the at-most-one-live-relation
// check must not see soft-deleted ghosts.
type Friendship struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	FriendID    uint      `gorm:"not null;index"`
	Status      string    `gorm:"type:varchar(32);default:'pending'"`
	CreatedByID uint      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Friendship) TableName() string { return "friendship" }
