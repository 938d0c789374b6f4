package model

import (
	"time"

	"gorm.io/gorm"
)

// User account. Passwords are stored as bcrypt hashes only. Status tracks
// online/offline for the live channel.
type User struct {
	ID           uint           `gorm:"primaryKey"`
	Username     string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string         `gorm:"type:varchar(128);uniqueIndex"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	Nickname     string         `gorm:"type:varchar(64)"`
	Avatar       string         `gorm:"type:varchar(255)"`
	Status       string         `gorm:"type:varchar(32);default:'offline'"`
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string { return "user" }
