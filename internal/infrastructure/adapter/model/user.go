package model

import (
	"time"
)

// User represents the database model for accounts
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `gorm:"not null;size:255"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
