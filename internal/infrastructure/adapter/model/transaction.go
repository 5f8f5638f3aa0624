package model

import (
	"time"
)

// Transaction represents the database model for transactions. Cost is in
// cents and may be negative for refunds.
type Transaction struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"not null;index"`
	CategoryID uint64    `gorm:"not null;index"`
	Name       string    `gorm:"not null;size:255"`
	Cost       int64     `gorm:"not null"`
	Date       time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`

	User     User     `gorm:"foreignKey:UserID;references:ID"`
	Category Category `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
