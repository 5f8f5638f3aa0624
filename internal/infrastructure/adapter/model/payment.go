package model

import (
	"time"
)

// RecurringPayment represents the database model for recurring payments.
// Category is a plain name, not a foreign key: payments never feed the spend
// totals and deliberately survive category deletion untouched.
type RecurringPayment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index"`
	Category  string    `gorm:"not null;size:255"`
	Name      string    `gorm:"not null;size:255"`
	Cost      int64     `gorm:"not null"`
	DueDate   time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for RecurringPayment
func (RecurringPayment) TableName() string {
	return "recurringpayments"
}
