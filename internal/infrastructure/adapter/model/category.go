package model

import (
	"time"
)

// Category represents the database model for budget categories. Spent is the
// running total in cents maintained by the ledger engine; TotalBudget is nil
// for the unbounded default category.
type Category struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"not null;uniqueIndex:idx_categories_user_name"`
	Name        string `gorm:"not null;size:255;uniqueIndex:idx_categories_user_name"`
	TotalBudget *int64
	Spent       int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "budgetcategories"
}
