package model

import (
	"time"
)

// MigrationVersion tracks applied schema versions
type MigrationVersion struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"not null;size:50"`
	AppliedAt time.Time `gorm:"not null"`
	Details   string    `gorm:"type:text"`
}

// TableName specifies the table name for MigrationVersion
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
