package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lecturer is a lecture-material record.
type Lecturer struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	FileURL     string         `gorm:"column:file_url" json:"file_url"`
	StoragePath string         `gorm:"column:storage_path" json:"-"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Lecturer) TableName() string { return "lecturer" }
