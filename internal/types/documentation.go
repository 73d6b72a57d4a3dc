package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DocumentationCategoryImage = "image"
	DocumentationCategoryVideo = "video"

	// AboutType values; a NULL about_type means research-linked media.
	AboutTypeGallery = "gallery"
	AboutTypeBanner  = "banner"
)

// Documentation is the single media table. about_type discriminates
// about-page media from research media; the two populations are never
// queried together.
type Documentation struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Category    string         `gorm:"not null;column:category" json:"category"`
	AboutType   *string        `gorm:"column:about_type;index" json:"about_type,omitempty"`
	FileURL     string         `gorm:"not null;column:file_url" json:"file_url"`
	StoragePath string         `gorm:"not null;column:storage_path" json:"-"`
	Caption     string         `gorm:"column:caption" json:"caption"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Documentation) TableName() string { return "documentation" }
