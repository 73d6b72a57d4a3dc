package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Publication is a bibliographic record. research_id is unique among live
// rows (partial index created in db.Migrate), so a project carries at most
// one publication while soft-deleted rows do not block a new one.
type Publication struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResearchID *uuid.UUID     `gorm:"type:uuid;index" json:"research_id,omitempty"`
	Title      string         `gorm:"not null;column:title" json:"title"`
	Authors    string         `gorm:"column:authors" json:"authors"`
	Journal    string         `gorm:"column:journal" json:"journal"`
	Year       int            `gorm:"column:year;index" json:"year"`
	DOI        string         `gorm:"column:doi" json:"doi"`
	URL        string         `gorm:"column:url" json:"url"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Publication) TableName() string { return "publication" }
