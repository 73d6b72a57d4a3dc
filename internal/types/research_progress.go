package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResearchProgress struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResearchID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"research_id"`
	Title        LocalizedText    `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Description  LocalizedText    `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	ProgressDate *time.Time       `gorm:"column:progress_date" json:"progress_date,omitempty"`
	Images       []*ProgressImage `gorm:"foreignKey:ProgressID;references:ID" json:"images,omitempty"`
	Videos       []*ProgressVideo `gorm:"foreignKey:ProgressID;references:ID" json:"videos,omitempty"`
	Maps         []*ProgressMap   `gorm:"foreignKey:ProgressID;references:ID" json:"maps,omitempty"`
	Texts        []*ProgressText  `gorm:"foreignKey:ProgressID;references:ID" json:"texts,omitempty"`
	CreatedAt    time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (ResearchProgress) TableName() string { return "research_progress" }

type ProgressImage struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProgressID uuid.UUID `gorm:"type:uuid;not null;index" json:"progress_id"`
	FileURL    string    `gorm:"not null;column:file_url" json:"file_url"`
	Caption    string    `gorm:"column:caption" json:"caption"`
	Position   int       `gorm:"not null;default:0;column:position" json:"position"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ProgressImage) TableName() string { return "progress_image" }

type ProgressVideo struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProgressID uuid.UUID `gorm:"type:uuid;not null;index" json:"progress_id"`
	FileURL    string    `gorm:"not null;column:file_url" json:"file_url"`
	Caption    string    `gorm:"column:caption" json:"caption"`
	Position   int       `gorm:"not null;default:0;column:position" json:"position"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ProgressVideo) TableName() string { return "progress_video" }

type ProgressMap struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProgressID uuid.UUID `gorm:"type:uuid;not null;index" json:"progress_id"`
	FileURL    string    `gorm:"not null;column:file_url" json:"file_url"`
	Caption    string    `gorm:"column:caption" json:"caption"`
	Position   int       `gorm:"not null;default:0;column:position" json:"position"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ProgressMap) TableName() string { return "progress_map" }

type ProgressText struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProgressID uuid.UUID `gorm:"type:uuid;not null;index" json:"progress_id"`
	Content    string    `gorm:"not null;column:content;type:text" json:"content"`
	Position   int       `gorm:"not null;default:0;column:position" json:"position"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ProgressText) TableName() string { return "progress_text" }
