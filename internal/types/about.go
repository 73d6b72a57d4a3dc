package types

import (
	"time"

	"github.com/google/uuid"
)

// About is a singleton row: seeded once, updated in place, never deleted.
type About struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Description LocalizedText `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Purpose     LocalizedText `gorm:"embedded;embeddedPrefix:purpose_" json:"purpose"`
	Email       string        `gorm:"column:email" json:"email"`
	Phone       string        `gorm:"column:phone" json:"phone"`
	Address     string        `gorm:"column:address" json:"address"`
	CreatedAt   time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:now()" json:"updated_at"`

	// Gallery and banner media, filled by the service layer.
	Documentation []*Documentation `gorm:"-" json:"documentation,omitempty"`
}

func (About) TableName() string { return "about" }
