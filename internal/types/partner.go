package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Partner struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string           `gorm:"not null;column:name" json:"name"`
	LogoURL   string           `gorm:"column:logo_url" json:"logo_url"`
	Website   string           `gorm:"column:website" json:"website"`
	Members   []*PartnerMember `gorm:"foreignKey:PartnerID;references:ID" json:"members,omitempty"`
	CreatedAt time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (Partner) TableName() string { return "partner" }

type PartnerMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PartnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"partner_id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Role      string    `gorm:"column:role" json:"role"`
	PhotoURL  string    `gorm:"column:photo_url" json:"photo_url"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PartnerMember) TableName() string { return "partner_member" }
