package types

import (
	"time"

	"github.com/google/uuid"
)

// MemberExpertise is a bilingual expertise tag shared across members.
type MemberExpertise struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      LocalizedText `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	CreatedAt time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (MemberExpertise) TableName() string { return "member_expertise" }

// MemberExpertiseLink joins members to expertise tags.
type MemberExpertiseLink struct {
	MemberID    uuid.UUID        `gorm:"type:uuid;primaryKey" json:"member_id"`
	ExpertiseID uuid.UUID        `gorm:"type:uuid;primaryKey" json:"expertise_id"`
	Expertise   *MemberExpertise `gorm:"foreignKey:ExpertiseID;references:ID" json:"expertise,omitempty"`
	CreatedAt   time.Time        `gorm:"not null;default:now()" json:"created_at"`
}

func (MemberExpertiseLink) TableName() string { return "member_expertise_link" }
