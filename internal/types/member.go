package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Member struct {
	ID               uuid.UUID              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           *uuid.UUID             `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User             *User                  `gorm:"constraint:OnDelete:SET NULL;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name             string                 `gorm:"not null;column:name" json:"name"`
	Role             string                 `gorm:"column:role" json:"role"`
	IsAlumni         bool                   `gorm:"not null;default:false;column:is_alumni" json:"is_alumni"`
	IsHead           bool                   `gorm:"not null;default:false;column:is_head" json:"is_head"`
	Email            string                 `gorm:"column:email" json:"email"`
	Phone            string                 `gorm:"column:phone" json:"phone"`
	PhotoURL         string                 `gorm:"column:photo_url" json:"photo_url"`
	PublicationLinks datatypes.JSON         `gorm:"column:publication_links;type:jsonb" json:"publication_links"`
	Educations       []*MemberEducation     `gorm:"foreignKey:MemberID;references:ID" json:"educations,omitempty"`
	Expertises       []*MemberExpertiseLink `gorm:"foreignKey:MemberID;references:ID" json:"expertises,omitempty"`
	Researches       []*ResearchMember      `gorm:"foreignKey:MemberID;references:ID" json:"researches,omitempty"`
	CreatedAt        time.Time              `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time              `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt         `gorm:"index" json:"deleted_at,omitempty"`
}

func (Member) TableName() string { return "member" }

// StatusLabel is the computed status used on the public site and in the
// chatbot context: alumni wins over head, head over plain membership.
func (m *Member) StatusLabel() string {
	if m.IsAlumni {
		return "Alumni"
	}
	if m.IsHead {
		return "Ketua Kelompok Riset"
	}
	return "Anggota"
}
