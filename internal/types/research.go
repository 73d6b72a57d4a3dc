package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Research struct {
	ID            uuid.UUID                `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID                `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title         LocalizedText            `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Description   LocalizedText            `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Latitude      *float64                 `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude     *float64                 `gorm:"column:longitude" json:"longitude,omitempty"`
	StartDate     *time.Time               `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate       *time.Time               `gorm:"column:end_date" json:"end_date,omitempty"`
	Progresses    []*ResearchProgress      `gorm:"foreignKey:ResearchID;references:ID" json:"progresses,omitempty"`
	Publication   *Publication             `gorm:"foreignKey:ResearchID;references:ID" json:"publication,omitempty"`
	Members       []*ResearchMember        `gorm:"foreignKey:ResearchID;references:ID" json:"members,omitempty"`
	Partners      []*ResearchPartner       `gorm:"foreignKey:ResearchID;references:ID" json:"partners,omitempty"`
	Documentation []*ResearchDocumentation `gorm:"foreignKey:ResearchID;references:ID" json:"documentation,omitempty"`
	CreatedAt     time.Time                `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time                `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt           `gorm:"index" json:"deleted_at,omitempty"`
}

func (Research) TableName() string { return "research" }

// ResearchMember joins a research project to a member; the coordinator flag
// marks the project lead.
type ResearchMember struct {
	ResearchID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"research_id"`
	MemberID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"member_id"`
	IsCoordinator bool      `gorm:"not null;default:false;column:is_coordinator" json:"is_coordinator"`
	Research      *Research `gorm:"foreignKey:ResearchID;references:ID" json:"research,omitempty"`
	Member        *Member   `gorm:"foreignKey:MemberID;references:ID" json:"member,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ResearchMember) TableName() string { return "research_member" }

type ResearchPartner struct {
	ResearchID uuid.UUID `gorm:"type:uuid;primaryKey" json:"research_id"`
	PartnerID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"partner_id"`
	Partner    *Partner  `gorm:"foreignKey:PartnerID;references:ID" json:"partner,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ResearchPartner) TableName() string { return "research_partner" }

// ResearchDocumentation joins research to media; the thumbnail flag marks
// the representative image for the project.
type ResearchDocumentation struct {
	ResearchID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"research_id"`
	DocumentationID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"documentation_id"`
	IsThumbnail     bool           `gorm:"not null;default:false;column:is_thumbnail" json:"is_thumbnail"`
	Documentation   *Documentation `gorm:"foreignKey:DocumentationID;references:ID" json:"documentation,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ResearchDocumentation) TableName() string { return "research_documentation" }
