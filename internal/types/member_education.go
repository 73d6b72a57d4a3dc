package types

import (
	"time"

	"github.com/google/uuid"
)

type MemberEducation struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MemberID    uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	Degree      string    `gorm:"not null;column:degree" json:"degree"`
	Institution string    `gorm:"not null;column:institution" json:"institution"`
	Year        int       `gorm:"column:year" json:"year"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (MemberEducation) TableName() string { return "member_education" }
