package types

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an append-only inbound message log.
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Email     string    `gorm:"not null;column:email" json:"email"`
	Subject   string    `gorm:"not null;column:subject" json:"subject"`
	Message   string    `gorm:"not null;column:message;type:text" json:"message"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Contact) TableName() string { return "contact" }
