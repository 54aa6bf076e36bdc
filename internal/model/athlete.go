package model

import (
	"time"

	"github.com/google/uuid"
)

// Athlete is a member profile. Waitlist entries, group memberships and
// training payments all reference an athlete of the same organization.
type Athlete struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName      string    `gorm:"not null"`
	LastName       string    `gorm:"not null;index"`
	BirthDate      *time.Time
	Email          *string
	Phone          *string
	Active         bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
