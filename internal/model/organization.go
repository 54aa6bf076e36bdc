package model

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant boundary. Every other row carries an
// OrganizationID and every query filters by it.
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
