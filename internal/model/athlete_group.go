package model

import (
	"time"

	"github.com/google/uuid"
)

// AthleteGroup is a training group with a limited number of spots. Demand
// beyond capacity is absorbed by the waitlist.
type AthleteGroup struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"not null"`
	Capacity       *int
	// MonthlyFee in minor currency units
	MonthlyFee int64 `gorm:"not null;default:0"`
	Active     bool  `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GroupMembership links an athlete to a group. At most one row per
// (group, athlete) — waitlist assignment inserts it idempotently.
type GroupMembership struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	AthleteGroupID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_athlete"`
	AthleteID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_athlete"`
	JoinedAt       time.Time

	Athlete *Athlete      `gorm:"foreignKey:AthleteID"`
	Group   *AthleteGroup `gorm:"foreignKey:AthleteGroupID"`
}
