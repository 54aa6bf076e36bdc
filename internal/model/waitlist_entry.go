package model

import (
	"time"

	"github.com/google/uuid"
)

// Waitlist reference types and statuses.
const (
	WaitlistRefGroup    = "athlete_group"
	WaitlistRefSchedule = "schedule"

	WaitlistStatusWaiting   = "waiting"
	WaitlistStatusAssigned  = "assigned"
	WaitlistStatusCancelled = "cancelled"
)

// WaitlistEntry is one athlete's queued request for a spot in a group or a
// schedule slot. Position is an ordinal within its scope (organization +
// reference type + group for group entries): new entries get max(position)+1
// among waiting entries. Positions are never compacted — cancelled and
// assigned entries leave permanent gaps.
//
// Lifecycle: waiting → assigned | cancelled. Both end states are terminal.
type WaitlistEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	AthleteID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferenceType  string    `gorm:"type:varchar(20);not null"` // athlete_group | schedule
	AthleteGroupID *uuid.UUID `gorm:"type:uuid;index"`
	// Schedule preferences — only meaningful for schedule entries
	PreferredDays      *string `gorm:"type:varchar(100)"` // comma-separated weekday names
	PreferredStartTime *string `gorm:"type:varchar(5)"`   // "HH:MM"
	PreferredEndTime   *string `gorm:"type:varchar(5)"`
	Priority           string  `gorm:"type:varchar(10);not null;default:'normal'"` // low | normal | high
	Position           int     `gorm:"not null"`
	Status             string  `gorm:"type:varchar(10);not null;default:'waiting';index"`
	CreatedBy          uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedBy         *uuid.UUID `gorm:"type:uuid"`
	AssignedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Athlete *Athlete      `gorm:"foreignKey:AthleteID"`
	Group   *AthleteGroup `gorm:"foreignKey:AthleteGroupID"`
}

func (WaitlistEntry) TableName() string { return "waitlist_entries" }
