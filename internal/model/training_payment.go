package model

import (
	"time"

	"github.com/google/uuid"
)

// TrainingPayment records an athlete's fee payment. A cash payment triggers
// exactly one income-type CashMovement at creation time.
type TrainingPayment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	AthleteID      uuid.UUID `gorm:"type:uuid;not null;index"`
	// Amount in minor currency units
	Amount        int64  `gorm:"not null"`
	PaymentMethod string `gorm:"type:varchar(10);not null"`
	// Period is the month being paid for, "YYYY-MM"
	Period     string    `gorm:"type:varchar(7);not null;index"`
	Status     string    `gorm:"type:varchar(10);not null;default:'paid'"`
	PaidAt     time.Time `gorm:"not null"`
	RecordedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time

	Athlete *Athlete `gorm:"foreignKey:AthleteID"`
}
