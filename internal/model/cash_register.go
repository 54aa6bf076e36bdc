package model

import (
	"time"

	"github.com/google/uuid"
)

// Cash register statuses and movement types. Amounts throughout the ledger
// are int64 minor currency units.
const (
	RegisterStatusOpen   = "open"
	RegisterStatusClosed = "closed"

	MovementIncome     = "income"
	MovementExpense    = "expense"
	MovementAdjustment = "adjustment"

	MovementRefManual          = "manual"
	MovementRefProductSale     = "product_sale"
	MovementRefExpense         = "expense"
	MovementRefTrainingPayment = "training_payment"
)

// CashRegister is a per-day ledger container. Exactly one row per
// (organization, date). Closing is one-way; a new day requires a fresh open.
type CashRegister struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_register_org_date"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:idx_register_org_date"`
	OpeningBalance int64     `gorm:"not null"`
	ClosingBalance *int64
	Status         string    `gorm:"type:varchar(10);not null;default:'open'"`
	OpenedBy       uuid.UUID `gorm:"type:uuid;not null"`
	ClosedBy       *uuid.UUID `gorm:"type:uuid"`
	ClosedAt       *time.Time
	Notes          *string
	CreatedAt      time.Time

	Movements []CashMovement `gorm:"foreignKey:CashRegisterID"`
}

// CashMovement is an immutable ledger line. Movements are NEVER updated or
// deleted — there is no endpoint and no repository method for either.
type CashMovement struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CashRegisterID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type           string    `gorm:"type:varchar(12);not null"` // income | expense | adjustment
	Amount         int64     `gorm:"not null"`
	Description    string    `gorm:"not null"`
	ReferenceType  string    `gorm:"type:varchar(20);not null;default:'manual'"`
	// ReferenceID links to the originating expense / payment when applicable
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	RecordedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}
