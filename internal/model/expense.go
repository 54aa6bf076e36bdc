package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment methods shared by expenses and training payments. Only "cash"
// touches the cash register ledger.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCard     = "card"
)

// Expense is a financial record. A cash expense triggers exactly one
// corresponding expense-type CashMovement at creation time.
type Expense struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Category       string    `gorm:"not null"`
	// Amount in minor currency units
	Amount        int64     `gorm:"not null"`
	Description   string    `gorm:"not null"`
	PaymentMethod string    `gorm:"type:varchar(10);not null"`
	Date          time.Time `gorm:"type:date;not null;index"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}
