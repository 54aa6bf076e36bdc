package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item (gear, drinks, merchandising) recorded on
// product-sale cash movements. Stock is only enforced when TrackStock is set.
type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"not null;index"`
	// UnitPrice in minor currency units
	UnitPrice    int64 `gorm:"not null"`
	TrackStock   bool  `gorm:"not null;default:false"`
	CurrentStock int   `gorm:"not null;default:0"`
	Active       bool  `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockTransaction records every change to a tracked product's stock.
// Quantity is signed: positive = restock, negative = sale/adjustment out.
type StockTransaction struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity       int       `gorm:"not null"`
	StockBefore    int       `gorm:"not null"`
	StockAfter     int       `gorm:"not null"`
	Reason         string    `gorm:"not null"` // "sale" | "manual_adjustment"
	// CashMovementID ties a sale decrement back to its ledger line for audit
	CashMovementID *uuid.UUID `gorm:"type:uuid"`
	RecordedBy     uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
