package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenRegisterRequest struct {
	OpeningBalance int64   `json:"opening_balance" validate:"min=0"`
	Notes          *string `json:"notes"`
}

type CloseRegisterRequest struct {
	ClosingBalance int64   `json:"closing_balance" validate:"min=0"`
	Notes          *string `json:"notes"`
}

// MovementProductLine references a product sold as part of a movement.
type MovementProductLine struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type AddMovementRequest struct {
	Type        string                `json:"type"        validate:"required,oneof=income expense adjustment"`
	Amount      int64                 `json:"amount"      validate:"required"`
	Description string                `json:"description" validate:"required,min=3"`
	Products    []MovementProductLine `json:"products"    validate:"omitempty,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CashRegisterResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	OpeningBalance int64   `json:"opening_balance"`
	ClosingBalance *int64  `json:"closing_balance"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes"`
	ClosedAt       *string `json:"closed_at"`
	CreatedAt      string  `json:"created_at"`
}

type CashMovementResponse struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
	ReferenceType string `json:"reference_type"`
	CreatedAt     string `json:"created_at"`
}

// MovementTypeTotal aggregates one movement type for the daily summary.
type MovementTypeTotal struct {
	Total int64 `json:"total"`
	Count int64 `json:"count"`
}

type DailySummaryResponse struct {
	Date       string            `json:"date"`
	RegisterID *string           `json:"register_id"`
	Status     *string           `json:"status"`
	Income     MovementTypeTotal `json:"income"`
	Expense    MovementTypeTotal `json:"expense"`
	Adjustment MovementTypeTotal `json:"adjustment"`
	// NetCashFlow = income − expense + adjustment
	NetCashFlow int64 `json:"net_cash_flow"`
	// Same-day training payments with cash method, outside the ledger proper
	CashPayments MovementTypeTotal `json:"cash_payments"`
	// Derived, informational only — closing is never reconciled server-side
	OpeningBalance  *int64           `json:"opening_balance"`
	ExpectedBalance *int64           `json:"expected_balance"`
	AverageMovement *decimal.Decimal `json:"average_movement"`
	VariancePct     *decimal.Decimal `json:"variance_pct"`
}

type RegisterHistoryResponse struct {
	Data  []CashRegisterResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
