package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateExpenseRequest struct {
	Category      string  `json:"category"       validate:"required,min=2"`
	Amount        int64   `json:"amount"         validate:"required,gt=0"`
	Description   string  `json:"description"    validate:"required,min=3"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash transfer card"`
	Date          *string `json:"date"           validate:"omitempty,datetime=2006-01-02"`
}

type CreatePaymentRequest struct {
	AthleteID     string `json:"athlete_id"     validate:"required,uuid"`
	Amount        int64  `json:"amount"         validate:"required,gt=0"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash transfer card"`
	Period        string `json:"period"         validate:"required,len=7"`
}

// FinanceFilter composes list predicates for expenses and payments.
type FinanceFilter struct {
	DateFrom string
	DateTo   string
	Method   string
	Page     int
	Limit    int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ExpenseResponse struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
	PaymentMethod string `json:"payment_method"`
	Date          string `json:"date"`
	CreatedAt     string `json:"created_at"`
}

type PaymentResponse struct {
	ID            string `json:"id"`
	AthleteID     string `json:"athlete_id"`
	Athlete       string `json:"athlete"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Period        string `json:"period"`
	Status        string `json:"status"`
	PaidAt        string `json:"paid_at"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type PaymentListResponse struct {
	Data  []PaymentResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
