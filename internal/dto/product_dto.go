package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string `json:"name"          validate:"required,min=2"`
	UnitPrice    int64  `json:"unit_price"    validate:"required,gt=0"`
	TrackStock   bool   `json:"track_stock"`
	InitialStock int    `json:"initial_stock" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name      *string `json:"name"       validate:"omitempty,min=2"`
	UnitPrice *int64  `json:"unit_price" validate:"omitempty,gt=0"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	UnitPrice    int64  `json:"unit_price"`
	TrackStock   bool   `json:"track_stock"`
	CurrentStock int    `json:"current_stock"`
	Active       bool   `json:"active"`
}

type StockTransactionResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"created_at"`
}
