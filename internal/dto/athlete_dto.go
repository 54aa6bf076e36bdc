package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateAthleteRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=2"`
	LastName  string  `json:"last_name"  validate:"required,min=2"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"      validate:"omitempty,min=6"`
}

type UpdateAthleteRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=2"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"      validate:"omitempty,min=6"`
}

// AthleteFilter composes the list predicate: empty fields add no condition.
type AthleteFilter struct {
	Search  string // matches first or last name
	Active  string // "false" = inactive, "all" = everyone, default active
	GroupID string
	Page    int
	Limit   int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AthleteResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
}

type AthleteListResponse struct {
	Data  []AthleteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
