package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateGroupRequest struct {
	Name       string `json:"name"        validate:"required,min=2"`
	Capacity   *int   `json:"capacity"    validate:"omitempty,min=1"`
	MonthlyFee int64  `json:"monthly_fee" validate:"min=0"`
}

type UpdateGroupRequest struct {
	Name       *string `json:"name"        validate:"omitempty,min=2"`
	Capacity   *int    `json:"capacity"    validate:"omitempty,min=1"`
	MonthlyFee *int64  `json:"monthly_fee" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GroupResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    *int   `json:"capacity"`
	MonthlyFee  int64  `json:"monthly_fee"`
	MemberCount int64  `json:"member_count"`
	Active      bool   `json:"active"`
}

type MemberResponse struct {
	ID        string `json:"id"`
	AthleteID string `json:"athlete_id"`
	Athlete   string `json:"athlete"`
	JoinedAt  string `json:"joined_at"`
}
