package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateWaitlistEntryRequest struct {
	AthleteID     string `json:"athlete_id"     validate:"required,uuid"`
	ReferenceType string `json:"reference_type" validate:"required,oneof=athlete_group schedule"`
	// Required when reference_type is athlete_group
	AthleteGroupID *string `json:"athlete_group_id" validate:"omitempty,uuid"`
	// Schedule preferences — only meaningful for schedule entries
	PreferredDays      *string `json:"preferred_days"       validate:"omitempty,max=100"`
	PreferredStartTime *string `json:"preferred_start_time" validate:"omitempty,len=5"`
	PreferredEndTime   *string `json:"preferred_end_time"   validate:"omitempty,len=5"`
	Priority           string  `json:"priority"             validate:"omitempty,oneof=low normal high"`
}

type BulkDeleteWaitlistRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

type BulkUpdatePriorityRequest struct {
	IDs      []string `json:"ids"      validate:"required,min=1,dive,uuid"`
	Priority string   `json:"priority" validate:"required,oneof=low normal high"`
}

// WaitlistFilter composes the list predicate: empty fields add no condition.
type WaitlistFilter struct {
	Statuses      []string // subset of waiting|assigned|cancelled
	ReferenceType string
	GroupID       string
	Search        string // athlete name
	Page          int
	Limit         int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type WaitlistEntryResponse struct {
	ID                 string  `json:"id"`
	AthleteID          string  `json:"athlete_id"`
	Athlete            string  `json:"athlete"`
	ReferenceType      string  `json:"reference_type"`
	AthleteGroupID     *string `json:"athlete_group_id"`
	Group              *string `json:"group"`
	PreferredDays      *string `json:"preferred_days"`
	PreferredStartTime *string `json:"preferred_start_time"`
	PreferredEndTime   *string `json:"preferred_end_time"`
	Priority           string  `json:"priority"`
	Position           int     `json:"position"`
	Status             string  `json:"status"`
	AssignedAt         *string `json:"assigned_at"`
	CreatedAt          string  `json:"created_at"`
}

type WaitlistListResponse struct {
	Data  []WaitlistEntryResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

type BulkResultResponse struct {
	Updated int `json:"updated"`
}
