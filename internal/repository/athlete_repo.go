package repository

import (
	"context"

	"sportclub/internal/dto"
	"sportclub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AthleteRepository defines the data access contract for athlete profiles.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type AthleteRepository interface {
	Create(ctx context.Context, a *model.Athlete) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Athlete, error)
	List(ctx context.Context, orgID uuid.UUID, filter dto.AthleteFilter) ([]model.Athlete, int64, error)
	Update(ctx context.Context, a *model.Athlete) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
}

type athleteRepo struct{ db *gorm.DB }

func NewAthleteRepository(db *gorm.DB) AthleteRepository { return &athleteRepo{db: db} }

func (r *athleteRepo) Create(ctx context.Context, a *model.Athlete) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *athleteRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Athlete, error) {
	var a model.Athlete
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&a).Error
	return &a, err
}

func (r *athleteRepo) List(ctx context.Context, orgID uuid.UUID, filter dto.AthleteFilter) ([]model.Athlete, int64, error) {
	var athletes []model.Athlete
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Athlete{}).Where("organization_id = ?", orgID)

	// Active filter: "false" = inactive, "all" = everyone, default active
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ?", like, like)
	}
	if filter.GroupID != "" {
		q = q.Where("id IN (SELECT athlete_id FROM group_memberships WHERE athlete_group_id = ?)", filter.GroupID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("last_name ASC, first_name ASC").Limit(filter.Limit).Offset(offset).Find(&athletes).Error
	return athletes, total, err
}

func (r *athleteRepo) Update(ctx context.Context, a *model.Athlete) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *athleteRepo) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Athlete{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Update("active", false).Error
}
