package repository

import (
	"context"

	"sportclub/internal/dto"
	"sportclub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.WaitlistEntry, error)
	FindWaitingByAthleteAndGroup(ctx context.Context, orgID, athleteID, groupID uuid.UUID) (*model.WaitlistEntry, error)
	List(ctx context.Context, orgID uuid.UUID, filter dto.WaitlistFilter) ([]model.WaitlistEntry, int64, error)
	UpdateStatusBulk(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, status string) (int64, error)
	UpdatePriorityBulk(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, priority string) (int64, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, e *model.WaitlistEntry) error
	UpdateTx(tx *gorm.DB, e *model.WaitlistEntry) error
	// MaxWaitingPosition returns the highest position among waiting entries in
	// the given scope (group for athlete_group entries, nil for schedule).
	MaxWaitingPosition(tx *gorm.DB, orgID uuid.UUID, referenceType string, groupID *uuid.UUID) (int, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type waitlistRepo struct{ db *gorm.DB }

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository { return &waitlistRepo{db: db} }

func (r *waitlistRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.WaitlistEntry, error) {
	var e model.WaitlistEntry
	err := r.db.WithContext(ctx).Preload("Athlete").Preload("Group").
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&e).Error
	return &e, err
}

func (r *waitlistRepo) FindWaitingByAthleteAndGroup(ctx context.Context, orgID, athleteID, groupID uuid.UUID) (*model.WaitlistEntry, error) {
	var e model.WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND athlete_id = ? AND athlete_group_id = ? AND status = ?",
			orgID, athleteID, groupID, model.WaitlistStatusWaiting).
		First(&e).Error
	return &e, err
}

func (r *waitlistRepo) List(ctx context.Context, orgID uuid.UUID, filter dto.WaitlistFilter) ([]model.WaitlistEntry, int64, error) {
	var entries []model.WaitlistEntry
	var total int64

	q := r.db.WithContext(ctx).Model(&model.WaitlistEntry{}).Where("organization_id = ?", orgID)

	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.ReferenceType != "" {
		q = q.Where("reference_type = ?", filter.ReferenceType)
	}
	if filter.GroupID != "" {
		q = q.Where("athlete_group_id = ?", filter.GroupID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("athlete_id IN (SELECT id FROM athletes WHERE first_name ILIKE ? OR last_name ILIKE ?)", like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	// Priority is advisory display ordering; position breaks ties within a scope
	err := q.Preload("Athlete").Preload("Group").
		Order("CASE priority WHEN 'high' THEN 0 WHEN 'normal' THEN 1 ELSE 2 END, position ASC").
		Limit(filter.Limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *waitlistRepo) UpdateStatusBulk(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.WaitlistEntry{}).
		Where("organization_id = ? AND id IN ? AND status = ?", orgID, ids, model.WaitlistStatusWaiting).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *waitlistRepo) UpdatePriorityBulk(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, priority string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.WaitlistEntry{}).
		Where("organization_id = ? AND id IN ?", orgID, ids).
		Update("priority", priority)
	return res.RowsAffected, res.Error
}

func (r *waitlistRepo) CreateTx(tx *gorm.DB, e *model.WaitlistEntry) error {
	return tx.Create(e).Error
}

func (r *waitlistRepo) UpdateTx(tx *gorm.DB, e *model.WaitlistEntry) error {
	return tx.Save(e).Error
}

func (r *waitlistRepo) MaxWaitingPosition(tx *gorm.DB, orgID uuid.UUID, referenceType string, groupID *uuid.UUID) (int, error) {
	var max int
	q := tx.Model(&model.WaitlistEntry{}).
		Select("COALESCE(MAX(position), 0)").
		Where("organization_id = ? AND reference_type = ? AND status = ?",
			orgID, referenceType, model.WaitlistStatusWaiting)
	if groupID != nil {
		q = q.Where("athlete_group_id = ?", *groupID)
	}
	err := q.Scan(&max).Error
	return max, err
}

func (r *waitlistRepo) DB() *gorm.DB { return r.db }
