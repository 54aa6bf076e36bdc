package repository

import (
	"context"

	"sportclub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepository interface {
	Create(ctx context.Context, g *model.AthleteGroup) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.AthleteGroup, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.AthleteGroup, error)
	Update(ctx context.Context, g *model.AthleteGroup) error
	CountMembers(ctx context.Context, groupID uuid.UUID) (int64, error)
	ListMembers(ctx context.Context, orgID, groupID uuid.UUID) ([]model.GroupMembership, error)
	FindMembership(ctx context.Context, groupID, athleteID uuid.UUID) (*model.GroupMembership, error)

	// Used inside transactions — callers must pass the tx instance
	CreateMembershipTx(tx *gorm.DB, m *model.GroupMembership) error
}

type groupRepo struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) GroupRepository { return &groupRepo{db: db} }

func (r *groupRepo) Create(ctx context.Context, g *model.AthleteGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *groupRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.AthleteGroup, error) {
	var g model.AthleteGroup
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&g).Error
	return &g, err
}

func (r *groupRepo) List(ctx context.Context, orgID uuid.UUID) ([]model.AthleteGroup, error) {
	var groups []model.AthleteGroup
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND active = true", orgID).
		Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *groupRepo) Update(ctx context.Context, g *model.AthleteGroup) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *groupRepo) CountMembers(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.GroupMembership{}).
		Where("athlete_group_id = ?", groupID).Count(&n).Error
	return n, err
}

func (r *groupRepo) ListMembers(ctx context.Context, orgID, groupID uuid.UUID) ([]model.GroupMembership, error) {
	var members []model.GroupMembership
	err := r.db.WithContext(ctx).Preload("Athlete").
		Where("organization_id = ? AND athlete_group_id = ?", orgID, groupID).
		Order("joined_at ASC").Find(&members).Error
	return members, err
}

func (r *groupRepo) FindMembership(ctx context.Context, groupID, athleteID uuid.UUID) (*model.GroupMembership, error) {
	var m model.GroupMembership
	err := r.db.WithContext(ctx).
		Where("athlete_group_id = ? AND athlete_id = ?", groupID, athleteID).
		First(&m).Error
	return &m, err
}

func (r *groupRepo) CreateMembershipTx(tx *gorm.DB, m *model.GroupMembership) error {
	return tx.Create(m).Error
}
