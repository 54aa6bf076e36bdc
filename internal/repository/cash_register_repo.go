package repository

import (
	"context"
	"time"

	"sportclub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TypeSum aggregates movement amounts per type for a register.
type TypeSum struct {
	Type  string
	Total int64
	Count int64
}

type CashRegisterRepository interface {
	Create(ctx context.Context, reg *model.CashRegister) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.CashRegister, error)
	FindByDate(ctx context.Context, orgID uuid.UUID, date time.Time) (*model.CashRegister, error)
	Update(ctx context.Context, reg *model.CashRegister) error
	ListRegisters(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.CashRegister, int64, error)

	CreateMovement(ctx context.Context, m *model.CashMovement) error
	ListMovements(ctx context.Context, orgID, registerID uuid.UUID) ([]model.CashMovement, error)
	SumMovementsByType(ctx context.Context, registerID uuid.UUID) ([]TypeSum, error)

	// Used inside transactions — callers must pass the tx instance
	CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type cashRegisterRepo struct{ db *gorm.DB }

func NewCashRegisterRepository(db *gorm.DB) CashRegisterRepository { return &cashRegisterRepo{db: db} }

func (r *cashRegisterRepo) Create(ctx context.Context, reg *model.CashRegister) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *cashRegisterRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.CashRegister, error) {
	var reg model.CashRegister
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&reg).Error
	return &reg, err
}

func (r *cashRegisterRepo) FindByDate(ctx context.Context, orgID uuid.UUID, date time.Time) (*model.CashRegister, error) {
	var reg model.CashRegister
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND date = ?", orgID, date.Format("2006-01-02")).
		First(&reg).Error
	return &reg, err
}

func (r *cashRegisterRepo) Update(ctx context.Context, reg *model.CashRegister) error {
	return r.db.WithContext(ctx).Save(reg).Error
}

func (r *cashRegisterRepo) ListRegisters(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.CashRegister, int64, error) {
	var regs []model.CashRegister
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CashRegister{}).Where("organization_id = ?", orgID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := q.Order("date DESC").Limit(limit).Offset(offset).Find(&regs).Error
	return regs, total, err
}

func (r *cashRegisterRepo) CreateMovement(ctx context.Context, m *model.CashMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cashRegisterRepo) ListMovements(ctx context.Context, orgID, registerID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND cash_register_id = ?", orgID, registerID).
		Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *cashRegisterRepo) SumMovementsByType(ctx context.Context, registerID uuid.UUID) ([]TypeSum, error) {
	var sums []TypeSum
	err := r.db.WithContext(ctx).Model(&model.CashMovement{}).
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("cash_register_id = ?", registerID).
		Group("type").Scan(&sums).Error
	return sums, err
}

func (r *cashRegisterRepo) CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error {
	return tx.Create(m).Error
}

func (r *cashRegisterRepo) DB() *gorm.DB { return r.db }
