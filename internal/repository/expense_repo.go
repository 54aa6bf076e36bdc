package repository

import (
	"context"

	"sportclub/internal/dto"
	"sportclub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	List(ctx context.Context, orgID uuid.UUID, filter dto.FinanceFilter) ([]model.Expense, int64, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, e *model.Expense) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) List(ctx context.Context, orgID uuid.UUID, filter dto.FinanceFilter) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Expense{}).Where("organization_id = ?", orgID)
	if filter.DateFrom != "" {
		q = q.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("date <= ?", filter.DateTo)
	}
	if filter.Method != "" {
		q = q.Where("payment_method = ?", filter.Method)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("date DESC, created_at DESC").Limit(filter.Limit).Offset(offset).Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepo) CreateTx(tx *gorm.DB, e *model.Expense) error {
	return tx.Create(e).Error
}

func (r *expenseRepo) DB() *gorm.DB { return r.db }
