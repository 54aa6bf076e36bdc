package repository

import (
	"context"
	"time"

	"sportclub/internal/dto"
	"sportclub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	List(ctx context.Context, orgID uuid.UUID, filter dto.FinanceFilter) ([]model.TrainingPayment, int64, error)
	// SumCashByDate aggregates same-day cash payments for the daily summary.
	SumCashByDate(ctx context.Context, orgID uuid.UUID, date time.Time) (total int64, count int64, err error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, p *model.TrainingPayment) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) List(ctx context.Context, orgID uuid.UUID, filter dto.FinanceFilter) ([]model.TrainingPayment, int64, error) {
	var payments []model.TrainingPayment
	var total int64

	q := r.db.WithContext(ctx).Model(&model.TrainingPayment{}).Where("organization_id = ?", orgID)
	if filter.DateFrom != "" {
		q = q.Where("paid_at >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("paid_at < ?", filter.DateTo)
	}
	if filter.Method != "" {
		q = q.Where("payment_method = ?", filter.Method)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Athlete").Order("paid_at DESC").Limit(filter.Limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepo) SumCashByDate(ctx context.Context, orgID uuid.UUID, date time.Time) (int64, int64, error) {
	var row struct {
		Total int64
		Count int64
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	err := r.db.WithContext(ctx).Model(&model.TrainingPayment{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("organization_id = ? AND payment_method = ? AND paid_at >= ? AND paid_at < ?",
			orgID, model.PaymentMethodCash, dayStart, dayStart.AddDate(0, 0, 1)).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.TrainingPayment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) DB() *gorm.DB { return r.db }
