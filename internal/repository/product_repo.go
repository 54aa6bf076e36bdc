package repository

import (
	"context"

	"sportclub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, orgID uuid.UUID, includeInactive bool) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	ListStockTransactions(ctx context.Context, orgID, productID uuid.UUID) ([]model.StockTransaction, error)

	// Used inside transactions — callers must pass the tx instance
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	CreateStockTransactionTx(tx *gorm.DB, st *model.StockTransaction) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, orgID uuid.UUID, includeInactive bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Where("organization_id = ?", orgID)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Update("active", false).Error
}

func (r *productRepo) ListStockTransactions(ctx context.Context, orgID, productID uuid.UUID) ([]model.StockTransaction, error) {
	var txs []model.StockTransaction
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND product_id = ?", orgID, productID).
		Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("current_stock", gorm.Expr("current_stock + ?", delta)).Error
}

func (r *productRepo) CreateStockTransactionTx(tx *gorm.DB, st *model.StockTransaction) error {
	return tx.Create(st).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
