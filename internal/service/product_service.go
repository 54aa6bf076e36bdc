package service

import (
	"context"
	"time"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, orgID, userID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, orgID uuid.UUID, includeInactive bool) ([]dto.ProductResponse, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	AdjustStock(ctx context.Context, orgID, userID, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	StockHistory(ctx context.Context, orgID, id uuid.UUID) ([]dto.StockTransactionResponse, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, orgID, userID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		OrganizationID: orgID,
		Name:           req.Name,
		UnitPrice:      req.UnitPrice,
		TrackStock:     req.TrackStock,
		CurrentStock:   req.InitialStock,
		Active:         true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Seed stock gets its own audit row so history starts from zero
	if req.TrackStock && req.InitialStock > 0 {
		st := &model.StockTransaction{
			OrganizationID: orgID,
			ProductID:      p.ID,
			Quantity:       req.InitialStock,
			StockBefore:    0,
			StockAfter:     req.InitialStock,
			Reason:         "initial_stock",
			RecordedBy:     userID,
		}
		if err := s.repo.CreateStockTransactionTx(s.repo.DB(), st); err != nil {
			return nil, err
		}
	}
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, orgID, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, orgID uuid.UUID, includeInactive bool) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, orgID, includeInactive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return items, nil
}

func (s *productService) Update(ctx context.Context, orgID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, orgID, id); err != nil {
		return apierror.NotFound("product not found")
	}
	return s.repo.SoftDelete(ctx, orgID, id)
}

// AdjustStock applies a manual signed stock correction with its audit row.
// Sales never go through here; they are recorded by the cash movement flow.
func (s *productService) AdjustStock(ctx context.Context, orgID, userID, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	if !p.TrackStock {
		return nil, apierror.BadRequest("product does not track stock")
	}
	if p.CurrentStock+req.Delta < 0 {
		return nil, apierror.BadRequest("adjustment would make stock negative")
	}

	before := p.CurrentStock
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			tx = s.repo.DB()
		}
		if err := s.repo.UpdateStockTx(tx, p.ID, req.Delta); err != nil {
			return err
		}
		st := &model.StockTransaction{
			OrganizationID: orgID,
			ProductID:      p.ID,
			Quantity:       req.Delta,
			StockBefore:    before,
			StockAfter:     before + req.Delta,
			Reason:         "manual_adjustment: " + req.Reason,
			RecordedBy:     userID,
		}
		return s.repo.CreateStockTransactionTx(tx, st)
	})
	if txErr != nil {
		return nil, txErr
	}

	p.CurrentStock = before + req.Delta
	return productToResponse(p), nil
}

func (s *productService) StockHistory(ctx context.Context, orgID, id uuid.UUID) ([]dto.StockTransactionResponse, error) {
	if _, err := s.repo.FindByID(ctx, orgID, id); err != nil {
		return nil, apierror.NotFound("product not found")
	}
	txs, err := s.repo.ListStockTransactions(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockTransactionResponse, 0, len(txs))
	for _, st := range txs {
		items = append(items, dto.StockTransactionResponse{
			ID:          st.ID.String(),
			ProductID:   st.ProductID.String(),
			Quantity:    st.Quantity,
			StockBefore: st.StockBefore,
			StockAfter:  st.StockAfter,
			Reason:      st.Reason,
			CreatedAt:   st.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		UnitPrice:    p.UnitPrice,
		TrackStock:   p.TrackStock,
		CurrentStock: p.CurrentStock,
		Active:       p.Active,
	}
}
