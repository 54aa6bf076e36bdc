package service

import (
	"context"
	"fmt"
	"time"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashRegisterService interface {
	Open(ctx context.Context, orgID, userID uuid.UUID, req dto.OpenRegisterRequest) (*dto.CashRegisterResponse, error)
	Close(ctx context.Context, orgID, userID, id uuid.UUID, req dto.CloseRegisterRequest) (*dto.CashRegisterResponse, error)
	AddManualMovement(ctx context.Context, orgID, userID uuid.UUID, req dto.AddMovementRequest) (*dto.CashMovementResponse, error)
	GetDailySummary(ctx context.Context, orgID uuid.UUID, date *time.Time) (*dto.DailySummaryResponse, error)
	ListMovements(ctx context.Context, orgID, id uuid.UUID) ([]dto.CashMovementResponse, error)
	History(ctx context.Context, orgID uuid.UUID, page, limit int) (*dto.RegisterHistoryResponse, error)
	// DayReport returns the raw register and movements for PDF rendering
	DayReport(ctx context.Context, orgID, id uuid.UUID) (*model.CashRegister, []model.CashMovement, error)
}

type cashRegisterService struct {
	repo        repository.CashRegisterRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentRepository
	cache       *summaryCache
}

func NewCashRegisterService(
	repo repository.CashRegisterRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
	rdb *redis.Client,
) CashRegisterService {
	return &cashRegisterService{
		repo:        repo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		cache:       newSummaryCache(rdb),
	}
}

// today returns the current calendar day at day granularity.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ── Open ──────────────────────────────────────────────────────────────────────
// Exactly one register per (organization, date); the unique index backs up
// the existence check under concurrent opens.

func (s *cashRegisterService) Open(ctx context.Context, orgID, userID uuid.UUID, req dto.OpenRegisterRequest) (*dto.CashRegisterResponse, error) {
	day := today()
	if _, err := s.repo.FindByDate(ctx, orgID, day); err == nil {
		return nil, apierror.Conflict("cash register already opened for today")
	}

	reg := &model.CashRegister{
		OrganizationID: orgID,
		Date:           day,
		OpeningBalance: req.OpeningBalance,
		Status:         model.RegisterStatusOpen,
		OpenedBy:       userID,
		Notes:          req.Notes,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return registerToResponse(reg), nil
}

// ── Close ─────────────────────────────────────────────────────────────────────
// One-way transition. The closing balance is the caller's declaration; the
// server never reconciles it against movements — the day report exposes the
// expected balance for whoever wants to compare.

func (s *cashRegisterService) Close(ctx context.Context, orgID, userID, id uuid.UUID, req dto.CloseRegisterRequest) (*dto.CashRegisterResponse, error) {
	reg, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("cash register not found")
	}
	if reg.Status != model.RegisterStatusOpen {
		return nil, apierror.BadRequest("cash register is already closed")
	}

	now := time.Now()
	closing := req.ClosingBalance
	reg.ClosingBalance = &closing
	reg.Status = model.RegisterStatusClosed
	reg.ClosedBy = &userID
	reg.ClosedAt = &now
	if req.Notes != nil {
		reg.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, orgID, reg.Date)
	return registerToResponse(reg), nil
}

// ── AddManualMovement ─────────────────────────────────────────────────────────
// Movements are immutable — there is no update or delete path. When products
// are attached, the whole batch is validated before any write, and the
// movement insert, stock decrements and audit rows commit in one transaction.

func (s *cashRegisterService) AddManualMovement(ctx context.Context, orgID, userID uuid.UUID, req dto.AddMovementRequest) (*dto.CashMovementResponse, error) {
	if req.Type != model.MovementAdjustment && req.Amount <= 0 {
		return nil, apierror.BadRequest("amount must be positive for income and expense movements")
	}

	day := today()
	reg, err := s.repo.FindByDate(ctx, orgID, day)
	if err != nil {
		return nil, apierror.NotFound("no cash register for today")
	}
	if reg.Status != model.RegisterStatusOpen {
		return nil, apierror.BadRequest("cash register is closed")
	}

	// Pre-flight validation of the full product batch before any mutation
	type resolvedLine struct {
		product     *model.Product
		quantity    int
		stockBefore int
	}
	var resolved []resolvedLine
	for _, line := range req.Products {
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, apierror.BadRequest("invalid product_id")
		}
		p, err := s.productRepo.FindByID(ctx, orgID, pid)
		if err != nil {
			return nil, apierror.NotFound(fmt.Sprintf("product %s not found", line.ProductID))
		}
		if !p.Active {
			return nil, apierror.BadRequest(fmt.Sprintf("product %s is inactive", p.Name))
		}
		if p.TrackStock && p.CurrentStock < line.Quantity {
			return nil, apierror.BadRequest(fmt.Sprintf("insufficient stock for %s", p.Name))
		}
		resolved = append(resolved, resolvedLine{product: p, quantity: line.Quantity, stockBefore: p.CurrentStock})
	}

	refType := model.MovementRefManual
	if len(resolved) > 0 {
		refType = model.MovementRefProductSale
	}

	mov := &model.CashMovement{
		CashRegisterID: reg.ID,
		OrganizationID: orgID,
		Type:           req.Type,
		Amount:         req.Amount,
		Description:    req.Description,
		ReferenceType:  refType,
		RecordedBy:     userID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			tx = s.repo.DB()
		}
		if err := s.repo.CreateMovementTx(tx, mov); err != nil {
			return err
		}
		for _, line := range resolved {
			if !line.product.TrackStock {
				continue
			}
			if err := s.productRepo.UpdateStockTx(tx, line.product.ID, -line.quantity); err != nil {
				return err
			}
			movRef := mov.ID
			st := &model.StockTransaction{
				OrganizationID: orgID,
				ProductID:      line.product.ID,
				Quantity:       -line.quantity,
				StockBefore:    line.stockBefore,
				StockAfter:     line.stockBefore - line.quantity,
				Reason:         "sale",
				CashMovementID: &movRef,
				RecordedBy:     userID,
			}
			if err := s.productRepo.CreateStockTransactionTx(tx, st); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx, orgID, day)
	return movementToResponse(mov), nil
}

// ── GetDailySummary ───────────────────────────────────────────────────────────
// Pure read. netCashFlow = income − expense + adjustment. Same-day cash
// training payments are reported separately; they already appear in the
// ledger as income movements, so they are never added twice.

func (s *cashRegisterService) GetDailySummary(ctx context.Context, orgID uuid.UUID, date *time.Time) (*dto.DailySummaryResponse, error) {
	day := today()
	if date != nil {
		day = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	}

	if cached := s.cache.Get(ctx, orgID, day); cached != nil {
		return cached, nil
	}

	summary := &dto.DailySummaryResponse{Date: day.Format("2006-01-02")}

	payTotal, payCount, err := s.paymentRepo.SumCashByDate(ctx, orgID, day)
	if err != nil {
		return nil, err
	}
	summary.CashPayments = dto.MovementTypeTotal{Total: payTotal, Count: payCount}

	reg, err := s.repo.FindByDate(ctx, orgID, day)
	if err != nil {
		// No register that day: payments still reported, ledger totals zero
		s.cache.Set(ctx, orgID, day, summary)
		return summary, nil
	}

	regID := reg.ID.String()
	summary.RegisterID = &regID
	summary.Status = &reg.Status
	opening := reg.OpeningBalance
	summary.OpeningBalance = &opening

	sums, err := s.repo.SumMovementsByType(ctx, reg.ID)
	if err != nil {
		return nil, err
	}
	for _, ts := range sums {
		switch ts.Type {
		case model.MovementIncome:
			summary.Income = dto.MovementTypeTotal{Total: ts.Total, Count: ts.Count}
		case model.MovementExpense:
			summary.Expense = dto.MovementTypeTotal{Total: ts.Total, Count: ts.Count}
		case model.MovementAdjustment:
			summary.Adjustment = dto.MovementTypeTotal{Total: ts.Total, Count: ts.Count}
		}
	}
	summary.NetCashFlow = summary.Income.Total - summary.Expense.Total + summary.Adjustment.Total

	expected := reg.OpeningBalance + summary.NetCashFlow
	summary.ExpectedBalance = &expected

	// Derived stats — informational only
	count := summary.Income.Count + summary.Expense.Count + summary.Adjustment.Count
	if count > 0 {
		gross := summary.Income.Total + summary.Expense.Total + abs64(summary.Adjustment.Total)
		avg := decimal.NewFromInt(gross).Div(decimal.NewFromInt(count)).Round(2)
		summary.AverageMovement = &avg
	}
	if reg.Status == model.RegisterStatusClosed && reg.ClosingBalance != nil && expected != 0 {
		variance := decimal.NewFromInt(*reg.ClosingBalance - expected).
			Div(decimal.NewFromInt(expected)).
			Mul(decimal.NewFromInt(100)).Round(2)
		summary.VariancePct = &variance
	}

	s.cache.Set(ctx, orgID, day, summary)
	return summary, nil
}

// ── ListMovements / History / DayReport ───────────────────────────────────────

func (s *cashRegisterService) ListMovements(ctx context.Context, orgID, id uuid.UUID) ([]dto.CashMovementResponse, error) {
	if _, err := s.repo.FindByID(ctx, orgID, id); err != nil {
		return nil, apierror.NotFound("cash register not found")
	}
	movs, err := s.repo.ListMovements(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashMovementResponse, 0, len(movs))
	for i := range movs {
		items = append(items, *movementToResponse(&movs[i]))
	}
	return items, nil
}

func (s *cashRegisterService) History(ctx context.Context, orgID uuid.UUID, page, limit int) (*dto.RegisterHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	regs, total, err := s.repo.ListRegisters(ctx, orgID, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashRegisterResponse, 0, len(regs))
	for i := range regs {
		items = append(items, *registerToResponse(&regs[i]))
	}
	return &dto.RegisterHistoryResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *cashRegisterService) DayReport(ctx context.Context, orgID, id uuid.UUID) (*model.CashRegister, []model.CashMovement, error) {
	reg, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, nil, apierror.NotFound("cash register not found")
	}
	movs, err := s.repo.ListMovements(ctx, orgID, id)
	if err != nil {
		return nil, nil, err
	}
	return reg, movs, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func registerToResponse(reg *model.CashRegister) *dto.CashRegisterResponse {
	resp := &dto.CashRegisterResponse{
		ID:             reg.ID.String(),
		Date:           reg.Date.Format("2006-01-02"),
		OpeningBalance: reg.OpeningBalance,
		ClosingBalance: reg.ClosingBalance,
		Status:         reg.Status,
		Notes:          reg.Notes,
		CreatedAt:      reg.CreatedAt.Format(time.RFC3339),
	}
	if reg.ClosedAt != nil {
		at := reg.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &at
	}
	return resp
}

func movementToResponse(m *model.CashMovement) *dto.CashMovementResponse {
	return &dto.CashMovementResponse{
		ID:            m.ID.String(),
		Type:          m.Type,
		Amount:        m.Amount,
		Description:   m.Description,
		ReferenceType: m.ReferenceType,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
