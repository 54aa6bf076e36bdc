package service

import (
	"context"
	"fmt"
	"time"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"
	"sportclub/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FinanceService interface {
	CreateExpense(ctx context.Context, orgID, userID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	ListExpenses(ctx context.Context, orgID uuid.UUID, filter dto.FinanceFilter) (*dto.ExpenseListResponse, error)
	CreatePayment(ctx context.Context, orgID, userID uuid.UUID, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, orgID uuid.UUID, filter dto.FinanceFilter) (*dto.PaymentListResponse, error)
}

type financeService struct {
	expenseRepo  repository.ExpenseRepository
	paymentRepo  repository.PaymentRepository
	registerRepo repository.CashRegisterRepository
	athleteRepo  repository.AthleteRepository
	dispatcher   *worker.Dispatcher
	cache        *summaryCache
}

func NewFinanceService(
	expenseRepo repository.ExpenseRepository,
	paymentRepo repository.PaymentRepository,
	registerRepo repository.CashRegisterRepository,
	athleteRepo repository.AthleteRepository,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) FinanceService {
	return &financeService{
		expenseRepo:  expenseRepo,
		paymentRepo:  paymentRepo,
		registerRepo: registerRepo,
		athleteRepo:  athleteRepo,
		dispatcher:   dispatcher,
		cache:        newSummaryCache(rdb),
	}
}

// openRegisterForToday resolves today's register for cash-method records.
// Non-cash methods never touch the ledger and skip this check entirely.
func (s *financeService) openRegisterForToday(ctx context.Context, orgID uuid.UUID) (*model.CashRegister, error) {
	reg, err := s.registerRepo.FindByDate(ctx, orgID, today())
	if err != nil {
		return nil, apierror.NotFound("no cash register for today; open one before recording cash operations")
	}
	if reg.Status != model.RegisterStatusOpen {
		return nil, apierror.BadRequest("cash register is closed")
	}
	return reg, nil
}

// ── Expenses ──────────────────────────────────────────────────────────────────

func (s *financeService) CreateExpense(ctx context.Context, orgID, userID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	date := today()
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, apierror.BadRequest("invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	var reg *model.CashRegister
	if req.PaymentMethod == model.PaymentMethodCash {
		var err error
		if reg, err = s.openRegisterForToday(ctx, orgID); err != nil {
			return nil, err
		}
	}

	exp := &model.Expense{
		OrganizationID: orgID,
		Category:       req.Category,
		Amount:         req.Amount,
		Description:    req.Description,
		PaymentMethod:  req.PaymentMethod,
		Date:           date,
		CreatedBy:      userID,
	}

	txErr := runTx(ctx, s.expenseRepo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			tx = s.expenseRepo.DB()
		}
		if err := s.expenseRepo.CreateTx(tx, exp); err != nil {
			return err
		}
		if reg == nil {
			return nil
		}
		mov := &model.CashMovement{
			CashRegisterID: reg.ID,
			OrganizationID: orgID,
			Type:           model.MovementExpense,
			Amount:         req.Amount,
			Description:    fmt.Sprintf("%s: %s", req.Category, req.Description),
			ReferenceType:  model.MovementRefExpense,
			ReferenceID:    &exp.ID,
			RecordedBy:     userID,
		}
		return s.registerRepo.CreateMovementTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	if reg != nil {
		s.cache.Invalidate(ctx, orgID, reg.Date)
	}
	return expenseToResponse(exp), nil
}

func (s *financeService) ListExpenses(ctx context.Context, orgID uuid.UUID, filter dto.FinanceFilter) (*dto.ExpenseListResponse, error) {
	normalizeFinanceFilter(&filter)
	expenses, total, err := s.expenseRepo.List(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		items = append(items, *expenseToResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Training payments ─────────────────────────────────────────────────────────

func (s *financeService) CreatePayment(ctx context.Context, orgID, userID uuid.UUID, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	athleteID, err := uuid.Parse(req.AthleteID)
	if err != nil {
		return nil, apierror.BadRequest("invalid athlete_id")
	}
	athlete, err := s.athleteRepo.FindByID(ctx, orgID, athleteID)
	if err != nil {
		return nil, apierror.NotFound("athlete not found")
	}

	var reg *model.CashRegister
	if req.PaymentMethod == model.PaymentMethodCash {
		if reg, err = s.openRegisterForToday(ctx, orgID); err != nil {
			return nil, err
		}
	}

	payment := &model.TrainingPayment{
		OrganizationID: orgID,
		AthleteID:      athleteID,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		Period:         req.Period,
		Status:         "paid",
		PaidAt:         time.Now(),
		RecordedBy:     userID,
	}

	txErr := runTx(ctx, s.paymentRepo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			tx = s.paymentRepo.DB()
		}
		if err := s.paymentRepo.CreateTx(tx, payment); err != nil {
			return err
		}
		if reg == nil {
			return nil
		}
		mov := &model.CashMovement{
			CashRegisterID: reg.ID,
			OrganizationID: orgID,
			Type:           model.MovementIncome,
			Amount:         req.Amount,
			Description:    fmt.Sprintf("Training fee %s - %s %s", req.Period, athlete.FirstName, athlete.LastName),
			ReferenceType:  model.MovementRefTrainingPayment,
			ReferenceID:    &payment.ID,
			RecordedBy:     userID,
		}
		return s.registerRepo.CreateMovementTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	if reg != nil {
		s.cache.Invalidate(ctx, orgID, reg.Date)
	}

	if s.dispatcher != nil && athlete.Email != nil && *athlete.Email != "" {
		err := s.dispatcher.EnqueueNotification(ctx, worker.NotificationPayload{
			To:      *athlete.Email,
			Subject: fmt.Sprintf("Payment receipt - %s", req.Period),
			Body: fmt.Sprintf("Hi %s,\n\nWe received your training payment of %d.%02d for %s. Thank you!",
				athlete.FirstName, req.Amount/100, req.Amount%100, req.Period),
		})
		if err != nil {
			log.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to enqueue receipt email")
		}
	}

	payment.Athlete = athlete
	return paymentToResponse(payment), nil
}

func (s *financeService) ListPayments(ctx context.Context, orgID uuid.UUID, filter dto.FinanceFilter) (*dto.PaymentListResponse, error) {
	normalizeFinanceFilter(&filter)
	payments, total, err := s.paymentRepo.List(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, *paymentToResponse(&payments[i]))
	}
	return &dto.PaymentListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func normalizeFinanceFilter(f *dto.FinanceFilter) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:            e.ID.String(),
		Category:      e.Category,
		Amount:        e.Amount,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		Date:          e.Date.Format("2006-01-02"),
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

func paymentToResponse(p *model.TrainingPayment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:            p.ID.String(),
		AthleteID:     p.AthleteID.String(),
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Period:        p.Period,
		Status:        p.Status,
		PaidAt:        p.PaidAt.Format(time.RFC3339),
	}
	if p.Athlete != nil {
		resp.Athlete = p.Athlete.FirstName + " " + p.Athlete.LastName
	}
	return resp
}
