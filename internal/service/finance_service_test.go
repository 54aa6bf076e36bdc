package service_test

import (
	"context"
	"testing"

	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"
	"sportclub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeExpenseRepo struct {
	expenses []model.Expense
}

func (r *fakeExpenseRepo) List(_ context.Context, orgID uuid.UUID, _ dto.FinanceFilter) ([]model.Expense, int64, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if e.OrganizationID == orgID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeExpenseRepo) CreateTx(_ *gorm.DB, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *fakeExpenseRepo) DB() *gorm.DB { return nil }

var _ repository.ExpenseRepository = (*fakeExpenseRepo)(nil)

type financeFixture struct {
	svc         service.FinanceService
	registerSvc service.CashRegisterService
	expenseRepo *fakeExpenseRepo
	paymentRepo *fakePaymentRepo
	regRepo     *fakeRegisterRepo
	athRepo     *fakeAthleteRepo
	orgID       uuid.UUID
	userID      uuid.UUID
}

func newFinanceFixture() *financeFixture {
	f := &financeFixture{
		expenseRepo: &fakeExpenseRepo{},
		paymentRepo: &fakePaymentRepo{},
		regRepo:     newFakeRegisterRepo(),
		athRepo:     newFakeAthleteRepo(),
		orgID:       uuid.New(),
		userID:      uuid.New(),
	}
	f.svc = service.NewFinanceService(f.expenseRepo, f.paymentRepo, f.regRepo, f.athRepo, nil, nil)
	f.registerSvc = service.NewCashRegisterService(f.regRepo, newFakeProductRepo(), f.paymentRepo, nil)
	return f
}

func (f *financeFixture) openRegister(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := f.registerSvc.Open(context.Background(), f.orgID, f.userID, dto.OpenRegisterRequest{OpeningBalance: 10000})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

// ── Expenses ──────────────────────────────────────────────────────────────────

func TestCashExpenseCreatesLedgerMovement(t *testing.T) {
	f := newFinanceFixture()
	f.openRegister(t)

	resp, err := f.svc.CreateExpense(context.Background(), f.orgID, f.userID, dto.CreateExpenseRequest{
		Category: "equipment", Amount: 12000, Description: "new training cones",
		PaymentMethod: model.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), resp.Amount)

	require.Len(t, f.regRepo.movements, 1)
	mov := f.regRepo.movements[0]
	assert.Equal(t, model.MovementExpense, mov.Type)
	assert.Equal(t, int64(12000), mov.Amount)
	assert.Equal(t, model.MovementRefExpense, mov.ReferenceType)
	require.NotNil(t, mov.ReferenceID)
	assert.Equal(t, f.expenseRepo.expenses[0].ID, *mov.ReferenceID)
}

func TestTransferExpenseSkipsLedger(t *testing.T) {
	f := newFinanceFixture()
	// No register at all: non-cash expenses don't need one

	_, err := f.svc.CreateExpense(context.Background(), f.orgID, f.userID, dto.CreateExpenseRequest{
		Category: "rent", Amount: 500000, Description: "gym rent September",
		PaymentMethod: model.PaymentMethodTransfer,
	})
	require.NoError(t, err)
	assert.Len(t, f.expenseRepo.expenses, 1)
	assert.Empty(t, f.regRepo.movements)
}

func TestCashExpenseWithoutRegister(t *testing.T) {
	f := newFinanceFixture()

	_, err := f.svc.CreateExpense(context.Background(), f.orgID, f.userID, dto.CreateExpenseRequest{
		Category: "misc", Amount: 1000, Description: "cleaning supplies",
		PaymentMethod: model.PaymentMethodCash,
	})
	assert.ErrorContains(t, err, "no cash register")
	assert.Empty(t, f.expenseRepo.expenses)
}

func TestCashExpenseOnClosedRegister(t *testing.T) {
	f := newFinanceFixture()
	id := f.openRegister(t)
	_, err := f.registerSvc.Close(context.Background(), f.orgID, f.userID, id, dto.CloseRegisterRequest{})
	require.NoError(t, err)

	_, err = f.svc.CreateExpense(context.Background(), f.orgID, f.userID, dto.CreateExpenseRequest{
		Category: "misc", Amount: 1000, Description: "cleaning supplies",
		PaymentMethod: model.PaymentMethodCash,
	})
	assert.ErrorContains(t, err, "closed")
	assert.Empty(t, f.expenseRepo.expenses)
	assert.Empty(t, f.regRepo.movements)
}

// ── Training payments ─────────────────────────────────────────────────────────

func TestCashPaymentCreatesIncomeMovement(t *testing.T) {
	f := newFinanceFixture()
	f.openRegister(t)
	athlete := f.athRepo.add(f.orgID)

	resp, err := f.svc.CreatePayment(context.Background(), f.orgID, f.userID, dto.CreatePaymentRequest{
		AthleteID: athlete.ID.String(), Amount: 30000,
		PaymentMethod: model.PaymentMethodCash, Period: "2026-09",
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)
	assert.Equal(t, "2026-09", resp.Period)

	require.Len(t, f.regRepo.movements, 1)
	mov := f.regRepo.movements[0]
	assert.Equal(t, model.MovementIncome, mov.Type)
	assert.Equal(t, int64(30000), mov.Amount)
	assert.Equal(t, model.MovementRefTrainingPayment, mov.ReferenceType)
}

func TestCardPaymentSkipsLedger(t *testing.T) {
	f := newFinanceFixture()
	athlete := f.athRepo.add(f.orgID)

	_, err := f.svc.CreatePayment(context.Background(), f.orgID, f.userID, dto.CreatePaymentRequest{
		AthleteID: athlete.ID.String(), Amount: 30000,
		PaymentMethod: model.PaymentMethodCard, Period: "2026-09",
	})
	require.NoError(t, err)
	assert.Len(t, f.paymentRepo.payments, 1)
	assert.Empty(t, f.regRepo.movements)
}

func TestPaymentUnknownAthlete(t *testing.T) {
	f := newFinanceFixture()
	f.openRegister(t)

	_, err := f.svc.CreatePayment(context.Background(), f.orgID, f.userID, dto.CreatePaymentRequest{
		AthleteID: uuid.NewString(), Amount: 30000,
		PaymentMethod: model.PaymentMethodCash, Period: "2026-09",
	})
	assert.ErrorContains(t, err, "athlete not found")
	assert.Empty(t, f.paymentRepo.payments)
}

func TestCashPaymentWithoutRegister(t *testing.T) {
	f := newFinanceFixture()
	athlete := f.athRepo.add(f.orgID)

	_, err := f.svc.CreatePayment(context.Background(), f.orgID, f.userID, dto.CreatePaymentRequest{
		AthleteID: athlete.ID.String(), Amount: 30000,
		PaymentMethod: model.PaymentMethodCash, Period: "2026-09",
	})
	assert.ErrorContains(t, err, "no cash register")
	assert.Empty(t, f.paymentRepo.payments)
}

// Cross-check: a cash payment shows up both as an income movement and in the
// daily summary's cash payments bucket, without double counting net flow.
func TestCashPaymentReflectedInDailySummary(t *testing.T) {
	f := newFinanceFixture()
	f.openRegister(t)
	athlete := f.athRepo.add(f.orgID)

	_, err := f.svc.CreatePayment(context.Background(), f.orgID, f.userID, dto.CreatePaymentRequest{
		AthleteID: athlete.ID.String(), Amount: 30000,
		PaymentMethod: model.PaymentMethodCash, Period: "2026-09",
	})
	require.NoError(t, err)

	summary, err := f.registerSvc.GetDailySummary(context.Background(), f.orgID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), summary.Income.Total)
	assert.Equal(t, int64(30000), summary.CashPayments.Total)
	assert.Equal(t, int64(30000), summary.NetCashFlow)
}
