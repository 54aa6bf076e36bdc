package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"
	"sportclub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory fakes ───────────────────────────────────────────────────────────

type fakeRegisterRepo struct {
	registers map[uuid.UUID]*model.CashRegister
	movements []model.CashMovement
}

func newFakeRegisterRepo() *fakeRegisterRepo {
	return &fakeRegisterRepo{registers: make(map[uuid.UUID]*model.CashRegister)}
}

func (r *fakeRegisterRepo) Create(_ context.Context, reg *model.CashRegister) error {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	reg.CreatedAt = time.Now()
	r.registers[reg.ID] = reg
	return nil
}

func (r *fakeRegisterRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*model.CashRegister, error) {
	reg, ok := r.registers[id]
	if !ok || reg.OrganizationID != orgID {
		return nil, errors.New("not found")
	}
	return reg, nil
}

func (r *fakeRegisterRepo) FindByDate(_ context.Context, orgID uuid.UUID, date time.Time) (*model.CashRegister, error) {
	day := date.Format("2006-01-02")
	for _, reg := range r.registers {
		if reg.OrganizationID == orgID && reg.Date.Format("2006-01-02") == day {
			return reg, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeRegisterRepo) Update(_ context.Context, reg *model.CashRegister) error {
	r.registers[reg.ID] = reg
	return nil
}

func (r *fakeRegisterRepo) ListRegisters(_ context.Context, orgID uuid.UUID, page, limit int) ([]model.CashRegister, int64, error) {
	var all []model.CashRegister
	for _, reg := range r.registers {
		if reg.OrganizationID == orgID {
			all = append(all, *reg)
		}
	}
	return all, int64(len(all)), nil
}

func (r *fakeRegisterRepo) CreateMovement(_ context.Context, m *model.CashMovement) error {
	return r.CreateMovementTx(nil, m)
}

func (r *fakeRegisterRepo) ListMovements(_ context.Context, orgID, registerID uuid.UUID) ([]model.CashMovement, error) {
	var out []model.CashMovement
	for _, m := range r.movements {
		if m.OrganizationID == orgID && m.CashRegisterID == registerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRegisterRepo) SumMovementsByType(_ context.Context, registerID uuid.UUID) ([]repository.TypeSum, error) {
	byType := map[string]*repository.TypeSum{}
	for _, m := range r.movements {
		if m.CashRegisterID != registerID {
			continue
		}
		ts, ok := byType[m.Type]
		if !ok {
			ts = &repository.TypeSum{Type: m.Type}
			byType[m.Type] = ts
		}
		ts.Total += m.Amount
		ts.Count++
	}
	var out []repository.TypeSum
	for _, ts := range byType {
		out = append(out, *ts)
	}
	return out, nil
}

func (r *fakeRegisterRepo) CreateMovementTx(_ *gorm.DB, m *model.CashMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeRegisterRepo) DB() *gorm.DB { return nil }

var _ repository.CashRegisterRepository = (*fakeRegisterRepo)(nil)

type fakeProductRepo struct {
	products     map[uuid.UUID]*model.Product
	transactions []model.StockTransaction
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) add(orgID uuid.UUID, stock int, track bool) *model.Product {
	p := &model.Product{
		ID: uuid.New(), OrganizationID: orgID, Name: "Isotonic drink",
		UnitPrice: 1500, TrackStock: track, CurrentStock: stock, Active: true,
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.OrganizationID != orgID {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context, orgID uuid.UUID, includeInactive bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.OrganizationID == orgID && (includeInactive || p.Active) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, _, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *fakeProductRepo) ListStockTransactions(_ context.Context, _, productID uuid.UUID) ([]model.StockTransaction, error) {
	var out []model.StockTransaction
	for _, st := range r.transactions {
		if st.ProductID == productID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.CurrentStock += delta
	return nil
}

func (r *fakeProductRepo) CreateStockTransactionTx(_ *gorm.DB, st *model.StockTransaction) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	r.transactions = append(r.transactions, *st)
	return nil
}

func (r *fakeProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

type fakePaymentRepo struct {
	payments []model.TrainingPayment
}

func (r *fakePaymentRepo) List(_ context.Context, orgID uuid.UUID, _ dto.FinanceFilter) ([]model.TrainingPayment, int64, error) {
	var out []model.TrainingPayment
	for _, p := range r.payments {
		if p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) SumCashByDate(_ context.Context, orgID uuid.UUID, date time.Time) (int64, int64, error) {
	var total, count int64
	day := date.Format("2006-01-02")
	for _, p := range r.payments {
		if p.OrganizationID == orgID && p.PaymentMethod == model.PaymentMethodCash &&
			p.PaidAt.Format("2006-01-02") == day {
			total += p.Amount
			count++
		}
	}
	return total, count, nil
}

func (r *fakePaymentRepo) CreateTx(_ *gorm.DB, p *model.TrainingPayment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakePaymentRepo) DB() *gorm.DB { return nil }

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func newRegisterFixture() (service.CashRegisterService, *fakeRegisterRepo, *fakeProductRepo, *fakePaymentRepo, uuid.UUID) {
	regRepo := newFakeRegisterRepo()
	prodRepo := newFakeProductRepo()
	payRepo := &fakePaymentRepo{}
	orgID := uuid.New()
	svc := service.NewCashRegisterService(regRepo, prodRepo, payRepo, nil)
	return svc, regRepo, prodRepo, payRepo, orgID
}

func TestOpenRegister(t *testing.T) {
	svc, _, _, _, orgID := newRegisterFixture()

	resp, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{OpeningBalance: 50000})
	require.NoError(t, err)
	assert.Equal(t, model.RegisterStatusOpen, resp.Status)
	assert.Equal(t, int64(50000), resp.OpeningBalance)
}

func TestOpenRegisterTwiceSameDayConflict(t *testing.T) {
	svc, _, _, _, orgID := newRegisterFixture()

	_, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{OpeningBalance: 50000})
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{OpeningBalance: 10000})
	assert.ErrorContains(t, err, "already opened")
}

func TestOpenRegisterIndependentPerOrganization(t *testing.T) {
	svc, _, _, _, orgID := newRegisterFixture()

	_, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{})
	require.NoError(t, err)

	// A different tenant opens its own register on the same day
	_, err = svc.Open(context.Background(), uuid.New(), uuid.New(), dto.OpenRegisterRequest{})
	assert.NoError(t, err)
}

func TestCloseRegisterOneWay(t *testing.T) {
	svc, _, _, _, orgID := newRegisterFixture()

	opened, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{OpeningBalance: 10000})
	require.NoError(t, err)
	id := uuid.MustParse(opened.ID)

	closed, err := svc.Close(context.Background(), orgID, uuid.New(), id, dto.CloseRegisterRequest{ClosingBalance: 17000})
	require.NoError(t, err)
	assert.Equal(t, model.RegisterStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosingBalance)
	assert.Equal(t, int64(17000), *closed.ClosingBalance)
	assert.NotNil(t, closed.ClosedAt)

	// Re-close is rejected
	_, err = svc.Close(context.Background(), orgID, uuid.New(), id, dto.CloseRegisterRequest{ClosingBalance: 0})
	assert.ErrorContains(t, err, "already closed")
}

func TestAddMovementWithoutRegister(t *testing.T) {
	svc, regRepo, _, _, orgID := newRegisterFixture()

	_, err := svc.AddManualMovement(context.Background(), orgID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementIncome, Amount: 1000, Description: "snack sale",
	})
	assert.ErrorContains(t, err, "no cash register")
	assert.Empty(t, regRepo.movements)
}

func TestAddMovementOnClosedRegister(t *testing.T) {
	svc, regRepo, _, _, orgID := newRegisterFixture()

	opened, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{})
	require.NoError(t, err)
	_, err = svc.Close(context.Background(), orgID, uuid.New(), uuid.MustParse(opened.ID), dto.CloseRegisterRequest{})
	require.NoError(t, err)

	_, err = svc.AddManualMovement(context.Background(), orgID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementIncome, Amount: 1000, Description: "late sale",
	})
	assert.ErrorContains(t, err, "closed")
	// No ledger line was written
	assert.Empty(t, regRepo.movements)
}

func TestAddMovementRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _, orgID := newRegisterFixture()

	_, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{})
	require.NoError(t, err)

	_, err = svc.AddManualMovement(context.Background(), orgID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementExpense, Amount: -500, Description: "bad amount",
	})
	assert.ErrorContains(t, err, "must be positive")

	// Adjustments may be negative
	resp, err := svc.AddManualMovement(context.Background(), orgID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementAdjustment, Amount: -500, Description: "count correction",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-500), resp.Amount)
}

func TestProductSaleDecrementsStockWithAudit(t *testing.T) {
	svc, regRepo, prodRepo, _, orgID := newRegisterFixture()
	product := prodRepo.add(orgID, 10, true)

	_, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{})
	require.NoError(t, err)

	resp, err := svc.AddManualMovement(context.Background(), orgID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementIncome, Amount: 4500, Description: "3 drinks",
		Products: []dto.MovementProductLine{{ProductID: product.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.MovementRefProductSale, resp.ReferenceType)

	assert.Equal(t, 7, prodRepo.products[product.ID].CurrentStock)
	require.Len(t, prodRepo.transactions, 1)
	st := prodRepo.transactions[0]
	assert.Equal(t, -3, st.Quantity)
	assert.Equal(t, 10, st.StockBefore)
	assert.Equal(t, 7, st.StockAfter)
	require.NotNil(t, st.CashMovementID)
	assert.Equal(t, regRepo.movements[0].ID, *st.CashMovementID)
}

func TestProductSaleInsufficientStockLeavesEverythingUnchanged(t *testing.T) {
	svc, regRepo, prodRepo, _, orgID := newRegisterFixture()
	product := prodRepo.add(orgID, 2, true)

	_, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{})
	require.NoError(t, err)

	_, err = svc.AddManualMovement(context.Background(), orgID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementIncome, Amount: 7500, Description: "5 drinks",
		Products: []dto.MovementProductLine{{ProductID: product.ID.String(), Quantity: 5}},
	})
	assert.ErrorContains(t, err, "insufficient stock")

	// Nothing was mutated: no movement, no stock change, no audit row
	assert.Empty(t, regRepo.movements)
	assert.Equal(t, 2, prodRepo.products[product.ID].CurrentStock)
	assert.Empty(t, prodRepo.transactions)
}

func TestProductSaleInactiveProductRejected(t *testing.T) {
	svc, regRepo, prodRepo, _, orgID := newRegisterFixture()
	product := prodRepo.add(orgID, 10, true)
	product.Active = false

	_, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{})
	require.NoError(t, err)

	_, err = svc.AddManualMovement(context.Background(), orgID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementIncome, Amount: 1500, Description: "1 drink",
		Products: []dto.MovementProductLine{{ProductID: product.ID.String(), Quantity: 1}},
	})
	assert.ErrorContains(t, err, "inactive")
	assert.Empty(t, regRepo.movements)
}

func TestUntrackedProductSkipsStockEnforcement(t *testing.T) {
	svc, _, prodRepo, _, orgID := newRegisterFixture()
	product := prodRepo.add(orgID, 0, false)

	_, err := svc.Open(context.Background(), orgID, uuid.New(), dto.OpenRegisterRequest{})
	require.NoError(t, err)

	_, err = svc.AddManualMovement(context.Background(), orgID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementIncome, Amount: 1500, Description: "service fee",
		Products: []dto.MovementProductLine{{ProductID: product.ID.String(), Quantity: 5}},
	})
	require.NoError(t, err)
	// No stock mutation and no audit row for untracked products
	assert.Equal(t, 0, prodRepo.products[product.ID].CurrentStock)
	assert.Empty(t, prodRepo.transactions)
}

func TestDailySummaryNetCashFlow(t *testing.T) {
	svc, _, _, _, orgID := newRegisterFixture()
	userID := uuid.New()

	opened, err := svc.Open(context.Background(), orgID, userID, dto.OpenRegisterRequest{OpeningBalance: 20000})
	require.NoError(t, err)

	add := func(typ string, amount int64) {
		_, err := svc.AddManualMovement(context.Background(), orgID, userID, dto.AddMovementRequest{
			Type: typ, Amount: amount, Description: "test movement",
		})
		require.NoError(t, err)
	}
	add(model.MovementIncome, 600)
	add(model.MovementIncome, 400)
	add(model.MovementExpense, 400)
	add(model.MovementAdjustment, 100)

	summary, err := svc.GetDailySummary(context.Background(), orgID, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), summary.Income.Total)
	assert.Equal(t, int64(2), summary.Income.Count)
	assert.Equal(t, int64(400), summary.Expense.Total)
	assert.Equal(t, int64(100), summary.Adjustment.Total)
	// net = income − expense + adjustment
	assert.Equal(t, int64(700), summary.NetCashFlow)

	require.NotNil(t, summary.RegisterID)
	assert.Equal(t, opened.ID, *summary.RegisterID)
	require.NotNil(t, summary.ExpectedBalance)
	assert.Equal(t, int64(20700), *summary.ExpectedBalance)
}

func TestDailySummaryIncludesCashPayments(t *testing.T) {
	svc, _, _, payRepo, orgID := newRegisterFixture()

	payRepo.payments = append(payRepo.payments,
		model.TrainingPayment{OrganizationID: orgID, Amount: 8000, PaymentMethod: model.PaymentMethodCash, PaidAt: time.Now()},
		model.TrainingPayment{OrganizationID: orgID, Amount: 5000, PaymentMethod: model.PaymentMethodTransfer, PaidAt: time.Now()},
	)

	summary, err := svc.GetDailySummary(context.Background(), orgID, nil)
	require.NoError(t, err)

	// Only the cash payment counts; no register means ledger totals stay zero
	assert.Equal(t, int64(8000), summary.CashPayments.Total)
	assert.Equal(t, int64(1), summary.CashPayments.Count)
	assert.Nil(t, summary.RegisterID)
	assert.Equal(t, int64(0), summary.NetCashFlow)
}

func TestRegisterHistoryPagination(t *testing.T) {
	svc, regRepo, _, _, orgID := newRegisterFixture()

	for i := 0; i < 3; i++ {
		reg := &model.CashRegister{
			OrganizationID: orgID,
			Date:           time.Now().AddDate(0, 0, -i),
			Status:         model.RegisterStatusClosed,
			OpenedBy:       uuid.New(),
		}
		require.NoError(t, regRepo.Create(context.Background(), reg))
	}

	resp, err := svc.History(context.Background(), orgID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Data, 3)
}
