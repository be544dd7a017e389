package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	partnerapp "github.com/retailbooks/backend/internal/application/partner"
	"github.com/retailbooks/backend/internal/domain/billing"
	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
)

func newTestProduct(t *testing.T, tenantID uuid.UUID, itemCode string, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, itemCode, "Paracetamol 650mg", decimal.NewFromFloat(30.00))
	require.NoError(t, err)
	require.NoError(t, product.SetPricing(
		decimal.NewFromFloat(18.50),
		decimal.NewFromInt(12),
		decimal.NewFromInt(10),
	))
	product.Stock = stock
	return product
}

func newTestService(billRepo *MockBillRepository, productRepo *MockProductRepository, customerRepo *MockCustomerRepository, ledgerRepo *MockLedgerRepository, seq *MockSequencer) *BillService {
	customers := partnerapp.NewCustomerService(customerRepo, seq)
	ledgerSvc := ledgerapp.NewService(ledgerRepo)
	return NewBillService(billRepo, productRepo, customers, ledgerSvc, seq)
}

func TestBillService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("credit sale consumes stock and posts ledger", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		productRepo := new(MockProductRepository)
		customerRepo := new(MockCustomerRepository)
		ledgerRepo := new(MockLedgerRepository)
		seq := new(MockSequencer)
		svc := newTestService(billRepo, productRepo, customerRepo, ledgerRepo, seq)

		customer, err := partner.NewCustomer(tenantID, "CUST-001", "Ramesh")
		require.NoError(t, err)
		product := newTestProduct(t, tenantID, "PCM650", 100)

		customerRepo.On("FindByRef", ctx, tenantID, "CUST-001").Return(customer, nil)
		productRepo.On("FindByRef", ctx, tenantID, "PCM650").Return(product, nil)
		productRepo.On("AdjustStock", ctx, tenantID, product.ID, int64(-12)).Return(nil)
		seq.On("Next", ctx, tenantID, sequence.KindBill).Return("BILL0001", nil)
		billRepo.On("Save", ctx, mock.AnythingOfType("*billing.Bill")).Return(nil)
		ledgerRepo.On("LatestForParty", ctx, tenantID, "CUST-001").Return(nil, shared.ErrNotFound)
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateBillRequest{
			CustomerRef: "CUST-001",
			Items: []BillItemRequest{
				{ProductRef: "PCM650", Qty: decimal.NewFromInt(10), FreeQty: decimal.NewFromInt(2)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "BILL0001", resp.BillNo)
		// rate falls back to MRP, discount and GST to product defaults:
		// gross 300.00, discount 30.00, taxable 270.00, CGST=SGST 16.20
		assert.True(t, decimal.NewFromFloat(270.00).Equal(resp.TaxableAmount), "taxable %s", resp.TaxableAmount)
		assert.True(t, decimal.NewFromFloat(16.20).Equal(resp.TotalCGST))
		assert.True(t, decimal.NewFromFloat(302.40).Equal(resp.NetAmount), "net %s", resp.NetAmount)
		assert.Equal(t, "Unpaid", resp.PaymentStatus)
		productRepo.AssertExpectations(t)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("insufficient stock re-credits earlier lines", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(billRepo, productRepo, new(MockCustomerRepository), new(MockLedgerRepository), new(MockSequencer))

		first := newTestProduct(t, tenantID, "PCM650", 100)
		second := newTestProduct(t, tenantID, "AMX500", 1)

		productRepo.On("FindByRef", ctx, tenantID, "PCM650").Return(first, nil)
		productRepo.On("FindByRef", ctx, tenantID, "AMX500").Return(second, nil)
		productRepo.On("AdjustStock", ctx, tenantID, first.ID, int64(-5)).Return(nil)
		productRepo.On("AdjustStock", ctx, tenantID, second.ID, int64(-5)).Return(shared.ErrInsufficientStock)
		productRepo.On("AdjustStock", ctx, tenantID, first.ID, int64(5)).Return(nil)

		_, err := svc.Create(ctx, tenantID, CreateBillRequest{
			Items: []BillItemRequest{
				{ProductRef: "PCM650", Qty: decimal.NewFromInt(5)},
				{ProductRef: "AMX500", Qty: decimal.NewFromInt(5)},
			},
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		productRepo.AssertExpectations(t)
		billRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate bill number is retried with a fresh one", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		productRepo := new(MockProductRepository)
		seq := new(MockSequencer)
		svc := newTestService(billRepo, productRepo, new(MockCustomerRepository), new(MockLedgerRepository), seq)

		product := newTestProduct(t, tenantID, "PCM650", 100)
		productRepo.On("FindByRef", ctx, tenantID, "PCM650").Return(product, nil)
		productRepo.On("AdjustStock", ctx, tenantID, product.ID, int64(-1)).Return(nil)
		seq.On("Next", ctx, tenantID, sequence.KindBill).Return("BILL0007", nil).Once()
		seq.On("Next", ctx, tenantID, sequence.KindBill).Return("BILL0008", nil).Once()
		billRepo.On("Save", ctx, mock.MatchedBy(func(b *billing.Bill) bool { return b.BillNo == "BILL0007" })).
			Return(shared.NewDomainError("ALREADY_EXISTS", "duplicate bill number")).Once()
		billRepo.On("Save", ctx, mock.MatchedBy(func(b *billing.Bill) bool { return b.BillNo == "BILL0008" })).
			Return(nil).Once()

		resp, err := svc.Create(ctx, tenantID, CreateBillRequest{
			Items: []BillItemRequest{{ProductRef: "PCM650", Qty: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "BILL0008", resp.BillNo)
	})

	t.Run("draft bill posts no ledger entry", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		productRepo := new(MockProductRepository)
		customerRepo := new(MockCustomerRepository)
		ledgerRepo := new(MockLedgerRepository)
		seq := new(MockSequencer)
		svc := newTestService(billRepo, productRepo, customerRepo, ledgerRepo, seq)

		customer, err := partner.NewCustomer(tenantID, "CUST-001", "Ramesh")
		require.NoError(t, err)
		product := newTestProduct(t, tenantID, "PCM650", 100)

		customerRepo.On("FindByRef", ctx, tenantID, "CUST-001").Return(customer, nil)
		productRepo.On("FindByRef", ctx, tenantID, "PCM650").Return(product, nil)
		productRepo.On("AdjustStock", ctx, tenantID, product.ID, int64(-1)).Return(nil)
		seq.On("Next", ctx, tenantID, sequence.KindBill).Return("BILL0002", nil)
		billRepo.On("Save", ctx, mock.AnythingOfType("*billing.Bill")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateBillRequest{
			CustomerRef:   "CUST-001",
			PaymentStatus: "Draft",
			Items:         []BillItemRequest{{ProductRef: "PCM650", Qty: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Draft", resp.PaymentStatus)
		ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestBillService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("applies only the stock difference", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(billRepo, productRepo, new(MockCustomerRepository), new(MockLedgerRepository), new(MockSequencer))

		product := newTestProduct(t, tenantID, "PCM650", 100)
		bill, err := billing.NewBill(tenantID, "BILL0001", time.Now())
		require.NoError(t, err)
		line, err := billing.NewLineItem(product.ID, "PCM650", "Paracetamol 650mg",
			decimal.NewFromInt(5), decimal.NewFromFloat(30), decimal.Zero, decimal.NewFromInt(12))
		require.NoError(t, err)
		require.NoError(t, bill.ReplaceItems([]billing.LineItem{*line}, decimal.Zero, decimal.Zero, ""))

		billRepo.On("FindByIDForTenant", ctx, tenantID, bill.ID).Return(bill, nil)
		productRepo.On("FindByRef", ctx, tenantID, "PCM650").Return(product, nil)
		// 5 -> 8 means three more units out
		productRepo.On("AdjustStock", ctx, tenantID, product.ID, int64(-3)).Return(nil)
		billRepo.On("Save", ctx, bill).Return(nil)

		resp, err := svc.Update(ctx, tenantID, bill.ID, UpdateBillRequest{
			Items: []BillItemRequest{{ProductRef: "PCM650", Qty: decimal.NewFromInt(8)}},
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(8).Equal(resp.TotalQty))
		productRepo.AssertExpectations(t)
	})
}

func TestBillService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	billRepo := new(MockBillRepository)
	productRepo := new(MockProductRepository)
	svc := newTestService(billRepo, productRepo, new(MockCustomerRepository), new(MockLedgerRepository), new(MockSequencer))

	product := newTestProduct(t, tenantID, "PCM650", 100)
	bill, err := billing.NewBill(tenantID, "BILL0001", time.Now())
	require.NoError(t, err)
	line, err := billing.NewLineItem(product.ID, "PCM650", "Paracetamol 650mg",
		decimal.NewFromInt(4), decimal.NewFromFloat(30), decimal.Zero, decimal.NewFromInt(12))
	require.NoError(t, err)
	require.NoError(t, bill.ReplaceItems([]billing.LineItem{*line}, decimal.Zero, decimal.Zero, ""))

	billRepo.On("FindByIDForTenant", ctx, tenantID, bill.ID).Return(bill, nil)
	productRepo.On("AdjustStock", ctx, tenantID, product.ID, int64(4)).Return(nil)
	billRepo.On("DeleteWithItems", ctx, tenantID, bill.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, tenantID, bill.ID))
	productRepo.AssertExpectations(t)
	billRepo.AssertExpectations(t)
}

func TestBillService_ListByDateRange(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc := newTestService(new(MockBillRepository), new(MockProductRepository), new(MockCustomerRepository), new(MockLedgerRepository), new(MockSequencer))

	t.Run("rejects future end date", func(t *testing.T) {
		future := time.Now().Add(72 * time.Hour)
		_, err := svc.ListByDateRange(ctx, tenantID, DateRangeRequest{To: &future})
		assert.Error(t, err)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		from := time.Now().Add(-24 * time.Hour)
		to := time.Now().Add(-48 * time.Hour)
		_, err := svc.ListByDateRange(ctx, tenantID, DateRangeRequest{From: &from, To: &to})
		assert.Error(t, err)
	})
}
