package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, entity *catalog.Product) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByItemCode(ctx context.Context, tenantID uuid.UUID, itemCode string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, delta int64) error {
	args := m.Called(ctx, tenantID, productID, delta)
	return args.Error(0)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID, threshold int64) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockStockAlertRepository is a mock implementation of catalog.StockAlertRepository
type MockStockAlertRepository struct {
	mock.Mock
}

func (m *MockStockAlertRepository) Get(ctx context.Context, tenantID uuid.UUID) (*catalog.StockAlertSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StockAlertSettings), args.Error(1)
}

func (m *MockStockAlertRepository) Save(ctx context.Context, settings *catalog.StockAlertSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates product with opening stock", func(t *testing.T) {
		repo := new(MockProductRepository)
		alertRepo := new(MockStockAlertRepository)
		svc := NewProductService(repo, alertRepo)

		repo.On("FindByItemCode", ctx, tenantID, "PCM650").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		alertRepo.On("Get", ctx, tenantID).Return(catalog.DefaultStockAlertSettings(tenantID), nil)

		resp, err := svc.Create(ctx, tenantID, CreateProductRequest{
			ItemCode:     "PCM650",
			Name:         "Paracetamol 650mg",
			MRP:          decimal.NewFromFloat(30.00),
			GSTPercent:   decimal.NewFromInt(12),
			OpeningStock: 50,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(50), resp.Stock)
		assert.False(t, resp.LowStock)
	})

	t.Run("rejects duplicate item code", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStockAlertRepository))

		existing, err := catalog.NewProduct(tenantID, "PCM650", "Paracetamol 650mg", decimal.NewFromFloat(30))
		require.NoError(t, err)
		repo.On("FindByItemCode", ctx, tenantID, "PCM650").Return(existing, nil)

		_, err = svc.Create(ctx, tenantID, CreateProductRequest{
			ItemCode: "PCM650",
			Name:     "Paracetamol 650mg",
			MRP:      decimal.NewFromFloat(30.00),
		})
		require.Error(t, err)
		de := shared.IsDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, "ALREADY_EXISTS", de.Code)
	})
}

func TestProductService_ListLowStock(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockProductRepository)
	alertRepo := new(MockStockAlertRepository)
	svc := NewProductService(repo, alertRepo)

	settings := catalog.DefaultStockAlertSettings(tenantID)
	require.NoError(t, settings.Update(5, true, false))
	alertRepo.On("Get", ctx, tenantID).Return(settings, nil)

	low, err := catalog.NewProduct(tenantID, "CTZ10", "Cetirizine 10mg", decimal.NewFromFloat(25))
	require.NoError(t, err)
	low.Stock = 3
	repo.On("FindLowStock", ctx, tenantID, int64(5)).Return([]catalog.Product{*low}, nil)

	resp, err := svc.ListLowStock(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.True(t, resp[0].LowStock)
}

func TestProductService_AdjustStock(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, new(MockStockAlertRepository))

	id := uuid.New()
	repo.On("AdjustStock", ctx, tenantID, id, int64(-500)).Return(shared.ErrInsufficientStock)

	_, err := svc.AdjustStock(ctx, tenantID, id, AdjustStockRequest{Delta: -500})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
}

func TestStockAlertService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	alertRepo := new(MockStockAlertRepository)
	svc := NewStockAlertService(alertRepo)

	settings := catalog.DefaultStockAlertSettings(tenantID)
	alertRepo.On("Get", ctx, tenantID).Return(settings, nil)
	alertRepo.On("Save", ctx, settings).Return(nil)

	resp, err := svc.Update(ctx, tenantID, UpdateStockAlertRequest{Threshold: 25, EmailAlert: false, PushAlert: true})
	require.NoError(t, err)
	assert.Equal(t, int64(25), resp.Threshold)
	assert.True(t, resp.PushAlert)

	t.Run("rejects non-positive threshold", func(t *testing.T) {
		_, err := svc.Update(ctx, tenantID, UpdateStockAlertRequest{Threshold: 0})
		assert.Error(t, err)
	})
}
