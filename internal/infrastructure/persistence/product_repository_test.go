package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/shared"
)

func seedProduct(t *testing.T, repo *GormProductRepository, tenantID uuid.UUID, itemCode string, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, itemCode, "Product "+itemCode, decimal.NewFromInt(100))
	require.NoError(t, err)
	product.Stock = stock
	require.NoError(t, repo.Save(t.Context(), product))
	return product
}

func TestGormProductRepository_AdjustStock(t *testing.T) {
	db := openTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)
	tenantID := uuid.New()

	t.Run("increments stock", func(t *testing.T) {
		product := seedProduct(t, repo, tenantID, "ITM001", 5)

		require.NoError(t, repo.AdjustStock(t.Context(), tenantID, product.ID, 10))

		found, err := repo.FindByIDForTenant(t.Context(), tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(15), found.Stock)
	})

	t.Run("decrements stock down to zero", func(t *testing.T) {
		product := seedProduct(t, repo, tenantID, "ITM002", 3)

		require.NoError(t, repo.AdjustStock(t.Context(), tenantID, product.ID, -3))

		found, err := repo.FindByIDForTenant(t.Context(), tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), found.Stock)
	})

	t.Run("rejects a decrement past zero and leaves stock untouched", func(t *testing.T) {
		product := seedProduct(t, repo, tenantID, "ITM003", 2)

		err := repo.AdjustStock(t.Context(), tenantID, product.ID, -3)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)

		found, err := repo.FindByIDForTenant(t.Context(), tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), found.Stock)
	})

	t.Run("reports not found for an unknown product", func(t *testing.T) {
		err := repo.AdjustStock(t.Context(), tenantID, uuid.New(), -1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("is scoped by tenant", func(t *testing.T) {
		product := seedProduct(t, repo, tenantID, "ITM004", 5)

		err := repo.AdjustStock(t.Context(), uuid.New(), product.ID, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindByRef(t *testing.T) {
	db := openTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)
	tenantID := uuid.New()
	product := seedProduct(t, repo, tenantID, "SYR100", 8)

	t.Run("resolves by id", func(t *testing.T) {
		found, err := repo.FindByRef(t.Context(), tenantID, product.ID.String())
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
	})

	t.Run("resolves by item code", func(t *testing.T) {
		found, err := repo.FindByRef(t.Context(), tenantID, "SYR100")
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
	})

	t.Run("falls back to item code when the uuid matches nothing", func(t *testing.T) {
		_, err := repo.FindByRef(t.Context(), tenantID, uuid.New().String())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindLowStock(t *testing.T) {
	db := openTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)
	tenantID := uuid.New()

	seedProduct(t, repo, tenantID, "LOW01", 2)
	seedProduct(t, repo, tenantID, "LOW02", 10)
	seedProduct(t, repo, tenantID, "HIGH1", 50)
	seedProduct(t, repo, uuid.New(), "LOW03", 1)

	products, err := repo.FindLowStock(t.Context(), tenantID, 10)
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "LOW01", products[0].ItemCode)
	assert.Equal(t, "LOW02", products[1].ItemCode)
}

func TestGormProductRepository_Save(t *testing.T) {
	db := openTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)
	tenantID := uuid.New()

	t.Run("rejects a duplicate item code within the tenant", func(t *testing.T) {
		seedProduct(t, repo, tenantID, "DUP01", 0)

		duplicate, err := catalog.NewProduct(tenantID, "DUP01", "Other", decimal.NewFromInt(50))
		require.NoError(t, err)

		err = repo.Save(t.Context(), duplicate)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("allows the same item code in another tenant", func(t *testing.T) {
		other, err := catalog.NewProduct(uuid.New(), "DUP01", "Other tenant", decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.NoError(t, repo.Save(t.Context(), other))
	})
}
