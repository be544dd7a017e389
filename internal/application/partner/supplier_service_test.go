package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
)

func TestSupplierService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("allocates code and saves", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		seq := new(MockSequencer)
		svc := NewSupplierService(repo, seq)

		seq.On("Next", ctx, tenantID, sequence.KindSupplier).Return("CGS001", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateSupplierRequest{
			Name:        "Mehta Pharma Distributors",
			CompanyName: "Mehta Pharma Pvt Ltd",
		})
		require.NoError(t, err)
		assert.Equal(t, "CGS001", resp.Code)
		assert.Equal(t, "Mehta Pharma Distributors", resp.Name)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		seq := new(MockSequencer)
		svc := NewSupplierService(repo, seq)
		seq.On("Next", ctx, tenantID, sequence.KindSupplier).Return("CGS002", nil)

		_, err := svc.Create(ctx, tenantID, CreateSupplierRequest{Name: ""})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSupplierService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, new(MockSequencer))

	supplier, err := partner.NewSupplier(tenantID, "CGS001", "Mehta Pharma")
	require.NoError(t, err)
	repo.On("FindByIDForTenant", ctx, tenantID, supplier.ID).Return(supplier, nil)
	repo.On("Save", ctx, supplier).Return(nil)

	phone := "02212345678"
	resp, err := svc.Update(ctx, tenantID, supplier.ID, UpdateSupplierRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, resp.Phone)
	assert.Equal(t, "Mehta Pharma", resp.Name)
}

func TestSupplierService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, new(MockSequencer))

	id := uuid.New()
	repo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, tenantID, id), shared.ErrNotFound)
}
