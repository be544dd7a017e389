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

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("allocates code and saves", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		seq := new(MockSequencer)
		svc := NewCustomerService(repo, seq)

		repo.On("ExistsByPhone", ctx, tenantID, "9876543210").Return(false, nil)
		seq.On("Next", ctx, tenantID, sequence.KindCustomer).Return("CUST-001", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateCustomerRequest{
			FirstName: "Ramesh",
			LastName:  "Sharma",
			Phone:     "9876543210",
		})
		require.NoError(t, err)
		assert.Equal(t, "CUST-001", resp.Code)
		assert.Equal(t, "Ramesh Sharma", resp.DisplayName)
		repo.AssertExpectations(t)
		seq.AssertExpectations(t)
	})

	t.Run("falls back to default name", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		seq := new(MockSequencer)
		svc := NewCustomerService(repo, seq)

		seq.On("Next", ctx, tenantID, sequence.KindCustomer).Return("CUST-002", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateCustomerRequest{})
		require.NoError(t, err)
		assert.Equal(t, partner.DefaultCustomerName, resp.FirstName)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		seq := new(MockSequencer)
		svc := NewCustomerService(repo, seq)

		repo.On("ExistsByPhone", ctx, tenantID, "9876543210").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateCustomerRequest{Phone: "9876543210"})
		require.Error(t, err)
		de := shared.IsDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, "ALREADY_EXISTS", de.Code)
		seq.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCustomerService_FindOrCreateByPhone(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	existing, err := partner.NewCustomer(tenantID, "CUST-001", "Ramesh")
	require.NoError(t, err)
	existing.SetContact("9876543210", "")

	t.Run("returns existing customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		seq := new(MockSequencer)
		svc := NewCustomerService(repo, seq)

		repo.On("FindByPhone", ctx, tenantID, "9876543210").Return(existing, nil)

		resp, err := svc.FindOrCreateByPhone(ctx, tenantID, "9876543210", "Ramesh")
		require.NoError(t, err)
		assert.Equal(t, "CUST-001", resp.Code)
		seq.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates when absent", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		seq := new(MockSequencer)
		svc := NewCustomerService(repo, seq)

		repo.On("FindByPhone", ctx, tenantID, "9123456780").Return(nil, shared.ErrNotFound)
		seq.On("Next", ctx, tenantID, sequence.KindCustomer).Return("CUST-002", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.FindOrCreateByPhone(ctx, tenantID, "9123456780", "")
		require.NoError(t, err)
		assert.Equal(t, "CUST-002", resp.Code)
		assert.Equal(t, partner.DefaultCustomerName, resp.FirstName)
	})

	t.Run("duplicate key on save is retried as lookup", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		seq := new(MockSequencer)
		svc := NewCustomerService(repo, seq)

		repo.On("FindByPhone", ctx, tenantID, "9876543210").Return(nil, shared.ErrNotFound).Once()
		seq.On("Next", ctx, tenantID, sequence.KindCustomer).Return("CUST-003", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).
			Return(shared.NewDomainError("ALREADY_EXISTS", "duplicate phone"))
		repo.On("FindByPhone", ctx, tenantID, "9876543210").Return(existing, nil).Once()

		resp, err := svc.FindOrCreateByPhone(ctx, tenantID, "9876543210", "Ramesh")
		require.NoError(t, err)
		assert.Equal(t, "CUST-001", resp.Code, "must resolve to the winner of the race")
	})

	t.Run("rejects empty phone", func(t *testing.T) {
		svc := NewCustomerService(new(MockCustomerRepository), new(MockSequencer))
		_, err := svc.FindOrCreateByPhone(ctx, tenantID, "", "Ramesh")
		assert.Error(t, err)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("applies partial changes", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, new(MockSequencer))

		customer, err := partner.NewCustomer(tenantID, "CUST-001", "Ramesh")
		require.NoError(t, err)
		repo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)

		gst := "27AAPFU0939F1ZV"
		resp, err := svc.Update(ctx, tenantID, customer.ID, UpdateCustomerRequest{GSTNumber: &gst})
		require.NoError(t, err)
		assert.Equal(t, gst, resp.GSTNumber)
		assert.Equal(t, "Ramesh", resp.FirstName)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, new(MockSequencer))
		id := uuid.New()
		repo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, tenantID, id, UpdateCustomerRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
