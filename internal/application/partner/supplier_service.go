package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	sequencer    sequence.Sequencer
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, sequencer sequence.Sequencer) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		sequencer:    sequencer,
	}
}

// Create creates a new supplier with an allocated CGS code
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	code, err := s.sequencer.Next(ctx, tenantID, sequence.KindSupplier)
	if err != nil {
		return nil, err
	}

	supplier, err := partner.NewSupplier(tenantID, code, req.Name)
	if err != nil {
		return nil, err
	}
	supplier.SetContact(req.CompanyName, req.Phone, req.Email)
	if req.GSTNumber != "" {
		supplier.SetGSTNumber(req.GSTNumber)
	}
	if req.Address != "" {
		supplier.SetAddress(req.Address)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByRef resolves a supplier by id, code, or exact name
func (s *SupplierService) GetByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByRef(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List returns suppliers for the tenant
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *toSupplierResponse(&suppliers[i]))
	}
	return out, nil
}

// Update applies partial changes to a supplier
func (s *SupplierService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.CompanyName != nil || req.Phone != nil || req.Email != nil {
		company := supplier.CompanyName
		phone := supplier.Phone
		email := supplier.Email
		if req.CompanyName != nil {
			company = *req.CompanyName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		supplier.SetContact(company, phone, email)
	}
	if req.GSTNumber != nil {
		supplier.SetGSTNumber(*req.GSTNumber)
	}
	if req.Address != nil {
		supplier.SetAddress(*req.Address)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete removes a supplier. Ledger history is retained untouched.
func (s *SupplierService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.supplierRepo.Delete(ctx, id)
}
