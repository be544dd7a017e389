// Package partner implements application services for customers and
// suppliers.
package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	sequencer    sequence.Sequencer
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, sequencer sequence.Sequencer) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		sequencer:    sequencer,
	}
}

// Create creates a new customer with an allocated CUST code
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	if req.Phone != "" {
		exists, err := s.customerRepo.ExistsByPhone(ctx, tenantID, req.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
		}
	}

	code, err := s.sequencer.Next(ctx, tenantID, sequence.KindCustomer)
	if err != nil {
		return nil, err
	}

	customer, err := partner.NewCustomer(tenantID, code, req.FirstName)
	if err != nil {
		return nil, err
	}
	if req.LastName != "" {
		if err := customer.SetName(customer.FirstName, req.LastName); err != nil {
			return nil, err
		}
	}
	customer.SetContact(req.Phone, req.Email)
	if req.GSTNumber != "" {
		customer.SetGSTNumber(req.GSTNumber)
	}
	if req.Address != "" {
		customer.SetAddress(req.Address)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// FindOrCreateByPhone resolves a customer by phone, creating one on the fly
// when absent. A concurrent creation losing the unique-index race is retried
// as a lookup instead of surfacing the duplicate error.
func (s *CustomerService) FindOrCreateByPhone(ctx context.Context, tenantID uuid.UUID, phone, name string) (*CustomerResponse, error) {
	if phone == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Phone cannot be empty")
	}

	existing, err := s.customerRepo.FindByPhone(ctx, tenantID, phone)
	if err == nil {
		return toCustomerResponse(existing), nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	code, err := s.sequencer.Next(ctx, tenantID, sequence.KindCustomer)
	if err != nil {
		return nil, err
	}
	customer, err := partner.NewCustomer(tenantID, code, name)
	if err != nil {
		return nil, err
	}
	customer.SetContact(phone, "")

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		if de := shared.IsDomainError(err); de != nil && de.Code == "ALREADY_EXISTS" {
			return s.getByPhone(ctx, tenantID, phone)
		}
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (s *CustomerService) getByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByPhone(ctx, tenantID, phone)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByRef resolves a customer by id, code, or phone
func (s *CustomerService) GetByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByRef(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List returns customers for the tenant
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *toCustomerResponse(&customers[i]))
	}
	return out, nil
}

// Update applies partial changes to a customer
func (s *CustomerService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil {
		first := customer.FirstName
		last := customer.LastName
		if req.FirstName != nil {
			first = *req.FirstName
		}
		if req.LastName != nil {
			last = *req.LastName
		}
		if err := customer.SetName(first, last); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil || req.Email != nil {
		phone := customer.Phone
		email := customer.Email
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if phone != "" && phone != customer.Phone {
			exists, err := s.customerRepo.ExistsByPhone(ctx, tenantID, phone)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
			}
		}
		customer.SetContact(phone, email)
	}
	if req.GSTNumber != nil {
		customer.SetGSTNumber(*req.GSTNumber)
	}
	if req.Address != nil {
		customer.SetAddress(*req.Address)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete removes a customer. Ledger history is retained untouched.
func (s *CustomerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}
