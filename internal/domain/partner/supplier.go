package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// Supplier is a party the business buys from. Code (CGS001) is assigned once
// at creation, sequentially per tenant.
type Supplier struct {
	shared.TenantAggregateRoot
	Code        string `gorm:"size:20;not null;uniqueIndex:idx_suppliers_tenant_code,priority:2"`
	Name        string `gorm:"size:200;not null"`
	CompanyName string `gorm:"size:200"`
	Phone       string `gorm:"size:20"`
	Email       string `gorm:"size:200"`
	GSTNumber   string `gorm:"size:30"`
	Address     string `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, code, name string) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier name cannot be empty")
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
	}, nil
}

// SetContact updates contact details
func (s *Supplier) SetContact(companyName, phone, email string) {
	s.CompanyName = companyName
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.TrimSpace(email)
	s.UpdatedAt = time.Now()
}

// SetGSTNumber sets the supplier's GST registration number
func (s *Supplier) SetGSTNumber(gstNumber string) {
	s.GSTNumber = strings.TrimSpace(gstNumber)
	s.UpdatedAt = time.Now()
}

// SetAddress updates the supplier address
func (s *Supplier) SetAddress(address string) {
	s.Address = address
	s.UpdatedAt = time.Now()
}
