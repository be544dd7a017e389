package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// DefaultCustomerName is used when a bill auto-creates a customer without a
// supplied name
const DefaultCustomerName = "Customer"

// Customer is a party the business sells to. Code is the human-readable
// sequential identifier (CUST-001), assigned once at creation and never
// changed or reused.
type Customer struct {
	shared.TenantAggregateRoot
	Code      string `gorm:"size:20;not null;uniqueIndex:idx_customers_tenant_code,priority:2"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100"`
	Phone     string `gorm:"size:20;index:idx_customers_tenant_phone,priority:2"`
	Email     string `gorm:"size:200"`
	GSTNumber string `gorm:"size:30"`
	Address   string `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer. An empty first name falls back to
// DefaultCustomerName so auto-created billing customers are always nameable.
func NewCustomer(tenantID uuid.UUID, code, firstName string) (*Customer, error) {
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer code cannot be empty")
	}
	if firstName == "" {
		firstName = DefaultCustomerName
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		FirstName:           firstName,
	}, nil
}

// SetContact updates contact details
func (c *Customer) SetContact(phone, email string) {
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.TrimSpace(email)
	c.UpdatedAt = time.Now()
}

// SetName updates the customer name
func (c *Customer) SetName(firstName, lastName string) error {
	if firstName == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "First name cannot be empty")
	}
	c.FirstName = firstName
	c.LastName = lastName
	c.UpdatedAt = time.Now()
	return nil
}

// SetGSTNumber sets the customer's GST registration number
func (c *Customer) SetGSTNumber(gstNumber string) {
	c.GSTNumber = strings.TrimSpace(gstNumber)
	c.UpdatedAt = time.Now()
}

// SetAddress updates the billing address
func (c *Customer) SetAddress(address string) {
	c.Address = address
	c.UpdatedAt = time.Now()
}

// DisplayName returns the name shown on documents and ledger rows, falling
// back to code and then phone when the name is the placeholder
func (c *Customer) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name != "" && name != DefaultCustomerName {
		return name
	}
	if c.Code != "" {
		return c.Code
	}
	return c.Phone
}
