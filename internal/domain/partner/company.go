package partner

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Company represents a business partner. A company can act as a customer,
// a supplier, or both; the two flags are independent.
type Company struct {
	shared.TenantAggregateRoot
	Name       string
	VAT        string
	Country    string
	Email      string
	Phone      string
	Address    string
	IsCustomer bool
	IsSupplier bool
}

// NewCompany creates a new company with required fields
func NewCompany(tenantID uuid.UUID, name string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}

	return &Company{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		IsCustomer:          true,
	}, nil
}

// Rename changes the company name
func (c *Company) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	c.Name = name
	c.touch()
	return nil
}

// SetVAT sets the VAT registration number
func (c *Company) SetVAT(vat string) error {
	vat = strings.TrimSpace(vat)
	if len(vat) > 50 {
		return shared.NewDomainError("INVALID_VAT", "VAT number cannot exceed 50 characters")
	}
	c.VAT = vat
	c.touch()
	return nil
}

// SetCountry sets the company country
func (c *Company) SetCountry(country string) error {
	country = strings.TrimSpace(country)
	if len(country) > 100 {
		return shared.NewDomainError("INVALID_COUNTRY", "Country cannot exceed 100 characters")
	}
	c.Country = country
	c.touch()
	return nil
}

// SetEmail sets the company contact email. Stored lowercased so inbound
// mail can be matched case-insensitively.
func (c *Company) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 254 characters")
	}
	c.Email = email
	c.touch()
	return nil
}

// SetPhone sets the company phone number
func (c *Company) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	c.Phone = phone
	c.touch()
	return nil
}

// SetAddress sets the company address
func (c *Company) SetAddress(address string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	c.Address = strings.TrimSpace(address)
	c.touch()
	return nil
}

// SetRoles sets the customer/supplier flags
func (c *Company) SetRoles(isCustomer, isSupplier bool) {
	c.IsCustomer = isCustomer
	c.IsSupplier = isSupplier
	c.touch()
}

func (c *Company) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
