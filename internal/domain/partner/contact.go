package partner

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Contact represents a person, optionally attached to a company.
type Contact struct {
	shared.TenantAggregateRoot
	CompanyID *uuid.UUID
	FirstName string
	LastName  string
	RoleTitle string
	Email     string
	Phone     string
	Notes     string
}

// NewContact creates a new contact with required fields
func NewContact(tenantID uuid.UUID, firstName string) (*Contact, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT_NAME", "First name is required")
	}
	if len(firstName) > 100 {
		return nil, shared.NewDomainError("INVALID_CONTACT_NAME", "First name cannot exceed 100 characters")
	}

	return &Contact{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FirstName:           firstName,
	}, nil
}

// SetName updates the contact's first and last name
func (c *Contact) SetName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "First name is required")
	}
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Name cannot exceed 100 characters")
	}
	c.FirstName = firstName
	c.LastName = strings.TrimSpace(lastName)
	c.touch()
	return nil
}

// AttachToCompany links the contact to a company in the same tenant.
// The caller is responsible for verifying the company belongs to the tenant.
func (c *Contact) AttachToCompany(companyID uuid.UUID) {
	c.CompanyID = &companyID
	c.touch()
}

// DetachFromCompany removes the company link
func (c *Contact) DetachFromCompany() {
	c.CompanyID = nil
	c.touch()
}

// SetRoleTitle sets the contact's job title
func (c *Contact) SetRoleTitle(title string) error {
	if len(title) > 100 {
		return shared.NewDomainError("INVALID_ROLE_TITLE", "Role title cannot exceed 100 characters")
	}
	c.RoleTitle = strings.TrimSpace(title)
	c.touch()
	return nil
}

// SetEmail sets the contact email
func (c *Contact) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 254 characters")
	}
	c.Email = email
	c.touch()
	return nil
}

// SetPhone sets the contact phone number
func (c *Contact) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	c.Phone = phone
	c.touch()
	return nil
}

// SetNotes sets free-form notes
func (c *Contact) SetNotes(notes string) {
	c.Notes = notes
	c.touch()
}

// FullName returns the display name of the contact
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

func (c *Contact) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
