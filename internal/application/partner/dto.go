package partner

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// =============================================================================
// Company DTOs
// =============================================================================

// CreateCompanyRequest represents a request to create a new company
type CreateCompanyRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	VAT        string `json:"vat" binding:"max=50"`
	Country    string `json:"country" binding:"max=100"`
	Email      string `json:"email" binding:"omitempty,email,max=254"`
	Phone      string `json:"phone" binding:"max=50"`
	Address    string `json:"address" binding:"max=500"`
	IsCustomer *bool  `json:"is_customer"`
	IsSupplier *bool  `json:"is_supplier"`
}

// UpdateCompanyRequest carries the full replacement state of a company.
// Omitted fields reset to their zero value.
type UpdateCompanyRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	VAT        string `json:"vat" binding:"max=50"`
	Country    string `json:"country" binding:"max=100"`
	Email      string `json:"email" binding:"omitempty,email,max=254"`
	Phone      string `json:"phone" binding:"max=50"`
	Address    string `json:"address" binding:"max=500"`
	IsCustomer bool   `json:"is_customer"`
	IsSupplier bool   `json:"is_supplier"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	Name       string    `json:"name"`
	VAT        string    `json:"vat"`
	Country    string    `json:"country"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	IsCustomer bool      `json:"is_customer"`
	IsSupplier bool      `json:"is_supplier"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// CompanyListFilter contains filters for listing companies
type CompanyListFilter struct {
	Search     string `form:"search"`
	Country    string `form:"country"`
	IsCustomer *bool  `form:"is_customer"`
	IsSupplier *bool  `form:"is_supplier"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
}

// ToCompanyResponse converts a domain company to a response DTO
func ToCompanyResponse(c *partner.Company) CompanyResponse {
	return CompanyResponse{
		ID:         c.ID,
		TenantID:   c.TenantID,
		Name:       c.Name,
		VAT:        c.VAT,
		Country:    c.Country,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		IsCustomer: c.IsCustomer,
		IsSupplier: c.IsSupplier,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Version:    c.Version,
	}
}

// ToCompanyResponses converts a slice of domain companies
func ToCompanyResponses(companies []partner.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}

// =============================================================================
// Contact DTOs
// =============================================================================

// CreateContactRequest represents a request to create a new contact
type CreateContactRequest struct {
	CompanyID *uuid.UUID `json:"company_id"`
	FirstName string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string     `json:"last_name" binding:"max=100"`
	RoleTitle string     `json:"role_title" binding:"max=100"`
	Email     string     `json:"email" binding:"omitempty,email,max=254"`
	Phone     string     `json:"phone" binding:"max=50"`
	Notes     string     `json:"notes"`
}

// UpdateContactRequest carries the full replacement state of a contact.
// A nil company_id detaches the contact from its company.
type UpdateContactRequest struct {
	CompanyID *uuid.UUID `json:"company_id"`
	FirstName string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string     `json:"last_name" binding:"max=100"`
	RoleTitle string     `json:"role_title" binding:"max=100"`
	Email     string     `json:"email" binding:"omitempty,email,max=254"`
	Phone     string     `json:"phone" binding:"max=50"`
	Notes     string     `json:"notes"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	CompanyID *uuid.UUID `json:"company_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	FullName  string     `json:"full_name"`
	RoleTitle string     `json:"role_title"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `json:"version"`
}

// ContactListFilter contains filters for listing contacts
type ContactListFilter struct {
	Search    string     `form:"search"`
	CompanyID *uuid.UUID `form:"company_id"`
	RoleTitle string     `form:"role_title"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir"`
}

// ToContactResponse converts a domain contact to a response DTO
func ToContactResponse(c *partner.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		TenantID:  c.TenantID,
		CompanyID: c.CompanyID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		RoleTitle: c.RoleTitle,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ToContactResponses converts a slice of domain contacts
func ToContactResponses(contacts []partner.Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}
