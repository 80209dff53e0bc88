package models

import (
	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CompanyModel is the persistence model for companies
type CompanyModel struct {
	TenantAggregateModel
	Name       string `gorm:"type:varchar(200);not null;index"`
	VAT        string `gorm:"type:varchar(50)"`
	Country    string `gorm:"type:varchar(100)"`
	Email      string `gorm:"type:varchar(254);index"`
	Phone      string `gorm:"type:varchar(50)"`
	Address    string `gorm:"type:varchar(500)"`
	IsCustomer bool   `gorm:"not null;default:true"`
	IsSupplier bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *partner.Company {
	company := &partner.Company{
		Name:       m.Name,
		VAT:        m.VAT,
		Country:    m.Country,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		IsCustomer: m.IsCustomer,
		IsSupplier: m.IsSupplier,
	}
	m.PopulateTenantAggregateRoot(&company.TenantAggregateRoot)
	return company
}

// FromDomain populates the model from a domain Company
func (m *CompanyModel) FromDomain(c *partner.Company) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.VAT = c.VAT
	m.Country = c.Country
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.IsCustomer = c.IsCustomer
	m.IsSupplier = c.IsSupplier
}

// ContactModel is the persistence model for contacts
type ContactModel struct {
	TenantAggregateModel
	CompanyID *uuid.UUID `gorm:"type:uuid;index"`
	FirstName string     `gorm:"type:varchar(100);not null"`
	LastName  string     `gorm:"type:varchar(100)"`
	RoleTitle string     `gorm:"type:varchar(100)"`
	Email     string     `gorm:"type:varchar(254);index"`
	Phone     string     `gorm:"type:varchar(50)"`
	Notes     string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact
func (m *ContactModel) ToDomain() *partner.Contact {
	contact := &partner.Contact{
		CompanyID: m.CompanyID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		RoleTitle: m.RoleTitle,
		Email:     m.Email,
		Phone:     m.Phone,
		Notes:     m.Notes,
	}
	m.PopulateTenantAggregateRoot(&contact.TenantAggregateRoot)
	return contact
}

// FromDomain populates the model from a domain Contact
func (m *ContactModel) FromDomain(c *partner.Contact) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.CompanyID = c.CompanyID
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.RoleTitle = c.RoleTitle
	m.Email = c.Email
	m.Phone = c.Phone
	m.Notes = c.Notes
}
