package partner

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewCompany(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates company with defaults", func(t *testing.T) {
		company, err := NewCompany(tenantID, "Mykonos Catering Ltd")
		assert.NoError(t, err)
		assert.Equal(t, tenantID, company.TenantID)
		assert.Equal(t, "Mykonos Catering Ltd", company.Name)
		assert.True(t, company.IsCustomer)
		assert.False(t, company.IsSupplier)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := NewCompany(tenantID, "  ")
		assert.Error(t, err)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		_, err := NewCompany(tenantID, strings.Repeat("x", 201))
		assert.Error(t, err)
	})
}

func TestCompanySetters(t *testing.T) {
	tenantID := uuid.New()
	company, err := NewCompany(tenantID, "Mykonos Catering Ltd")
	assert.NoError(t, err)

	t.Run("email is lowercased", func(t *testing.T) {
		assert.NoError(t, company.SetEmail("Orders@Mykonos.GR "))
		assert.Equal(t, "orders@mykonos.gr", company.Email)
	})

	t.Run("roles are independent flags", func(t *testing.T) {
		company.SetRoles(false, true)
		assert.False(t, company.IsCustomer)
		assert.True(t, company.IsSupplier)
	})

	t.Run("version increments on change", func(t *testing.T) {
		before := company.Version
		assert.NoError(t, company.SetPhone("+30 210 1234567"))
		assert.Equal(t, before+1, company.Version)
	})
}

func TestContact(t *testing.T) {
	tenantID := uuid.New()

	t.Run("requires first name", func(t *testing.T) {
		_, err := NewContact(tenantID, "")
		assert.Error(t, err)
	})

	t.Run("full name joins first and last", func(t *testing.T) {
		contact, err := NewContact(tenantID, "Maria")
		assert.NoError(t, err)
		assert.Equal(t, "Maria", contact.FullName())
		assert.NoError(t, contact.SetName("Maria", "Papadopoulou"))
		assert.Equal(t, "Maria Papadopoulou", contact.FullName())
	})

	t.Run("can attach and detach a company", func(t *testing.T) {
		contact, err := NewContact(tenantID, "Maria")
		assert.NoError(t, err)
		companyID := uuid.New()
		contact.AttachToCompany(companyID)
		assert.NotNil(t, contact.CompanyID)
		assert.Equal(t, companyID, *contact.CompanyID)
		contact.DetachFromCompany()
		assert.Nil(t, contact.CompanyID)
	})
}
