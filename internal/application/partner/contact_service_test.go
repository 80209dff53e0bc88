package partner

import (
	"context"
	"testing"

	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Contact, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByCompanyForTenant(ctx context.Context, tenantID, companyID uuid.UUID) ([]partner.Contact, error) {
	args := m.Called(ctx, tenantID, companyID)
	return args.Get(0).([]partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Contact, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Contact, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Contact), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockContactRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestContactService_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates a standalone contact", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewContactService(contactRepo, companyRepo)

		contactRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Contact")).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreateContactRequest{
			FirstName: "Maria",
			LastName:  "Papadopoulou",
			Email:     "maria@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Maria Papadopoulou", resp.FullName)
		assert.Nil(t, resp.CompanyID)
		companyRepo.AssertNotCalled(t, "FindByIDForTenant")
	})

	t.Run("verifies the company belongs to the tenant", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewContactService(contactRepo, companyRepo)

		companyID := uuid.New()
		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, companyID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), tenantID, CreateContactRequest{
			FirstName: "Nikos",
			CompanyID: &companyID,
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		contactRepo.AssertNotCalled(t, "Save")
	})

	t.Run("links the contact to an existing company", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewContactService(contactRepo, companyRepo)

		company, _ := partner.NewCompany(tenantID, "Harbor Foods")
		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, company.ID).Return(company, nil)
		contactRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Contact")).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreateContactRequest{
			FirstName: "Nikos",
			CompanyID: &company.ID,
		})

		assert.NoError(t, err)
		assert.Equal(t, company.ID, *resp.CompanyID)
	})
}

func TestContactService_Update(t *testing.T) {
	tenantID := uuid.New()

	t.Run("omitting company id detaches the contact", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewContactService(contactRepo, companyRepo)

		contact, _ := partner.NewContact(tenantID, "Eleni")
		companyID := uuid.New()
		contact.AttachToCompany(companyID)

		contactRepo.On("FindByIDForTenant", mock.Anything, tenantID, contact.ID).Return(contact, nil)
		contactRepo.On("Save", mock.Anything, contact).Return(nil)

		resp, err := service.Update(context.Background(), tenantID, contact.ID, UpdateContactRequest{FirstName: "Eleni"})

		assert.NoError(t, err)
		assert.Nil(t, resp.CompanyID)
	})

	t.Run("replaces all mutable fields", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewContactService(contactRepo, companyRepo)

		contact, _ := partner.NewContact(tenantID, "Eleni")
		_ = contact.SetPhone("+30 210 0000000")
		contactRepo.On("FindByIDForTenant", mock.Anything, tenantID, contact.ID).Return(contact, nil)
		contactRepo.On("Save", mock.Anything, contact).Return(nil)

		resp, err := service.Update(context.Background(), tenantID, contact.ID, UpdateContactRequest{
			FirstName: "Eleni",
			LastName:  "Papadaki",
			RoleTitle: "Head Chef",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Head Chef", resp.RoleTitle)
		assert.Equal(t, "Eleni Papadaki", resp.FullName)
		assert.Empty(t, resp.Phone, "omitted fields are cleared")
	})
}

func TestContactService_ListByCompany(t *testing.T) {
	tenantID := uuid.New()

	contactRepo := new(MockContactRepository)
	companyRepo := new(MockCompanyRepository)
	service := NewContactService(contactRepo, companyRepo)

	company, _ := partner.NewCompany(tenantID, "Harbor Foods")
	contact, _ := partner.NewContact(tenantID, "Maria")
	contact.AttachToCompany(company.ID)

	companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, company.ID).Return(company, nil)
	contactRepo.On("FindByCompanyForTenant", mock.Anything, tenantID, company.ID).Return([]partner.Contact{*contact}, nil)

	responses, err := service.ListByCompany(context.Background(), tenantID, company.ID)

	assert.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Equal(t, "Maria", responses[0].FirstName)
}
