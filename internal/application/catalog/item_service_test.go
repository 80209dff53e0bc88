package catalog

import (
	"context"
	"testing"

	"github.com/foodcrm/backend/internal/domain/catalog"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindBySKUForTenant(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Item, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestItemService_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates an item with defaults", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo)

		repo.On("FindBySKUForTenant", mock.Anything, tenantID, "OIL-5L").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Item")).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreateItemRequest{
			SKU:  "OIL-5L",
			Name: "Extra virgin olive oil 5L",
		})

		assert.NoError(t, err)
		assert.Equal(t, "pcs", resp.Unit)
		assert.True(t, resp.VATRate.Equal(decimal.NewFromInt(24)))
	})

	t.Run("rejects a duplicate SKU", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo)

		existing, _ := catalog.NewItem(tenantID, "OIL-5L", "Olive oil")
		repo.On("FindBySKUForTenant", mock.Anything, tenantID, "OIL-5L").Return(existing, nil)

		_, err := service.Create(context.Background(), tenantID, CreateItemRequest{
			SKU:  "OIL-5L",
			Name: "Another oil",
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects a VAT rate above 100", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo)

		repo.On("FindBySKUForTenant", mock.Anything, tenantID, "FETA-1KG").Return(nil, shared.ErrNotFound)

		rate := decimal.NewFromInt(150)
		_, err := service.Create(context.Background(), tenantID, CreateItemRequest{
			SKU:     "FETA-1KG",
			Name:    "Feta",
			VATRate: &rate,
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestItemService_Update(t *testing.T) {
	tenantID := uuid.New()

	repo := new(MockItemRepository)
	service := NewItemService(repo)

	item, _ := catalog.NewItem(tenantID, "OIL-5L", "Olive oil")
	repo.On("FindByIDForTenant", mock.Anything, tenantID, item.ID).Return(item, nil)
	repo.On("Save", mock.Anything, item).Return(nil)

	resp, err := service.Update(context.Background(), tenantID, item.ID, UpdateItemRequest{
		Name:     "Olive oil 5L",
		Unit:     "ltr",
		Category: "oils",
	})

	assert.NoError(t, err)
	assert.Equal(t, "OIL-5L", resp.SKU)
	assert.Equal(t, "Olive oil 5L", resp.Name)
	assert.Equal(t, "ltr", resp.Unit)
	assert.Equal(t, "oils", resp.Category)
	assert.True(t, decimal.NewFromInt(24).Equal(resp.VATRate), "omitted vat rate falls back to the standard rate")
}
