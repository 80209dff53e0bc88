package trade

import (
	"context"
	"testing"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, po *trade.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestPurchaseOrderService_Create(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	t.Run("creates purchase order with expected date", func(t *testing.T) {
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewPurchaseOrderService(poRepo, companyRepo)

		supplier := testCompany(t, tenantID, "Thessaly Farms SA")
		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, supplierID).Return(supplier, nil)
		poRepo.On("FindByNumberForTenant", mock.Anything, tenantID, "PO-2026-0007").Return(nil, shared.ErrNotFound)
		poRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		expected := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		docDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		resp, err := service.Create(context.Background(), tenantID, CreatePurchaseOrderRequest{
			SupplierID:   supplierID,
			Number:       "PO-2026-0007",
			DocDate:      &docDate,
			ExpectedDate: &expected,
			Lines: []DocumentLineRequest{
				{Description: "Tomatoes crate", Qty: decimal.NewFromInt(30), Unit: "crate", UnitPrice: decimal.RequireFromString("8.40")},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, "PO-2026-0007", resp.Number)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "EUR", resp.Currency)
		assert.Equal(t, expected, *resp.ExpectedDate)
		assert.True(t, resp.DocDate.Equal(docDate))
		assert.Len(t, resp.Lines, 1)
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("252.00")))
		poRepo.AssertExpectations(t)
	})

	t.Run("rejects supplier from another tenant", func(t *testing.T) {
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewPurchaseOrderService(poRepo, companyRepo)

		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, supplierID).Return(nil, shared.ErrNotFound)

		resp, err := service.Create(context.Background(), tenantID, CreatePurchaseOrderRequest{
			SupplierID: supplierID,
			Number:     "PO-2026-0008",
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		poRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate number", func(t *testing.T) {
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewPurchaseOrderService(poRepo, companyRepo)

		supplier := testCompany(t, tenantID, "Thessaly Farms SA")
		existing, err := trade.NewPurchaseOrder(tenantID, supplierID, "PO-2026-0001")
		assert.NoError(t, err)

		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, supplierID).Return(supplier, nil)
		poRepo.On("FindByNumberForTenant", mock.Anything, tenantID, "PO-2026-0001").Return(existing, nil)

		resp, err := service.Create(context.Background(), tenantID, CreatePurchaseOrderRequest{
			SupplierID: supplierID,
			Number:     "PO-2026-0001",
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		poRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPurchaseOrderService_Update(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	t.Run("replaces lines wholesale", func(t *testing.T) {
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewPurchaseOrderService(poRepo, companyRepo)

		po, err := trade.NewPurchaseOrder(tenantID, supplierID, "PO-2026-0010")
		assert.NoError(t, err)
		_, err = po.AddLine(nil, "Old line", decimal.NewFromInt(5), "", decimal.NewFromInt(2))
		assert.NoError(t, err)

		poRepo.On("FindByIDForTenant", mock.Anything, tenantID, po.ID).Return(po, nil)
		poRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		lines := []DocumentLineRequest{
			{Description: "Potatoes 25kg sack", Qty: decimal.NewFromInt(10), Unit: "sack", UnitPrice: decimal.RequireFromString("15.50")},
		}
		resp, err := service.Update(context.Background(), tenantID, po.ID, UpdatePurchaseOrderRequest{Lines: lines})

		assert.NoError(t, err)
		assert.Len(t, resp.Lines, 1)
		assert.Equal(t, "Potatoes 25kg sack", resp.Lines[0].Description)
		assert.Equal(t, 0, resp.Lines[0].Position)
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("155.00")))
	})
}

func TestPurchaseOrderService_ChangeStatus(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	t.Run("walks draft to received", func(t *testing.T) {
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewPurchaseOrderService(poRepo, companyRepo)

		po, err := trade.NewPurchaseOrder(tenantID, supplierID, "PO-2026-0020")
		assert.NoError(t, err)

		poRepo.On("FindByIDForTenant", mock.Anything, tenantID, po.ID).Return(po, nil)
		poRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		for _, status := range []string{"sent", "confirmed", "received"} {
			resp, err := service.ChangeStatus(context.Background(), tenantID, po.ID, ChangePurchaseOrderStatusRequest{Status: status})
			assert.NoError(t, err)
			assert.Equal(t, status, resp.Status)
		}
	})
}

func TestPurchaseOrderService_Delete(t *testing.T) {
	tenantID := uuid.New()

	t.Run("delegates to tenant scoped delete", func(t *testing.T) {
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		service := NewPurchaseOrderService(poRepo, companyRepo)

		poID := uuid.New()
		poRepo.On("DeleteForTenant", mock.Anything, tenantID, poID).Return(nil)

		assert.NoError(t, service.Delete(context.Background(), tenantID, poID))
		poRepo.AssertExpectations(t)
	})
}
