package printing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/foodcrm/backend/internal/application/printing"
	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/domain/trade"
	infra "github.com/foodcrm/backend/internal/infrastructure/printing"
	"github.com/foodcrm/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mocks
// =============================================================================

// MockQuoteRepository is a mock implementation of trade.QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Quote, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*trade.Quote, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Quote, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Quote, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *trade.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuoteRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockQuoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of trade.PurchaseOrderRepository
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

// MockCompanyRepository is a mock implementation of partner.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Company, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Company, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Company, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Company, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRenderer is a mock implementation of infra.PDFRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.RenderResult), args.Error(1)
}

func (m *MockRenderer) Close() error {
	args := m.Called()
	return args.Error(0)
}

// =============================================================================
// Fixtures
// =============================================================================

func quoteFixture(t *testing.T, tenantID, companyID uuid.UUID) *trade.Quote {
	t.Helper()
	quote, err := trade.NewQuote(tenantID, companyID, "Q-2026-0042")
	assert.NoError(t, err)
	_, err = quote.AddLine(nil, "Extra virgin olive oil 5L", decimal.NewFromInt(12), "", decimal.RequireFromString("38.50"))
	assert.NoError(t, err)
	assert.NoError(t, quote.ChangeStatus(trade.QuoteStatusSent))
	quote.SetDocDate(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	return quote
}

func poFixture(t *testing.T, tenantID, supplierID uuid.UUID) *trade.PurchaseOrder {
	t.Helper()
	po, err := trade.NewPurchaseOrder(tenantID, supplierID, "PO-2026-0007")
	assert.NoError(t, err)
	_, err = po.AddLine(nil, "Tomatoes crate", decimal.NewFromInt(30), "crate", decimal.RequireFromString("8.40"))
	assert.NoError(t, err)
	expected := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	po.SetExpectedDate(&expected)
	return po
}

func newExportService(quoteRepo *MockQuoteRepository, poRepo *MockPurchaseOrderRepository, companyRepo *MockCompanyRepository, renderer *MockRenderer, archive printing.ArchiveStorage, archivePDFs bool) (*printing.ExportService, error) {
	engine, err := infra.NewTemplateEngine()
	if err != nil {
		return nil, err
	}
	return printing.NewExportService(quoteRepo, poRepo, companyRepo, engine, renderer, archive, archivePDFs, nil, nil), nil
}

// =============================================================================
// ExportService Tests
// =============================================================================

func TestExportService_ExportQuotePDF(t *testing.T) {
	tenantID := uuid.New()
	companyID := uuid.New()

	t.Run("renders quote document", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		renderer := new(MockRenderer)
		service, err := newExportService(quoteRepo, poRepo, companyRepo, renderer, nil, false)
		assert.NoError(t, err)

		quote := quoteFixture(t, tenantID, companyID)
		company, err := partner.NewCompany(tenantID, "Aegean Catering Ltd")
		assert.NoError(t, err)

		quoteRepo.On("FindByIDForTenant", mock.Anything, tenantID, quote.ID).Return(quote, nil)
		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, companyID).Return(company, nil)
		renderer.On("Render", mock.Anything, mock.MatchedBy(func(req *infra.RenderRequest) bool {
			return strings.Contains(req.HTML, "Quote Q-2026-0042") &&
				strings.Contains(req.HTML, "Aegean Catering Ltd") &&
				strings.Contains(req.HTML, "Date: 2026-06-01") &&
				strings.Contains(req.HTML, "462.0000") &&
				req.Title == "Quote Q-2026-0042"
		})).Return(&infra.RenderResult{PDFData: []byte("%PDF-1.7"), PageCount: 1}, nil)

		result, err := service.ExportQuotePDF(context.Background(), tenantID, quote.ID)

		assert.NoError(t, err)
		assert.Equal(t, "Quote_Q-2026-0042.pdf", result.Filename)
		assert.Equal(t, "application/pdf", result.ContentType)
		assert.Equal(t, 1, result.PageCount)
		assert.Equal(t, []byte("%PDF-1.7"), result.PDFData)
		renderer.AssertExpectations(t)
	})

	t.Run("archives rendered pdf when enabled", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		renderer := new(MockRenderer)
		archive := storage.NewStubArchiveStorage()
		service, err := newExportService(quoteRepo, poRepo, companyRepo, renderer, archive, true)
		assert.NoError(t, err)

		quote := quoteFixture(t, tenantID, companyID)
		company, err := partner.NewCompany(tenantID, "Aegean Catering Ltd")
		assert.NoError(t, err)

		quoteRepo.On("FindByIDForTenant", mock.Anything, tenantID, quote.ID).Return(quote, nil)
		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, companyID).Return(company, nil)
		renderer.On("Render", mock.Anything, mock.Anything).Return(&infra.RenderResult{PDFData: []byte("%PDF-1.7"), PageCount: 1}, nil)

		_, err = service.ExportQuotePDF(context.Background(), tenantID, quote.ID)
		assert.NoError(t, err)

		key := tenantID.String() + "/quote/Quote_Q-2026-0042.pdf"
		stored, ok := archive.Get(key)
		assert.True(t, ok)
		assert.Equal(t, []byte("%PDF-1.7"), stored)
	})

	t.Run("returns not found for cross-tenant quote", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		renderer := new(MockRenderer)
		service, err := newExportService(quoteRepo, poRepo, companyRepo, renderer, nil, false)
		assert.NoError(t, err)

		quoteID := uuid.New()
		quoteRepo.On("FindByIDForTenant", mock.Anything, tenantID, quoteID).Return(nil, shared.ErrNotFound)

		result, err := service.ExportQuotePDF(context.Background(), tenantID, quoteID)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	})

	t.Run("propagates render failure", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		renderer := new(MockRenderer)
		service, err := newExportService(quoteRepo, poRepo, companyRepo, renderer, nil, false)
		assert.NoError(t, err)

		quote := quoteFixture(t, tenantID, companyID)
		company, err := partner.NewCompany(tenantID, "Aegean Catering Ltd")
		assert.NoError(t, err)

		quoteRepo.On("FindByIDForTenant", mock.Anything, tenantID, quote.ID).Return(quote, nil)
		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, companyID).Return(company, nil)
		renderFailure := infra.NewRenderError(infra.ErrCodeRenderTimeout, "rendering timed out", nil)
		renderer.On("Render", mock.Anything, mock.Anything).Return(nil, renderFailure)

		result, err := service.ExportQuotePDF(context.Background(), tenantID, quote.ID)

		assert.Nil(t, result)
		var renderErr *infra.RenderError
		assert.ErrorAs(t, err, &renderErr)
		assert.Equal(t, infra.ErrCodeRenderTimeout, renderErr.Code)
	})
}

func TestExportService_ExportPurchaseOrderPDF(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	t.Run("renders purchase order document", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		poRepo := new(MockPurchaseOrderRepository)
		companyRepo := new(MockCompanyRepository)
		renderer := new(MockRenderer)
		service, err := newExportService(quoteRepo, poRepo, companyRepo, renderer, nil, false)
		assert.NoError(t, err)

		po := poFixture(t, tenantID, supplierID)
		supplier, err := partner.NewCompany(tenantID, "Thessaly Farms SA")
		assert.NoError(t, err)

		poRepo.On("FindByIDForTenant", mock.Anything, tenantID, po.ID).Return(po, nil)
		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, supplierID).Return(supplier, nil)
		renderer.On("Render", mock.Anything, mock.MatchedBy(func(req *infra.RenderRequest) bool {
			return strings.Contains(req.HTML, "Purchase Order PO-2026-0007") &&
				strings.Contains(req.HTML, "Supplier: Thessaly Farms SA") &&
				strings.Contains(req.HTML, "Expected Date: 2026-09-15") &&
				strings.Contains(req.HTML, "252.0000")
		})).Return(&infra.RenderResult{PDFData: []byte("%PDF-1.7"), PageCount: 1}, nil)

		result, err := service.ExportPurchaseOrderPDF(context.Background(), tenantID, po.ID)

		assert.NoError(t, err)
		assert.Equal(t, "PO_PO-2026-0007.pdf", result.Filename)
		renderer.AssertExpectations(t)
	})
}
