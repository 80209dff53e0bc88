package trade

import (
	"context"
	"errors"
	"time"

	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// PurchaseOrderService handles purchase order business logic
type PurchaseOrderService struct {
	poRepo      trade.PurchaseOrderRepository
	companyRepo partner.CompanyRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	poRepo trade.PurchaseOrderRepository,
	companyRepo partner.CompanyRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:      poRepo,
		companyRepo: companyRepo,
	}
}

// Create creates a new purchase order with its lines in one save
func (s *PurchaseOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if _, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, req.SupplierID); err != nil {
		return nil, err
	}

	existing, err := s.poRepo.FindByNumberForTenant(ctx, tenantID, req.Number)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Purchase order number already in use: "+req.Number)
	}

	po, err := trade.NewPurchaseOrder(tenantID, req.SupplierID, req.Number)
	if err != nil {
		return nil, err
	}

	if req.Currency != "" {
		if err := po.SetCurrency(req.Currency); err != nil {
			return nil, err
		}
	}
	if req.DocDate != nil {
		po.SetDocDate(*req.DocDate)
	}
	if req.ExpectedDate != nil {
		po.SetExpectedDate(req.ExpectedDate)
	}
	if req.Notes != "" {
		po.SetNotes(req.Notes)
	}
	for _, line := range req.Lines {
		if _, err := po.AddLine(line.ItemID, line.Description, line.Qty, line.Unit, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// GetByID retrieves a purchase order by ID with lines in position order
func (s *PurchaseOrderService) GetByID(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}

	orders, err := s.poRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.poRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseOrderResponses(orders), total, nil
}

// Update replaces the purchase order header fields and the full line
// set atomically
func (s *PurchaseOrderService) Update(ctx context.Context, tenantID, poID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := po.SetCurrency(req.Currency); err != nil {
		return nil, err
	}
	docDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DocDate != nil {
		docDate = *req.DocDate
	}
	po.SetDocDate(docDate)
	po.SetExpectedDate(req.ExpectedDate)
	po.SetNotes(req.Notes)
	lines, err := buildPurchaseOrderLines(req.Lines)
	if err != nil {
		return nil, err
	}
	po.ReplaceLines(lines)

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// ChangeStatus moves a purchase order to another status
func (s *PurchaseOrderService) ChangeStatus(ctx context.Context, tenantID, poID uuid.UUID, req ChangePurchaseOrderStatusRequest) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}
	if err := po.ChangeStatus(trade.PurchaseOrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// Delete removes a purchase order and its lines
func (s *PurchaseOrderService) Delete(ctx context.Context, tenantID, poID uuid.UUID) error {
	return s.poRepo.DeleteForTenant(ctx, tenantID, poID)
}

func buildPurchaseOrderLines(reqs []DocumentLineRequest) ([]trade.PurchaseOrderLine, error) {
	scratch := &trade.PurchaseOrder{Lines: make([]trade.PurchaseOrderLine, 0, len(reqs))}
	for _, req := range reqs {
		if _, err := scratch.AddLine(req.ItemID, req.Description, req.Qty, req.Unit, req.UnitPrice); err != nil {
			return nil, err
		}
	}
	return scratch.Lines, nil
}
