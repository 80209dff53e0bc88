package catalog

import (
	"context"
	"errors"

	"github.com/foodcrm/backend/internal/domain/catalog"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemService handles catalog item operations
type ItemService struct {
	itemRepo catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
	}
}

// Create creates a new catalog item. The SKU must be unique within the tenant.
func (s *ItemService) Create(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	existing, err := s.itemRepo.FindBySKUForTenant(ctx, tenantID, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this SKU already exists")
	}

	item, err := catalog.NewItem(tenantID, req.SKU, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Unit != "" {
		if err := item.SetUnit(req.Unit); err != nil {
			return nil, err
		}
	}
	if req.VATRate != nil {
		if err := item.SetVATRate(*req.VATRate); err != nil {
			return nil, err
		}
	}
	if req.Category != "" {
		if err := item.SetCategory(req.Category); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetBySKU retrieves an item by SKU
func (s *ItemService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindBySKUForTenant(ctx, tenantID, sku)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with filtering and pagination
func (s *ItemService) List(ctx context.Context, tenantID uuid.UUID, filter ItemListFilter) ([]ItemResponse, int64, error) {
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
		Filters:  make(map[string]any),
	}

	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Unit != "" {
		domainFilter.Filters["unit"] = filter.Unit
	}

	items, err := s.itemRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.itemRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToItemResponses(items), total, nil
}

// Update replaces all mutable fields of an item. The SKU is immutable;
// an omitted vat_rate falls back to the standard 24%.
func (s *ItemService) Update(ctx context.Context, tenantID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := item.SetUnit(req.Unit); err != nil {
		return nil, err
	}
	vatRate := decimal.NewFromInt(24)
	if req.VATRate != nil {
		vatRate = *req.VATRate
	}
	if err := item.SetVATRate(vatRate); err != nil {
		return nil, err
	}
	if err := item.SetCategory(req.Category); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an item
func (s *ItemService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	return s.itemRepo.DeleteForTenant(ctx, tenantID, itemID)
}
