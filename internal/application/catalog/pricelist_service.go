package catalog

import (
	"context"

	"github.com/foodcrm/backend/internal/domain/catalog"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceListService handles price list operations
type PriceListService struct {
	priceListRepo catalog.PriceListRepository
	itemRepo      catalog.ItemRepository
}

// NewPriceListService creates a new PriceListService
func NewPriceListService(priceListRepo catalog.PriceListRepository, itemRepo catalog.ItemRepository) *PriceListService {
	return &PriceListService{
		priceListRepo: priceListRepo,
		itemRepo:      itemRepo,
	}
}

// Create creates a price list with its lines in one atomic write
func (s *PriceListService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePriceListRequest) (*PriceListResponse, error) {
	priceList, err := catalog.NewPriceList(tenantID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Currency != "" {
		if err := priceList.SetCurrency(req.Currency); err != nil {
			return nil, err
		}
	}
	if req.ValidFrom != nil || req.ValidTo != nil {
		if err := priceList.SetValidity(req.ValidFrom, req.ValidTo); err != nil {
			return nil, err
		}
	}

	if err := s.appendLines(ctx, tenantID, priceList, req.Lines); err != nil {
		return nil, err
	}

	if err := s.priceListRepo.Save(ctx, priceList); err != nil {
		return nil, err
	}

	response := ToPriceListResponse(priceList)
	return &response, nil
}

// GetByID retrieves a price list with its lines
func (s *PriceListService) GetByID(ctx context.Context, tenantID, priceListID uuid.UUID) (*PriceListResponse, error) {
	priceList, err := s.priceListRepo.FindByIDForTenant(ctx, tenantID, priceListID)
	if err != nil {
		return nil, err
	}

	response := ToPriceListResponse(priceList)
	return &response, nil
}

// List retrieves price lists with filtering and pagination
func (s *PriceListService) List(ctx context.Context, tenantID uuid.UUID, filter PriceListListFilter) ([]PriceListResponse, int64, error) {
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

	if filter.Currency != "" {
		domainFilter.Filters["currency"] = filter.Currency
	}

	lists, err := s.priceListRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.priceListRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPriceListResponses(lists), total, nil
}

// Update replaces the price list header and its whole line set
// atomically.
func (s *PriceListService) Update(ctx context.Context, tenantID, priceListID uuid.UUID, req UpdatePriceListRequest) (*PriceListResponse, error) {
	priceList, err := s.priceListRepo.FindByIDForTenant(ctx, tenantID, priceListID)
	if err != nil {
		return nil, err
	}

	if err := priceList.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := priceList.SetCurrency(req.Currency); err != nil {
		return nil, err
	}
	if err := priceList.SetValidity(req.ValidFrom, req.ValidTo); err != nil {
		return nil, err
	}
	priceList.Lines = priceList.Lines[:0]
	if err := s.appendLines(ctx, tenantID, priceList, req.Lines); err != nil {
		return nil, err
	}

	if err := s.priceListRepo.Save(ctx, priceList); err != nil {
		return nil, err
	}

	response := ToPriceListResponse(priceList)
	return &response, nil
}

// ListLines returns the line set of a price list
func (s *PriceListService) ListLines(ctx context.Context, tenantID, priceListID uuid.UUID) ([]PriceListLineResponse, error) {
	priceList, err := s.priceListRepo.FindByIDForTenant(ctx, tenantID, priceListID)
	if err != nil {
		return nil, err
	}
	return ToPriceListLineResponses(priceList.Lines), nil
}

// AddLine appends one price entry to a price list
func (s *PriceListService) AddLine(ctx context.Context, tenantID, priceListID uuid.UUID, req PriceListLineRequest) (*PriceListLineResponse, error) {
	priceList, err := s.priceListRepo.FindByIDForTenant(ctx, tenantID, priceListID)
	if err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, req.ItemID); err != nil {
		return nil, err
	}
	moq := decimal.Zero
	if req.MOQ != nil {
		moq = *req.MOQ
	}
	line, err := priceList.AddLine(req.ItemID, req.Price, moq)
	if err != nil {
		return nil, err
	}
	if err := s.priceListRepo.Save(ctx, priceList); err != nil {
		return nil, err
	}
	response := ToPriceListLineResponse(line)
	return &response, nil
}

// RemoveLine deletes one price entry from a price list
func (s *PriceListService) RemoveLine(ctx context.Context, tenantID, priceListID, lineID uuid.UUID) error {
	priceList, err := s.priceListRepo.FindByIDForTenant(ctx, tenantID, priceListID)
	if err != nil {
		return err
	}
	if err := priceList.RemoveLine(lineID); err != nil {
		return err
	}
	return s.priceListRepo.Save(ctx, priceList)
}

// Delete removes a price list and its lines
func (s *PriceListService) Delete(ctx context.Context, tenantID, priceListID uuid.UUID) error {
	return s.priceListRepo.DeleteForTenant(ctx, tenantID, priceListID)
}

// appendLines validates each referenced item against the tenant and adds
// the lines to the aggregate.
func (s *PriceListService) appendLines(ctx context.Context, tenantID uuid.UUID, priceList *catalog.PriceList, lines []PriceListLineRequest) error {
	for _, line := range lines {
		if _, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, line.ItemID); err != nil {
			return err
		}
		moq := decimal.Zero
		if line.MOQ != nil {
			moq = *line.MOQ
		}
		if _, err := priceList.AddLine(line.ItemID, line.Price, moq); err != nil {
			return err
		}
	}
	return nil
}
