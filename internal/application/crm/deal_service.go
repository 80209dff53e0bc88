package crm

import (
	"context"

	"github.com/foodcrm/backend/internal/domain/crm"
	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealService handles deal pipeline operations
type DealService struct {
	dealRepo    crm.DealRepository
	companyRepo partner.CompanyRepository
	contactRepo partner.ContactRepository
	metrics     *telemetry.BusinessMetrics
}

// NewDealService creates a new DealService. Metrics may be nil.
func NewDealService(
	dealRepo crm.DealRepository,
	companyRepo partner.CompanyRepository,
	contactRepo partner.ContactRepository,
	metrics *telemetry.BusinessMetrics,
) *DealService {
	return &DealService{
		dealRepo:    dealRepo,
		companyRepo: companyRepo,
		contactRepo: contactRepo,
		metrics:     metrics,
	}
}

// Create creates a new deal at the lead stage
func (s *DealService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDealRequest) (*DealResponse, error) {
	deal, err := crm.NewDeal(tenantID, req.Title)
	if err != nil {
		return nil, err
	}

	if req.CompanyID != nil {
		if _, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, *req.CompanyID); err != nil {
			return nil, err
		}
		deal.SetCompany(req.CompanyID)
	}
	if req.ContactID != nil {
		if _, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, *req.ContactID); err != nil {
			return nil, err
		}
		deal.SetContact(req.ContactID)
	}
	if req.AssignedTo != nil {
		deal.Assign(req.AssignedTo)
	}
	if req.Value != nil {
		currency := req.Currency
		if currency == "" {
			currency = deal.Currency
		}
		if err := deal.SetValue(*req.Value, currency); err != nil {
			return nil, err
		}
	}
	if req.ExpectedClose != nil {
		deal.SetExpectedClose(req.ExpectedClose)
	}
	if req.Notes != "" {
		deal.SetNotes(req.Notes)
	}

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}

	response := ToDealResponse(deal)
	return &response, nil
}

// GetByID retrieves a deal by ID
func (s *DealService) GetByID(ctx context.Context, tenantID, dealID uuid.UUID) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByIDForTenant(ctx, tenantID, dealID)
	if err != nil {
		return nil, err
	}

	response := ToDealResponse(deal)
	return &response, nil
}

// List retrieves deals with filtering and pagination
func (s *DealService) List(ctx context.Context, tenantID uuid.UUID, filter DealListFilter) ([]DealResponse, int64, error) {
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

	if filter.Stage != "" {
		domainFilter.Filters["stage"] = filter.Stage
	}
	if filter.CompanyID != nil {
		domainFilter.Filters["company_id"] = *filter.CompanyID
	}
	if filter.AssignedTo != nil {
		domainFilter.Filters["assigned_to"] = *filter.AssignedTo
	}

	deals, err := s.dealRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.dealRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDealResponses(deals), total, nil
}

// Update replaces all mutable fields of a deal; the stage is untouched
func (s *DealService) Update(ctx context.Context, tenantID, dealID uuid.UUID, req UpdateDealRequest) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByIDForTenant(ctx, tenantID, dealID)
	if err != nil {
		return nil, err
	}

	if err := deal.SetTitle(req.Title); err != nil {
		return nil, err
	}
	if req.CompanyID == nil || *req.CompanyID == uuid.Nil {
		deal.SetCompany(nil)
	} else {
		if _, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, *req.CompanyID); err != nil {
			return nil, err
		}
		deal.SetCompany(req.CompanyID)
	}
	if req.ContactID == nil || *req.ContactID == uuid.Nil {
		deal.SetContact(nil)
	} else {
		if _, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, *req.ContactID); err != nil {
			return nil, err
		}
		deal.SetContact(req.ContactID)
	}
	if req.AssignedTo == nil || *req.AssignedTo == uuid.Nil {
		deal.Assign(nil)
	} else {
		deal.Assign(req.AssignedTo)
	}
	value := decimal.Zero
	if req.Value != nil {
		value = *req.Value
	}
	if err := deal.SetValue(value, req.Currency); err != nil {
		return nil, err
	}
	deal.SetExpectedClose(req.ExpectedClose)
	deal.SetNotes(req.Notes)

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}

	response := ToDealResponse(deal)
	return &response, nil
}

// ChangeStage moves a deal to another pipeline stage
func (s *DealService) ChangeStage(ctx context.Context, tenantID, dealID uuid.UUID, req ChangeDealStageRequest) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByIDForTenant(ctx, tenantID, dealID)
	if err != nil {
		return nil, err
	}

	if err := deal.ChangeStage(crm.DealStage(req.Stage)); err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}

	s.metrics.RecordDealStageChange(ctx, tenantID, req.Stage)

	response := ToDealResponse(deal)
	return &response, nil
}

// Delete removes a deal
func (s *DealService) Delete(ctx context.Context, tenantID, dealID uuid.UUID) error {
	return s.dealRepo.DeleteForTenant(ctx, tenantID, dealID)
}
