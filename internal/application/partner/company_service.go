package partner

import (
	"context"

	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyService handles company-related business operations
type CompanyService struct {
	companyRepo partner.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo partner.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
	}
}

// Create creates a new company
func (s *CompanyService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCompanyRequest) (*CompanyResponse, error) {
	company, err := partner.NewCompany(tenantID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.VAT != "" {
		if err := company.SetVAT(req.VAT); err != nil {
			return nil, err
		}
	}
	if req.Country != "" {
		if err := company.SetCountry(req.Country); err != nil {
			return nil, err
		}
	}
	if req.Email != "" {
		if err := company.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != "" {
		if err := company.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Address != "" {
		if err := company.SetAddress(req.Address); err != nil {
			return nil, err
		}
	}
	if req.IsCustomer != nil || req.IsSupplier != nil {
		isCustomer := company.IsCustomer
		isSupplier := company.IsSupplier
		if req.IsCustomer != nil {
			isCustomer = *req.IsCustomer
		}
		if req.IsSupplier != nil {
			isSupplier = *req.IsSupplier
		}
		company.SetRoles(isCustomer, isSupplier)
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// List retrieves companies with filtering and pagination
func (s *CompanyService) List(ctx context.Context, tenantID uuid.UUID, filter CompanyListFilter) ([]CompanyResponse, int64, error) {
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

	if filter.Country != "" {
		domainFilter.Filters["country"] = filter.Country
	}
	if filter.IsCustomer != nil {
		domainFilter.Filters["is_customer"] = *filter.IsCustomer
	}
	if filter.IsSupplier != nil {
		domainFilter.Filters["is_supplier"] = *filter.IsSupplier
	}

	companies, err := s.companyRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.companyRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCompanyResponses(companies), total, nil
}

// Update replaces all mutable fields of a company with the request payload
func (s *CompanyService) Update(ctx context.Context, tenantID, companyID uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}

	if err := company.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := company.SetVAT(req.VAT); err != nil {
		return nil, err
	}
	if err := company.SetCountry(req.Country); err != nil {
		return nil, err
	}
	if err := company.SetEmail(req.Email); err != nil {
		return nil, err
	}
	if err := company.SetPhone(req.Phone); err != nil {
		return nil, err
	}
	if err := company.SetAddress(req.Address); err != nil {
		return nil, err
	}
	company.SetRoles(req.IsCustomer, req.IsSupplier)

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// Delete removes a company
func (s *CompanyService) Delete(ctx context.Context, tenantID, companyID uuid.UUID) error {
	return s.companyRepo.DeleteForTenant(ctx, tenantID, companyID)
}
