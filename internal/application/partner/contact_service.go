package partner

import (
	"context"

	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactService handles contact-related business operations
type ContactService struct {
	contactRepo partner.ContactRepository
	companyRepo partner.CompanyRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo partner.ContactRepository, companyRepo partner.CompanyRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		companyRepo: companyRepo,
	}
}

// Create creates a new contact. A company link is only accepted when the
// company belongs to the same tenant.
func (s *ContactService) Create(ctx context.Context, tenantID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	contact, err := partner.NewContact(tenantID, req.FirstName)
	if err != nil {
		return nil, err
	}

	if req.LastName != "" {
		if err := contact.SetName(req.FirstName, req.LastName); err != nil {
			return nil, err
		}
	}
	if req.CompanyID != nil {
		if _, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, *req.CompanyID); err != nil {
			return nil, err
		}
		contact.AttachToCompany(*req.CompanyID)
	}
	if req.RoleTitle != "" {
		if err := contact.SetRoleTitle(req.RoleTitle); err != nil {
			return nil, err
		}
	}
	if req.Email != "" {
		if err := contact.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != "" {
		if err := contact.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		contact.SetNotes(req.Notes)
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// GetByID retrieves a contact by ID
func (s *ContactService) GetByID(ctx context.Context, tenantID, contactID uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, contactID)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, tenantID uuid.UUID, filter ContactListFilter) ([]ContactResponse, int64, error) {
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

	if filter.CompanyID != nil {
		domainFilter.Filters["company_id"] = *filter.CompanyID
	}
	if filter.RoleTitle != "" {
		domainFilter.Filters["role_title"] = filter.RoleTitle
	}

	contacts, err := s.contactRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.contactRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToContactResponses(contacts), total, nil
}

// ListByCompany retrieves all contacts attached to a company
func (s *ContactService) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]ContactResponse, error) {
	if _, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, companyID); err != nil {
		return nil, err
	}

	contacts, err := s.contactRepo.FindByCompanyForTenant(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}

	return ToContactResponses(contacts), nil
}

// Update replaces all mutable fields of a contact with the request payload
func (s *ContactService) Update(ctx context.Context, tenantID, contactID uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, contactID)
	if err != nil {
		return nil, err
	}

	if err := contact.SetName(req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	if req.CompanyID == nil || *req.CompanyID == uuid.Nil {
		contact.DetachFromCompany()
	} else {
		if _, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, *req.CompanyID); err != nil {
			return nil, err
		}
		contact.AttachToCompany(*req.CompanyID)
	}
	if err := contact.SetRoleTitle(req.RoleTitle); err != nil {
		return nil, err
	}
	if err := contact.SetEmail(req.Email); err != nil {
		return nil, err
	}
	if err := contact.SetPhone(req.Phone); err != nil {
		return nil, err
	}
	contact.SetNotes(req.Notes)

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, tenantID, contactID uuid.UUID) error {
	return s.contactRepo.DeleteForTenant(ctx, tenantID, contactID)
}
