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

// QuoteService handles quote business logic
type QuoteService struct {
	quoteRepo   trade.QuoteRepository
	companyRepo partner.CompanyRepository
	contactRepo partner.ContactRepository
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	quoteRepo trade.QuoteRepository,
	companyRepo partner.CompanyRepository,
	contactRepo partner.ContactRepository,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		companyRepo: companyRepo,
		contactRepo: contactRepo,
	}
}

// Create creates a new quote with its lines in one save
func (s *QuoteService) Create(ctx context.Context, tenantID uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error) {
	if _, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, req.CompanyID); err != nil {
		return nil, err
	}

	existing, err := s.quoteRepo.FindByNumberForTenant(ctx, tenantID, req.Number)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Quote number already in use: "+req.Number)
	}

	quote, err := trade.NewQuote(tenantID, req.CompanyID, req.Number)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		if _, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, *req.ContactID); err != nil {
			return nil, err
		}
		quote.SetContact(req.ContactID)
	}
	if req.Currency != "" {
		if err := quote.SetCurrency(req.Currency); err != nil {
			return nil, err
		}
	}
	if req.DocDate != nil {
		quote.SetDocDate(*req.DocDate)
	}
	if req.ValidUntil != nil {
		quote.SetValidUntil(req.ValidUntil)
	}
	if req.Notes != "" {
		quote.SetNotes(req.Notes)
	}
	for _, line := range req.Lines {
		if _, err := quote.AddLine(line.ItemID, line.Description, line.Qty, line.Unit, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// GetByID retrieves a quote by ID with lines in position order
func (s *QuoteService) GetByID(ctx context.Context, tenantID, quoteID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves quotes with filtering and pagination
func (s *QuoteService) List(ctx context.Context, tenantID uuid.UUID, filter QuoteListFilter) ([]QuoteResponse, int64, error) {
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
	if filter.CompanyID != nil {
		domainFilter.Filters["company_id"] = *filter.CompanyID
	}

	quotes, err := s.quoteRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.quoteRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToQuoteResponses(quotes), total, nil
}

// Update replaces the quote header fields and the full line set
// atomically
func (s *QuoteService) Update(ctx context.Context, tenantID, quoteID uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}

	if req.ContactID == nil || *req.ContactID == uuid.Nil {
		quote.SetContact(nil)
	} else {
		if _, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, *req.ContactID); err != nil {
			return nil, err
		}
		quote.SetContact(req.ContactID)
	}
	if err := quote.SetCurrency(req.Currency); err != nil {
		return nil, err
	}
	docDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DocDate != nil {
		docDate = *req.DocDate
	}
	quote.SetDocDate(docDate)
	quote.SetValidUntil(req.ValidUntil)
	quote.SetNotes(req.Notes)
	lines, err := buildQuoteLines(req.Lines)
	if err != nil {
		return nil, err
	}
	quote.ReplaceLines(lines)

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// ChangeStatus moves a quote to another status
func (s *QuoteService) ChangeStatus(ctx context.Context, tenantID, quoteID uuid.UUID, req ChangeQuoteStatusRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := quote.ChangeStatus(trade.QuoteStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Delete removes a quote and its lines
func (s *QuoteService) Delete(ctx context.Context, tenantID, quoteID uuid.UUID) error {
	return s.quoteRepo.DeleteForTenant(ctx, tenantID, quoteID)
}

// buildQuoteLines runs the submitted lines through a scratch aggregate
// so they carry the same validation as lines added on create
func buildQuoteLines(reqs []DocumentLineRequest) ([]trade.QuoteLine, error) {
	scratch := &trade.Quote{Lines: make([]trade.QuoteLine, 0, len(reqs))}
	for _, req := range reqs {
		if _, err := scratch.AddLine(req.ItemID, req.Description, req.Qty, req.Unit, req.UnitPrice); err != nil {
			return nil, err
		}
	}
	return scratch.Lines, nil
}
