package trade

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

// IsValid reports whether the status is known
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusDeclined:
		return true
	}
	return false
}

// QuoteLine is a single line of a quote. Position preserves the order
// the lines were submitted in.
type QuoteLine struct {
	shared.BaseEntity
	QuoteID     uuid.UUID
	ItemID      *uuid.UUID
	Description string
	Qty         decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	Position    int
}

// Total returns qty times unit price
func (l QuoteLine) Total() decimal.Decimal {
	return l.Qty.Mul(l.UnitPrice)
}

// Quote represents an offer to a customer company. Header and lines form
// one aggregate and are persisted atomically.
type Quote struct {
	shared.TenantAggregateRoot
	CompanyID  uuid.UUID
	ContactID  *uuid.UUID
	Number     string
	Currency   string
	Status     QuoteStatus
	DocDate    time.Time
	ValidUntil *time.Time
	Notes      string
	Lines      []QuoteLine
}

// NewQuote creates a new draft quote for a company
func NewQuote(tenantID, companyID uuid.UUID, number string) (*Quote, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company is required")
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quote number is required")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quote number cannot exceed 50 characters")
	}

	return &Quote{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CompanyID:           companyID,
		Number:              number,
		Currency:            "EUR",
		Status:              QuoteStatusDraft,
		DocDate:             time.Now().UTC().Truncate(24 * time.Hour),
		Lines:               make([]QuoteLine, 0),
	}, nil
}

// SetDocDate sets the document date printed on the quote
func (q *Quote) SetDocDate(at time.Time) {
	q.DocDate = at
	q.touch()
}

// AddLine appends a line at the next position
func (q *Quote) AddLine(itemID *uuid.UUID, description string, qty decimal.Decimal, unit string, unitPrice decimal.Decimal) (*QuoteLine, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_LINE", "Line description is required")
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_LINE", "Line qty must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE", "Line unit price cannot be negative")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = "pcs"
	}

	line := QuoteLine{
		BaseEntity:  shared.NewBaseEntity(),
		QuoteID:     q.ID,
		ItemID:      itemID,
		Description: description,
		Qty:         qty,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Position:    len(q.Lines),
	}
	q.Lines = append(q.Lines, line)
	q.touch()
	return &q.Lines[len(q.Lines)-1], nil
}

// ReplaceLines swaps the full line set, renumbering positions in the
// order given
func (q *Quote) ReplaceLines(lines []QuoteLine) {
	q.Lines = make([]QuoteLine, 0, len(lines))
	for i, line := range lines {
		line.QuoteID = q.ID
		line.Position = i
		if line.ID == uuid.Nil {
			line.BaseEntity = shared.NewBaseEntity()
		}
		q.Lines = append(q.Lines, line)
	}
	q.touch()
}

// ChangeStatus moves the quote to another status
func (q *Quote) ChangeStatus(status QuoteStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid quote status: "+string(status))
	}
	q.Status = status
	q.touch()
	return nil
}

// SetCurrency sets the quote currency
func (q *Quote) SetCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "EUR"
	}
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}
	q.Currency = currency
	q.touch()
	return nil
}

// SetContact links the quote to a contact person
func (q *Quote) SetContact(contactID *uuid.UUID) {
	q.ContactID = contactID
	q.touch()
}

// SetValidUntil sets the offer expiry date
func (q *Quote) SetValidUntil(at *time.Time) {
	q.ValidUntil = at
	q.touch()
}

// SetNotes sets free-form notes printed on the document
func (q *Quote) SetNotes(notes string) {
	q.Notes = notes
	q.touch()
}

// Total returns the sum of all line totals
func (q *Quote) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range q.Lines {
		total = total.Add(line.Total())
	}
	return total
}

func (q *Quote) touch() {
	q.UpdatedAt = time.Now()
	q.IncrementVersion()
}
