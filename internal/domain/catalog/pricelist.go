package catalog

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceListLine is a single price entry within a price list
type PriceListLine struct {
	shared.BaseEntity
	PriceListID uuid.UUID
	ItemID      uuid.UUID
	Price       decimal.Decimal
	MOQ         decimal.Decimal
}

// PriceList represents a named set of item prices valid for a period.
// It is the aggregate root; lines are managed through it.
type PriceList struct {
	shared.TenantAggregateRoot
	Name      string
	Currency  string
	ValidFrom *time.Time
	ValidTo   *time.Time
	Lines     []PriceListLine
}

// NewPriceList creates a new price list
func NewPriceList(tenantID uuid.UUID, name string) (*PriceList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRICELIST_NAME", "Price list name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRICELIST_NAME", "Price list name cannot exceed 200 characters")
	}

	return &PriceList{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Currency:            "EUR",
		Lines:               make([]PriceListLine, 0),
	}, nil
}

// Rename changes the price list name
func (p *PriceList) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRICELIST_NAME", "Price list name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRICELIST_NAME", "Price list name cannot exceed 200 characters")
	}
	p.Name = name
	p.touch()
	return nil
}

// SetCurrency sets the price list currency
func (p *PriceList) SetCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "EUR"
	}
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}
	p.Currency = currency
	p.touch()
	return nil
}

// SetValidity sets the validity window
func (p *PriceList) SetValidity(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return shared.NewDomainError("INVALID_VALIDITY", "Valid-to cannot precede valid-from")
	}
	p.ValidFrom = from
	p.ValidTo = to
	p.touch()
	return nil
}

// AddLine appends a price entry for an item
func (p *PriceList) AddLine(itemID uuid.UUID, price, moq decimal.Decimal) (*PriceListLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if moq.LessThanOrEqual(decimal.Zero) {
		moq = decimal.NewFromInt(1)
	}

	line := PriceListLine{
		BaseEntity:  shared.NewBaseEntity(),
		PriceListID: p.ID,
		ItemID:      itemID,
		Price:       price,
		MOQ:         moq,
	}
	p.Lines = append(p.Lines, line)
	p.touch()
	return &p.Lines[len(p.Lines)-1], nil
}

// RemoveLine deletes a price entry by its ID
func (p *PriceList) RemoveLine(lineID uuid.UUID) error {
	for i, line := range p.Lines {
		if line.ID == lineID {
			p.Lines = append(p.Lines[:i], p.Lines[i+1:]...)
			p.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

func (p *PriceList) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
