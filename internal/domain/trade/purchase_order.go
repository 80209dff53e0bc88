package trade

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the lifecycle status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent      PurchaseOrderStatus = "sent"
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid reports whether the status is known
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent, PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrderLine is a single line of a purchase order
type PurchaseOrderLine struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID
	ItemID          *uuid.UUID
	Description     string
	Qty             decimal.Decimal
	Unit            string
	UnitPrice       decimal.Decimal
	Position        int
}

// Total returns qty times unit price
func (l PurchaseOrderLine) Total() decimal.Decimal {
	return l.Qty.Mul(l.UnitPrice)
}

// PurchaseOrder represents an order placed with a supplier company.
// Header and lines form one aggregate and are persisted atomically.
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	SupplierID   uuid.UUID
	Number       string
	Currency     string
	Status       PurchaseOrderStatus
	DocDate      time.Time
	ExpectedDate *time.Time
	Notes        string
	Lines        []PurchaseOrderLine
}

// NewPurchaseOrder creates a new draft purchase order for a supplier
func NewPurchaseOrder(tenantID, supplierID uuid.UUID, number string) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier is required")
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number is required")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot exceed 50 characters")
	}

	return &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierID:          supplierID,
		Number:              number,
		Currency:            "EUR",
		Status:              PurchaseOrderStatusDraft,
		DocDate:             time.Now().UTC().Truncate(24 * time.Hour),
		Lines:               make([]PurchaseOrderLine, 0),
	}, nil
}

// SetDocDate sets the document date printed on the order
func (p *PurchaseOrder) SetDocDate(at time.Time) {
	p.DocDate = at
	p.touch()
}

// AddLine appends a line at the next position
func (p *PurchaseOrder) AddLine(itemID *uuid.UUID, description string, qty decimal.Decimal, unit string, unitPrice decimal.Decimal) (*PurchaseOrderLine, error) {
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

	line := PurchaseOrderLine{
		BaseEntity:      shared.NewBaseEntity(),
		PurchaseOrderID: p.ID,
		ItemID:          itemID,
		Description:     description,
		Qty:             qty,
		Unit:            unit,
		UnitPrice:       unitPrice,
		Position:        len(p.Lines),
	}
	p.Lines = append(p.Lines, line)
	p.touch()
	return &p.Lines[len(p.Lines)-1], nil
}

// ReplaceLines swaps the full line set, renumbering positions in the
// order given
func (p *PurchaseOrder) ReplaceLines(lines []PurchaseOrderLine) {
	p.Lines = make([]PurchaseOrderLine, 0, len(lines))
	for i, line := range lines {
		line.PurchaseOrderID = p.ID
		line.Position = i
		if line.ID == uuid.Nil {
			line.BaseEntity = shared.NewBaseEntity()
		}
		p.Lines = append(p.Lines, line)
	}
	p.touch()
}

// ChangeStatus moves the order to another status
func (p *PurchaseOrder) ChangeStatus(status PurchaseOrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid purchase order status: "+string(status))
	}
	p.Status = status
	p.touch()
	return nil
}

// SetCurrency sets the order currency
func (p *PurchaseOrder) SetCurrency(currency string) error {
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

// SetExpectedDate sets the expected delivery date
func (p *PurchaseOrder) SetExpectedDate(at *time.Time) {
	p.ExpectedDate = at
	p.touch()
}

// SetNotes sets free-form notes printed on the document
func (p *PurchaseOrder) SetNotes(notes string) {
	p.Notes = notes
	p.touch()
}

// Total returns the sum of all line totals
func (p *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range p.Lines {
		total = total.Add(line.Total())
	}
	return total
}

func (p *PurchaseOrder) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
