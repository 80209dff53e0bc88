package models

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteModel is the persistence model for quote headers
type QuoteModel struct {
	TenantAggregateModel
	CompanyID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	ContactID  *uuid.UUID       `gorm:"type:uuid"`
	Number     string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_quote_tenant_number,priority:2"`
	Currency   string           `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status     string           `gorm:"type:varchar(20);not null;default:'draft';index"`
	DocDate    time.Time        `gorm:"type:date;not null"`
	ValidUntil *time.Time       `gorm:"type:date"`
	Notes      string           `gorm:"type:text"`
	Lines      []QuoteLineModel `gorm:"foreignKey:QuoteID;references:ID"`
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// QuoteLineModel is the persistence model for quote lines
type QuoteLineModel struct {
	BaseModel
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID      *uuid.UUID      `gorm:"type:uuid"`
	Description string          `gorm:"type:varchar(500);not null"`
	Qty         decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	Unit        string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Position    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (QuoteLineModel) TableName() string {
	return "quote_lines"
}

// ToDomain converts the persistence model to a domain Quote
func (m *QuoteModel) ToDomain() *trade.Quote {
	quote := &trade.Quote{
		CompanyID:  m.CompanyID,
		ContactID:  m.ContactID,
		Number:     m.Number,
		Currency:   m.Currency,
		Status:     trade.QuoteStatus(m.Status),
		DocDate:    m.DocDate,
		ValidUntil: m.ValidUntil,
		Notes:      m.Notes,
		Lines:      make([]trade.QuoteLine, 0, len(m.Lines)),
	}
	m.PopulateTenantAggregateRoot(&quote.TenantAggregateRoot)
	for _, lm := range m.Lines {
		line := trade.QuoteLine{
			BaseEntity:  lm.ToDomain(),
			QuoteID:     lm.QuoteID,
			ItemID:      lm.ItemID,
			Description: lm.Description,
			Qty:         lm.Qty,
			Unit:        lm.Unit,
			UnitPrice:   lm.UnitPrice,
			Position:    lm.Position,
		}
		quote.Lines = append(quote.Lines, line)
	}
	return quote
}

// FromDomain populates the model from a domain Quote
func (m *QuoteModel) FromDomain(q *trade.Quote) {
	m.FromDomainTenantAggregateRoot(q.TenantAggregateRoot)
	m.CompanyID = q.CompanyID
	m.ContactID = q.ContactID
	m.Number = q.Number
	m.Currency = q.Currency
	m.Status = string(q.Status)
	m.DocDate = q.DocDate
	m.ValidUntil = q.ValidUntil
	m.Notes = q.Notes
	m.Lines = make([]QuoteLineModel, 0, len(q.Lines))
	for _, line := range q.Lines {
		var lm QuoteLineModel
		lm.FromDomainBaseEntity(line.BaseEntity)
		lm.QuoteID = q.ID
		lm.ItemID = line.ItemID
		lm.Description = line.Description
		lm.Qty = line.Qty
		lm.Unit = line.Unit
		lm.UnitPrice = line.UnitPrice
		lm.Position = line.Position
		m.Lines = append(m.Lines, lm)
	}
}

// PurchaseOrderModel is the persistence model for purchase order headers
type PurchaseOrderModel struct {
	TenantAggregateModel
	SupplierID   uuid.UUID                `gorm:"type:uuid;not null;index"`
	Number       string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_po_tenant_number,priority:2"`
	Currency     string                   `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status       string                   `gorm:"type:varchar(20);not null;default:'draft';index"`
	DocDate      time.Time                `gorm:"type:date;not null"`
	ExpectedDate *time.Time               `gorm:"type:date"`
	Notes        string                   `gorm:"type:text"`
	Lines        []PurchaseOrderLineModel `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderLineModel is the persistence model for purchase order lines
type PurchaseOrderLineModel struct {
	BaseModel
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID          *uuid.UUID      `gorm:"type:uuid"`
	Description     string          `gorm:"type:varchar(500);not null"`
	Qty             decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	Unit            string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Position        int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLineModel) TableName() string {
	return "purchase_order_lines"
}

// ToDomain converts the persistence model to a domain PurchaseOrder
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	po := &trade.PurchaseOrder{
		SupplierID:   m.SupplierID,
		Number:       m.Number,
		Currency:     m.Currency,
		Status:       trade.PurchaseOrderStatus(m.Status),
		DocDate:      m.DocDate,
		ExpectedDate: m.ExpectedDate,
		Notes:        m.Notes,
		Lines:        make([]trade.PurchaseOrderLine, 0, len(m.Lines)),
	}
	m.PopulateTenantAggregateRoot(&po.TenantAggregateRoot)
	for _, lm := range m.Lines {
		line := trade.PurchaseOrderLine{
			BaseEntity:      lm.ToDomain(),
			PurchaseOrderID: lm.PurchaseOrderID,
			ItemID:          lm.ItemID,
			Description:     lm.Description,
			Qty:             lm.Qty,
			Unit:            lm.Unit,
			UnitPrice:       lm.UnitPrice,
			Position:        lm.Position,
		}
		po.Lines = append(po.Lines, line)
	}
	return po
}

// FromDomain populates the model from a domain PurchaseOrder
func (m *PurchaseOrderModel) FromDomain(po *trade.PurchaseOrder) {
	m.FromDomainTenantAggregateRoot(po.TenantAggregateRoot)
	m.SupplierID = po.SupplierID
	m.Number = po.Number
	m.Currency = po.Currency
	m.Status = string(po.Status)
	m.DocDate = po.DocDate
	m.ExpectedDate = po.ExpectedDate
	m.Notes = po.Notes
	m.Lines = make([]PurchaseOrderLineModel, 0, len(po.Lines))
	for _, line := range po.Lines {
		var lm PurchaseOrderLineModel
		lm.FromDomainBaseEntity(line.BaseEntity)
		lm.PurchaseOrderID = po.ID
		lm.ItemID = line.ItemID
		lm.Description = line.Description
		lm.Qty = line.Qty
		lm.Unit = line.Unit
		lm.UnitPrice = line.UnitPrice
		lm.Position = line.Position
		m.Lines = append(m.Lines, lm)
	}
}
