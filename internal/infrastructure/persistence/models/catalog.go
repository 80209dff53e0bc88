package models

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemModel is the persistence model for catalog items
type ItemModel struct {
	TenantAggregateModel
	SKU      string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_item_tenant_sku,priority:2"`
	Name     string          `gorm:"type:varchar(200);not null;index"`
	Unit     string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	VATRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:24"`
	Category string          `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item
func (m *ItemModel) ToDomain() *catalog.Item {
	item := &catalog.Item{
		SKU:      m.SKU,
		Name:     m.Name,
		Unit:     m.Unit,
		VATRate:  m.VATRate,
		Category: m.Category,
	}
	m.PopulateTenantAggregateRoot(&item.TenantAggregateRoot)
	return item
}

// FromDomain populates the model from a domain Item
func (m *ItemModel) FromDomain(i *catalog.Item) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.SKU = i.SKU
	m.Name = i.Name
	m.Unit = i.Unit
	m.VATRate = i.VATRate
	m.Category = i.Category
}

// PriceListModel is the persistence model for price list headers
type PriceListModel struct {
	TenantAggregateModel
	Name      string               `gorm:"type:varchar(200);not null"`
	Currency  string               `gorm:"type:varchar(3);not null;default:'EUR'"`
	ValidFrom *time.Time           `gorm:"type:date"`
	ValidTo   *time.Time           `gorm:"type:date"`
	Lines     []PriceListLineModel `gorm:"foreignKey:PriceListID;references:ID"`
}

// TableName returns the table name for GORM
func (PriceListModel) TableName() string {
	return "pricelists"
}

// PriceListLineModel is the persistence model for price list lines
type PriceListLineModel struct {
	BaseModel
	PriceListID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pricelist_line_item,priority:1"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pricelist_line_item,priority:2"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MOQ         decimal.Decimal `gorm:"type:decimal(18,3);not null;default:1"`
}

// TableName returns the table name for GORM
func (PriceListLineModel) TableName() string {
	return "pricelist_lines"
}

// ToDomain converts the persistence model to a domain PriceList
func (m *PriceListModel) ToDomain() *catalog.PriceList {
	list := &catalog.PriceList{
		Name:      m.Name,
		Currency:  m.Currency,
		ValidFrom: m.ValidFrom,
		ValidTo:   m.ValidTo,
		Lines:     make([]catalog.PriceListLine, 0, len(m.Lines)),
	}
	m.PopulateTenantAggregateRoot(&list.TenantAggregateRoot)
	for _, lm := range m.Lines {
		line := catalog.PriceListLine{
			BaseEntity:  lm.ToDomain(),
			PriceListID: lm.PriceListID,
			ItemID:      lm.ItemID,
			Price:       lm.Price,
			MOQ:         lm.MOQ,
		}
		list.Lines = append(list.Lines, line)
	}
	return list
}

// FromDomain populates the model from a domain PriceList
func (m *PriceListModel) FromDomain(p *catalog.PriceList) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Currency = p.Currency
	m.ValidFrom = p.ValidFrom
	m.ValidTo = p.ValidTo
	m.Lines = make([]PriceListLineModel, 0, len(p.Lines))
	for _, line := range p.Lines {
		var lm PriceListLineModel
		lm.FromDomainBaseEntity(line.BaseEntity)
		lm.PriceListID = p.ID
		lm.ItemID = line.ItemID
		lm.Price = line.Price
		lm.MOQ = line.MOQ
		m.Lines = append(m.Lines, lm)
	}
}
