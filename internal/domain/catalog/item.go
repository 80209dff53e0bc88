package catalog

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a sellable or purchasable product. SKU is unique
// within a tenant.
type Item struct {
	shared.TenantAggregateRoot
	SKU      string
	Name     string
	Unit     string
	VATRate  decimal.Decimal
	Category string
}

// NewItem creates a new catalog item
func NewItem(tenantID uuid.UUID, sku, name string) (*Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU is required")
	}
	if len(sku) > 100 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 100 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot exceed 200 characters")
	}

	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 sku,
		Name:                name,
		Unit:                "pcs",
		VATRate:             decimal.NewFromInt(24),
	}, nil
}

// Rename changes the item name
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot exceed 200 characters")
	}
	i.Name = name
	i.touch()
	return nil
}

// SetUnit sets the unit of measure
func (i *Item) SetUnit(unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = "pcs"
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	i.Unit = unit
	i.touch()
	return nil
}

// SetVATRate sets the VAT percentage applied to the item
func (i *Item) SetVATRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT rate must be between 0 and 100")
	}
	i.VATRate = rate
	i.touch()
	return nil
}

// SetCategory sets the item category
func (i *Item) SetCategory(category string) error {
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	i.Category = strings.TrimSpace(category)
	i.touch()
	return nil
}

func (i *Item) touch() {
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}
