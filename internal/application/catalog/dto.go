package catalog

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Item DTOs
// =============================================================================

// CreateItemRequest represents a request to create a new catalog item
type CreateItemRequest struct {
	SKU      string           `json:"sku" binding:"required,min=1,max=100"`
	Name     string           `json:"name" binding:"required,min=1,max=200"`
	Unit     string           `json:"unit" binding:"max=20"`
	VATRate  *decimal.Decimal `json:"vat_rate"`
	Category string           `json:"category" binding:"max=100"`
}

// UpdateItemRequest carries the full replacement state of a catalog
// item. The SKU is fixed at creation.
type UpdateItemRequest struct {
	Name     string           `json:"name" binding:"required,min=1,max=200"`
	Unit     string           `json:"unit" binding:"max=20"`
	VATRate  *decimal.Decimal `json:"vat_rate"`
	Category string           `json:"category" binding:"max=100"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	VATRate   decimal.Decimal `json:"vat_rate"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// ItemListFilter contains filters for listing items
type ItemListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Unit     string `form:"unit"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		TenantID:  i.TenantID,
		SKU:       i.SKU,
		Name:      i.Name,
		Unit:      i.Unit,
		VATRate:   i.VATRate,
		Category:  i.Category,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
		Version:   i.Version,
	}
}

// ToItemResponses converts a slice of domain items
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}

// =============================================================================
// Price list DTOs
// =============================================================================

// PriceListLineRequest is a price entry submitted with a price list
type PriceListLineRequest struct {
	ItemID uuid.UUID        `json:"item_id" binding:"required"`
	Price  decimal.Decimal  `json:"price" binding:"required"`
	MOQ    *decimal.Decimal `json:"moq"`
}

// CreatePriceListRequest represents a request to create a price list
type CreatePriceListRequest struct {
	Name      string                 `json:"name" binding:"required,min=1,max=200"`
	Currency  string                 `json:"currency" binding:"omitempty,currency_code"`
	ValidFrom *time.Time             `json:"valid_from"`
	ValidTo   *time.Time             `json:"valid_to"`
	Lines     []PriceListLineRequest `json:"lines" binding:"dive"`
}

// UpdatePriceListRequest carries the full replacement state of a price
// list, line set included.
type UpdatePriceListRequest struct {
	Name      string                 `json:"name" binding:"required,min=1,max=200"`
	Currency  string                 `json:"currency" binding:"omitempty,currency_code"`
	ValidFrom *time.Time             `json:"valid_from"`
	ValidTo   *time.Time             `json:"valid_to"`
	Lines     []PriceListLineRequest `json:"lines" binding:"dive"`
}

// PriceListLineResponse represents a price entry in API responses
type PriceListLineResponse struct {
	ID     uuid.UUID       `json:"id"`
	ItemID uuid.UUID       `json:"item_id"`
	Price  decimal.Decimal `json:"price"`
	MOQ    decimal.Decimal `json:"moq"`
}

// PriceListResponse represents a price list in API responses
type PriceListResponse struct {
	ID        uuid.UUID               `json:"id"`
	TenantID  uuid.UUID               `json:"tenant_id"`
	Name      string                  `json:"name"`
	Currency  string                  `json:"currency"`
	ValidFrom *time.Time              `json:"valid_from"`
	ValidTo   *time.Time              `json:"valid_to"`
	Lines     []PriceListLineResponse `json:"lines"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	Version   int                     `json:"version"`
}

// PriceListListFilter contains filters for listing price lists
type PriceListListFilter struct {
	Search   string `form:"search"`
	Currency string `form:"currency"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ToPriceListLineResponse converts a domain price list line to a response DTO
func ToPriceListLineResponse(line *catalog.PriceListLine) PriceListLineResponse {
	return PriceListLineResponse{
		ID:     line.ID,
		ItemID: line.ItemID,
		Price:  line.Price,
		MOQ:    line.MOQ,
	}
}

// ToPriceListLineResponses converts a line set to response DTOs
func ToPriceListLineResponses(lines []catalog.PriceListLine) []PriceListLineResponse {
	out := make([]PriceListLineResponse, len(lines))
	for i := range lines {
		out[i] = ToPriceListLineResponse(&lines[i])
	}
	return out
}

// ToPriceListResponse converts a domain price list to a response DTO
func ToPriceListResponse(p *catalog.PriceList) PriceListResponse {
	return PriceListResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		Currency:  p.Currency,
		ValidFrom: p.ValidFrom,
		ValidTo:   p.ValidTo,
		Lines:     ToPriceListLineResponses(p.Lines),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

// ToPriceListResponses converts a slice of domain price lists
func ToPriceListResponses(lists []catalog.PriceList) []PriceListResponse {
	responses := make([]PriceListResponse, len(lists))
	for i := range lists {
		responses[i] = ToPriceListResponse(&lists[i])
	}
	return responses
}
