package trade

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentLineRequest represents a single line of a quote or purchase
// order as submitted by the client. Slice order is the order the lines
// are stored and printed in.
type DocumentLineRequest struct {
	ItemID      *uuid.UUID      `json:"item_id,omitempty"`
	Description string          `json:"description" binding:"required,max=500"`
	Qty         decimal.Decimal `json:"qty" binding:"required"`
	Unit        string          `json:"unit,omitempty" binding:"omitempty,max=20"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateQuoteRequest represents a request to create a quote
type CreateQuoteRequest struct {
	CompanyID  uuid.UUID             `json:"company_id" binding:"required"`
	ContactID  *uuid.UUID            `json:"contact_id,omitempty"`
	Number     string                `json:"number" binding:"required,max=50"`
	Currency   string                `json:"currency,omitempty" binding:"omitempty,currency_code"`
	DocDate    *time.Time            `json:"doc_date,omitempty"`
	ValidUntil *time.Time            `json:"valid_until,omitempty"`
	Notes      string                `json:"notes,omitempty" binding:"omitempty,max=2000"`
	Lines      []DocumentLineRequest `json:"lines,omitempty" binding:"omitempty,dive"`
}

// UpdateQuoteRequest carries the full replacement state of a quote
// header and its line set. Company, number, and status stay fixed here.
type UpdateQuoteRequest struct {
	ContactID  *uuid.UUID            `json:"contact_id"`
	Currency   string                `json:"currency" binding:"omitempty,currency_code"`
	DocDate    *time.Time            `json:"doc_date"`
	ValidUntil *time.Time            `json:"valid_until"`
	Notes      string                `json:"notes" binding:"max=2000"`
	Lines      []DocumentLineRequest `json:"lines" binding:"dive"`
}

// ChangeQuoteStatusRequest represents a request to move a quote to
// another status
type ChangeQuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent accepted declined"`
}

// QuoteLineResponse represents a quote line in API responses
type QuoteLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      *uuid.UUID      `json:"item_id,omitempty"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Position    int             `json:"position"`
	Total       decimal.Decimal `json:"total"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID         uuid.UUID           `json:"id"`
	CompanyID  uuid.UUID           `json:"company_id"`
	ContactID  *uuid.UUID          `json:"contact_id,omitempty"`
	Number     string              `json:"number"`
	Currency   string              `json:"currency"`
	Status     string              `json:"status"`
	DocDate    time.Time           `json:"doc_date"`
	ValidUntil *time.Time          `json:"valid_until,omitempty"`
	Notes      string              `json:"notes,omitempty"`
	Lines      []QuoteLineResponse `json:"lines"`
	Total      decimal.Decimal     `json:"total"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// QuoteListFilter represents filters for listing quotes
type QuoteListFilter struct {
	Status    string     `form:"status"`
	CompanyID *uuid.UUID `form:"company_id"`
	Search    string     `form:"search"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir"`
}

// ToQuoteResponse converts a quote aggregate to a response DTO
func ToQuoteResponse(q *trade.Quote) QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(q.Lines))
	for _, line := range q.Lines {
		lines = append(lines, QuoteLineResponse{
			ID:          line.ID,
			ItemID:      line.ItemID,
			Description: line.Description,
			Qty:         line.Qty,
			Unit:        line.Unit,
			UnitPrice:   line.UnitPrice,
			Position:    line.Position,
			Total:       line.Total(),
		})
	}
	return QuoteResponse{
		ID:         q.ID,
		CompanyID:  q.CompanyID,
		ContactID:  q.ContactID,
		Number:     q.Number,
		Currency:   q.Currency,
		Status:     string(q.Status),
		DocDate:    q.DocDate,
		ValidUntil: q.ValidUntil,
		Notes:      q.Notes,
		Lines:      lines,
		Total:      q.Total(),
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// ToQuoteResponses converts a slice of quotes to response DTOs
func ToQuoteResponses(quotes []trade.Quote) []QuoteResponse {
	responses := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		responses = append(responses, ToQuoteResponse(&quotes[i]))
	}
	return responses
}

// CreatePurchaseOrderRequest represents a request to create a purchase
// order
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID             `json:"supplier_id" binding:"required"`
	Number       string                `json:"number" binding:"required,max=50"`
	Currency     string                `json:"currency,omitempty" binding:"omitempty,currency_code"`
	DocDate      *time.Time            `json:"doc_date,omitempty"`
	ExpectedDate *time.Time            `json:"expected_date,omitempty"`
	Notes        string                `json:"notes,omitempty" binding:"omitempty,max=2000"`
	Lines        []DocumentLineRequest `json:"lines,omitempty" binding:"omitempty,dive"`
}

// UpdatePurchaseOrderRequest carries the full replacement state of a
// purchase order header and its line set. Supplier, number, and status
// stay fixed here.
type UpdatePurchaseOrderRequest struct {
	Currency     string                `json:"currency" binding:"omitempty,currency_code"`
	DocDate      *time.Time            `json:"doc_date"`
	ExpectedDate *time.Time            `json:"expected_date"`
	Notes        string                `json:"notes" binding:"max=2000"`
	Lines        []DocumentLineRequest `json:"lines" binding:"dive"`
}

// ChangePurchaseOrderStatusRequest represents a request to move a
// purchase order to another status
type ChangePurchaseOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent confirmed received cancelled"`
}

// PurchaseOrderLineResponse represents a purchase order line in API
// responses
type PurchaseOrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      *uuid.UUID      `json:"item_id,omitempty"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Position    int             `json:"position"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	Number       string                      `json:"number"`
	Currency     string                      `json:"currency"`
	Status       string                      `json:"status"`
	DocDate      time.Time                   `json:"doc_date"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	Notes        string                      `json:"notes,omitempty"`
	Lines        []PurchaseOrderLineResponse `json:"lines"`
	Total        decimal.Decimal             `json:"total"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// PurchaseOrderListFilter represents filters for listing purchase orders
type PurchaseOrderListFilter struct {
	Status     string     `form:"status"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Search     string     `form:"search"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// ToPurchaseOrderResponse converts a purchase order aggregate to a
// response DTO
func ToPurchaseOrderResponse(po *trade.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, 0, len(po.Lines))
	for _, line := range po.Lines {
		lines = append(lines, PurchaseOrderLineResponse{
			ID:          line.ID,
			ItemID:      line.ItemID,
			Description: line.Description,
			Qty:         line.Qty,
			Unit:        line.Unit,
			UnitPrice:   line.UnitPrice,
			Position:    line.Position,
			Total:       line.Total(),
		})
	}
	return PurchaseOrderResponse{
		ID:           po.ID,
		SupplierID:   po.SupplierID,
		Number:       po.Number,
		Currency:     po.Currency,
		Status:       string(po.Status),
		DocDate:      po.DocDate,
		ExpectedDate: po.ExpectedDate,
		Notes:        po.Notes,
		Lines:        lines,
		Total:        po.Total(),
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}

// ToPurchaseOrderResponses converts a slice of purchase orders to
// response DTOs
func ToPurchaseOrderResponses(orders []trade.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	return responses
}
