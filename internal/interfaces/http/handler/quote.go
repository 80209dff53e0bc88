package handler

import (
	"fmt"
	"net/http"

	printingapp "github.com/foodcrm/backend/internal/application/printing"
	tradeapp "github.com/foodcrm/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// QuoteHandler handles quote API endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService  *tradeapp.QuoteService
	exportService *printingapp.ExportService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *tradeapp.QuoteService, exportService *printingapp.ExportService) *QuoteHandler {
	return &QuoteHandler{
		quoteService:  quoteService,
		exportService: exportService,
	}
}

// Create creates a new quote
func (h *QuoteHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, quote)
}

// GetByID retrieves a quote by its ID
func (h *QuoteHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	quoteID, ok := h.bindID(c)
	if !ok {
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), tenantID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// List lists quotes with filtering and pagination
func (h *QuoteHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter tradeapp.QuoteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	quotes, total, err := h.quoteService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, quotes, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// Update updates a quote
func (h *QuoteHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	quoteID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req tradeapp.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	quote, err := h.quoteService.Update(c.Request.Context(), tenantID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// ChangeStatus moves a quote through its lifecycle
func (h *QuoteHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	quoteID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req tradeapp.ChangeQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	quote, err := h.quoteService.ChangeStatus(c.Request.Context(), tenantID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// ExportPDF renders a quote as a PDF document and streams it back
func (h *QuoteHandler) ExportPDF(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	quoteID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportQuotePDF(c.Request.Context(), tenantID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.PDFData)
}

// Delete deletes a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	quoteID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), tenantID, quoteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Deleted(c)
}
