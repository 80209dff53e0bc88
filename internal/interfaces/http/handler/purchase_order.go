package handler

import (
	"fmt"
	"net/http"

	printingapp "github.com/foodcrm/backend/internal/application/printing"
	tradeapp "github.com/foodcrm/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	poService     *tradeapp.PurchaseOrderService
	exportService *printingapp.ExportService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(poService *tradeapp.PurchaseOrderService, exportService *printingapp.ExportService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		poService:     poService,
		exportService: exportService,
	}
}

// Create creates a new purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	po, err := h.poService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, po)
}

// GetByID retrieves a purchase order by its ID
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	poID, ok := h.bindID(c)
	if !ok {
		return
	}

	po, err := h.poService.GetByID(c.Request.Context(), tenantID, poID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// List lists purchase orders with filtering and pagination
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter tradeapp.PurchaseOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	pos, total, err := h.poService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, pos, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// Update updates a purchase order
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	poID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req tradeapp.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	po, err := h.poService.Update(c.Request.Context(), tenantID, poID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// ChangeStatus moves a purchase order through its lifecycle
func (h *PurchaseOrderHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	poID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req tradeapp.ChangePurchaseOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	po, err := h.poService.ChangeStatus(c.Request.Context(), tenantID, poID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// ExportPDF renders a purchase order as a PDF document and streams it back
func (h *PurchaseOrderHandler) ExportPDF(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	poID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportPurchaseOrderPDF(c.Request.Context(), tenantID, poID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.PDFData)
}

// Delete deletes a purchase order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	poID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.poService.Delete(c.Request.Context(), tenantID, poID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Deleted(c)
}
