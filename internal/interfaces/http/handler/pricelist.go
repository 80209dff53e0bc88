package handler

import (
	catalogapp "github.com/foodcrm/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PriceListHandler handles price list API endpoints
type PriceListHandler struct {
	BaseHandler
	priceListService *catalogapp.PriceListService
}

// NewPriceListHandler creates a new PriceListHandler
func NewPriceListHandler(priceListService *catalogapp.PriceListService) *PriceListHandler {
	return &PriceListHandler{priceListService: priceListService}
}

// Create creates a new price list
func (h *PriceListHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreatePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	priceList, err := h.priceListService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, priceList)
}

// GetByID retrieves a price list by its ID
func (h *PriceListHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	priceListID, ok := h.bindID(c)
	if !ok {
		return
	}

	priceList, err := h.priceListService.GetByID(c.Request.Context(), tenantID, priceListID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, priceList)
}

// List lists price lists with filtering and pagination
func (h *PriceListHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter catalogapp.PriceListListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	priceLists, total, err := h.priceListService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, priceLists, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// Update updates a price list
func (h *PriceListHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	priceListID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdatePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	priceList, err := h.priceListService.Update(c.Request.Context(), tenantID, priceListID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, priceList)
}

// ListLines lists the line set of a price list
func (h *PriceListHandler) ListLines(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	priceListID, ok := h.bindID(c)
	if !ok {
		return
	}

	lines, err := h.priceListService.ListLines(c.Request.Context(), tenantID, priceListID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lines)
}

// AddLine appends a price entry to a price list
func (h *PriceListHandler) AddLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	priceListID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req catalogapp.PriceListLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	line, err := h.priceListService.AddLine(c.Request.Context(), tenantID, priceListID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, line)
}

// RemoveLine deletes a price entry from a price list
func (h *PriceListHandler) RemoveLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	priceListID, ok := h.bindID(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineID"))
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.priceListService.RemoveLine(c.Request.Context(), tenantID, priceListID, lineID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Deleted(c)
}

// Delete deletes a price list
func (h *PriceListHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	priceListID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.priceListService.Delete(c.Request.Context(), tenantID, priceListID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Deleted(c)
}
