package handler

import (
	crmapp "github.com/foodcrm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// DealHandler handles deal API endpoints
type DealHandler struct {
	BaseHandler
	dealService *crmapp.DealService
}

// NewDealHandler creates a new DealHandler
func NewDealHandler(dealService *crmapp.DealService) *DealHandler {
	return &DealHandler{dealService: dealService}
}

// Create creates a new deal
func (h *DealHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	deal, err := h.dealService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, deal)
}

// GetByID retrieves a deal by its ID
func (h *DealHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	dealID, ok := h.bindID(c)
	if !ok {
		return
	}

	deal, err := h.dealService.GetByID(c.Request.Context(), tenantID, dealID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, deal)
}

// List lists deals with filtering and pagination
func (h *DealHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.DealListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	deals, total, err := h.dealService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, deals, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// Update updates a deal
func (h *DealHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	dealID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req crmapp.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	deal, err := h.dealService.Update(c.Request.Context(), tenantID, dealID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, deal)
}

// ChangeStage moves a deal to another pipeline stage
func (h *DealHandler) ChangeStage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	dealID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req crmapp.ChangeDealStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	deal, err := h.dealService.ChangeStage(c.Request.Context(), tenantID, dealID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, deal)
}

// Delete deletes a deal
func (h *DealHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	dealID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.dealService.Delete(c.Request.Context(), tenantID, dealID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Deleted(c)
}
