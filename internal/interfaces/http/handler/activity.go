package handler

import (
	crmapp "github.com/foodcrm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// ActivityHandler handles activity API endpoints
type ActivityHandler struct {
	BaseHandler
	activityService *crmapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *crmapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// Create creates a new activity
func (h *ActivityHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, activity)
}

// GetByID retrieves an activity by its ID
func (h *ActivityHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	activityID, ok := h.bindID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.GetByID(c.Request.Context(), tenantID, activityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, activity)
}

// List lists activities with filtering and pagination
func (h *ActivityHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.ActivityListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	activities, total, err := h.activityService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, activities, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// Update updates an activity
func (h *ActivityHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	activityID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req crmapp.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	activity, err := h.activityService.Update(c.Request.Context(), tenantID, activityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, activity)
}

// Complete marks an activity as done
func (h *ActivityHandler) Complete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	activityID, ok := h.bindID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.Complete(c.Request.Context(), tenantID, activityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, activity)
}

// Delete deletes an activity
func (h *ActivityHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	activityID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), tenantID, activityID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Deleted(c)
}
