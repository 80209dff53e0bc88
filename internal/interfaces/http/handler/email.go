package handler

import (
	mailapp "github.com/foodcrm/backend/internal/application/mail"
	"github.com/gin-gonic/gin"
)

// EmailHandler handles email API endpoints
type EmailHandler struct {
	BaseHandler
	emailService *mailapp.EmailService
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emailService *mailapp.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// Send sends an email and records it on the tenant's timeline
func (h *EmailHandler) Send(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mailapp.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	message, err := h.emailService.Send(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, message)
}

// GetByID retrieves a logged email message by its ID
func (h *EmailHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	messageID, ok := h.bindID(c)
	if !ok {
		return
	}

	message, err := h.emailService.GetByID(c.Request.Context(), tenantID, messageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message)
}

// List lists logged email messages with filtering and pagination
func (h *EmailHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter mailapp.MessageListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	messages, total, err := h.emailService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, messages, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}
