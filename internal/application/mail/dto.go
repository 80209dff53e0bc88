package mail

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/mail"
	"github.com/google/uuid"
)

// AttachmentRequest is a file attached to an outbound email, content
// base64-encoded
type AttachmentRequest struct {
	Filename   string `json:"filename" binding:"required,max=255"`
	ContentB64 string `json:"content_b64" binding:"required"`
	MIME       string `json:"mime,omitempty" binding:"omitempty,max=100"`
}

// SendEmailRequest represents a request to send an email
type SendEmailRequest struct {
	To          []string            `json:"to" binding:"required,min=1,dive,email"`
	CC          []string            `json:"cc,omitempty" binding:"omitempty,dive,email"`
	Subject     string              `json:"subject" binding:"required,max=255"`
	BodyText    string              `json:"body_text,omitempty"`
	BodyHTML    string              `json:"body_html,omitempty"`
	Attachments []AttachmentRequest `json:"attachments,omitempty" binding:"omitempty,dive"`
	EntityType  string              `json:"entity_type,omitempty" binding:"omitempty,oneof=company contact deal quote po"`
	EntityID    *uuid.UUID          `json:"entity_id,omitempty"`
}

// MessageResponse represents an email log row in API responses
type MessageResponse struct {
	ID            uuid.UUID  `json:"id"`
	Direction     string     `json:"direction"`
	Subject       string     `json:"subject"`
	Sender        string     `json:"sender"`
	Recipients    []string   `json:"recipients"`
	CC            []string   `json:"cc,omitempty"`
	ProviderMsgID string     `json:"provider_msg_id,omitempty"`
	ThreadID      string     `json:"thread_id,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	BodyText      string     `json:"body_text,omitempty"`
	BodyHTML      string     `json:"body_html,omitempty"`
	EntityType    string     `json:"entity_type,omitempty"`
	EntityID      *uuid.UUID `json:"entity_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// MessageListFilter represents filters for listing email log rows
type MessageListFilter struct {
	Direction  string     `form:"direction"`
	EntityType string     `form:"entity_type"`
	EntityID   *uuid.UUID `form:"entity_id"`
	Search     string     `form:"search"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// ToMessageResponse converts a message aggregate to a response DTO
func ToMessageResponse(m *mail.Message) MessageResponse {
	return MessageResponse{
		ID:            m.ID,
		Direction:     string(m.Direction),
		Subject:       m.Subject,
		Sender:        m.Sender,
		Recipients:    mail.SplitAddresses(m.Recipients),
		CC:            mail.SplitAddresses(m.CC),
		ProviderMsgID: m.ProviderMsgID,
		ThreadID:      m.ThreadID,
		SentAt:        m.SentAt,
		BodyText:      m.BodyText,
		BodyHTML:      m.BodyHTML,
		EntityType:    string(m.EntityType),
		EntityID:      m.EntityID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToMessageResponses converts a slice of messages to response DTOs
func ToMessageResponses(messages []mail.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, ToMessageResponse(&messages[i]))
	}
	return responses
}
