package mail

import (
	"context"
	"encoding/base64"

	"github.com/foodcrm/backend/internal/domain/mail"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/mailer"
	"github.com/foodcrm/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// Sender delivers email over a transport and reports the sender address
// used for outbound log rows
type Sender interface {
	Send(ctx context.Context, email mailer.OutboundEmail) (string, error)
	From() string
}

// EmailService handles outbound email and the email log
type EmailService struct {
	messageRepo mail.MessageRepository
	sender      Sender
	metrics     *telemetry.BusinessMetrics
}

// NewEmailService creates a new EmailService. Metrics may be nil.
func NewEmailService(messageRepo mail.MessageRepository, sender Sender, metrics *telemetry.BusinessMetrics) *EmailService {
	return &EmailService{
		messageRepo: messageRepo,
		sender:      sender,
		metrics:     metrics,
	}
}

// Send delivers the email over SMTP and then inserts the `out` log row.
// A transport failure leaves no row behind.
func (s *EmailService) Send(ctx context.Context, tenantID uuid.UUID, req SendEmailRequest) (*MessageResponse, error) {
	entityType := shared.EntityType(req.EntityType)
	if req.EntityType != "" && !entityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Invalid entity type: "+req.EntityType)
	}
	attachments, err := decodeAttachments(req.Attachments)
	if err != nil {
		return nil, err
	}

	providerMsgID, err := s.sender.Send(ctx, mailer.OutboundEmail{
		To:          req.To,
		Cc:          req.CC,
		Subject:     req.Subject,
		BodyText:    req.BodyText,
		BodyHTML:    req.BodyHTML,
		Attachments: attachments,
	})
	if err != nil {
		return nil, shared.NewDomainError("UPSTREAM_FAILURE", "Email delivery failed: "+err.Error())
	}

	message, err := mail.NewOutboundMessage(tenantID, s.sender.From(), req.To, req.CC, req.Subject)
	if err != nil {
		return nil, err
	}
	message.SetBody(req.BodyText, req.BodyHTML)
	if providerMsgID != "" {
		message.SetProviderID(providerMsgID)
	}
	if req.EntityType != "" && req.EntityID != nil {
		if err := message.LinkTo(entityType, *req.EntityID); err != nil {
			return nil, err
		}
	}

	if err := s.messageRepo.Save(ctx, message); err != nil {
		return nil, err
	}
	s.metrics.RecordEmailSent(ctx, tenantID)

	response := ToMessageResponse(message)
	return &response, nil
}

// GetByID retrieves an email log row by ID
func (s *EmailService) GetByID(ctx context.Context, tenantID, messageID uuid.UUID) (*MessageResponse, error) {
	message, err := s.messageRepo.FindByIDForTenant(ctx, tenantID, messageID)
	if err != nil {
		return nil, err
	}
	response := ToMessageResponse(message)
	return &response, nil
}

// List retrieves email log rows with filtering and pagination
func (s *EmailService) List(ctx context.Context, tenantID uuid.UUID, filter MessageListFilter) ([]MessageResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Direction != "" {
		domainFilter.Filters["direction"] = filter.Direction
	}
	if filter.EntityType != "" {
		domainFilter.Filters["entity_type"] = filter.EntityType
	}
	if filter.EntityID != nil {
		domainFilter.Filters["entity_id"] = *filter.EntityID
	}

	messages, err := s.messageRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.messageRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMessageResponses(messages), total, nil
}

func decodeAttachments(reqs []AttachmentRequest) ([]mailer.Attachment, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	attachments := make([]mailer.Attachment, 0, len(reqs))
	for _, req := range reqs {
		content, err := base64.StdEncoding.DecodeString(req.ContentB64)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ATTACHMENT", "Attachment "+req.Filename+" is not valid base64")
		}
		attachments = append(attachments, mailer.Attachment{
			Filename:    req.Filename,
			ContentType: req.MIME,
			Content:     content,
		})
	}
	return attachments, nil
}
