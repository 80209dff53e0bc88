package mail

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Direction indicates whether a message was sent or received
type Direction string

const (
	DirectionOut Direction = "out"
	DirectionIn  Direction = "in"
)

// Message is the log row for an email that crossed the system boundary.
// Outbound rows are written only after the SMTP transport accepted the
// message; inbound rows are deduplicated on (tenant, provider message id).
type Message struct {
	shared.TenantAggregateRoot
	Direction     Direction
	Subject       string
	Sender        string
	Recipients    string
	CC            string
	ProviderMsgID string
	ThreadID      string
	SentAt        *time.Time
	BodyText      string
	BodyHTML      string
	EntityType    shared.EntityType
	EntityID      *uuid.UUID
}

// NewOutboundMessage creates the log row for a sent email.
// Recipient lists are stored ";"-joined.
func NewOutboundMessage(tenantID uuid.UUID, sender string, to, cc []string, subject string) (*Message, error) {
	if len(to) == 0 {
		return nil, shared.NewDomainError("INVALID_RECIPIENTS", "At least one recipient is required")
	}
	now := time.Now().UTC()

	return &Message{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Direction:           DirectionOut,
		Subject:             subject,
		Sender:              strings.ToLower(strings.TrimSpace(sender)),
		Recipients:          JoinAddresses(to),
		CC:                  JoinAddresses(cc),
		SentAt:              &now,
	}, nil
}

// NewInboundMessage creates the log row for an ingested email
func NewInboundMessage(tenantID uuid.UUID, providerMsgID, sender, subject string) (*Message, error) {
	providerMsgID = strings.TrimSpace(providerMsgID)
	if providerMsgID == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER_ID", "Provider message id is required")
	}

	return &Message{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Direction:           DirectionIn,
		Subject:             subject,
		Sender:              strings.ToLower(strings.TrimSpace(sender)),
		ProviderMsgID:       providerMsgID,
	}, nil
}

// SetBody sets the message body variants
func (m *Message) SetBody(text, html string) {
	m.BodyText = text
	m.BodyHTML = html
	m.touch()
}

// SetProviderID records the message id assigned by the transport
func (m *Message) SetProviderID(providerMsgID string) {
	m.ProviderMsgID = strings.TrimSpace(providerMsgID)
	m.touch()
}

// SetThread sets the provider thread id
func (m *Message) SetThread(threadID string) {
	m.ThreadID = threadID
	m.touch()
}

// SetSentAt records the provider timestamp
func (m *Message) SetSentAt(at time.Time) {
	utc := at.UTC()
	m.SentAt = &utc
	m.touch()
}

// LinkTo attaches the message to another record
func (m *Message) LinkTo(entityType shared.EntityType, entityID uuid.UUID) error {
	if !entityType.IsValid() {
		return shared.NewDomainError("INVALID_ENTITY_TYPE", "Invalid entity type: "+string(entityType))
	}
	m.EntityType = entityType
	m.EntityID = &entityID
	m.touch()
	return nil
}

func (m *Message) touch() {
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// JoinAddresses joins an address list into the stored form
func JoinAddresses(addrs []string) string {
	cleaned := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a != "" {
			cleaned = append(cleaned, a)
		}
	}
	return strings.Join(cleaned, ";")
}

// SplitAddresses splits the stored form back into a list
func SplitAddresses(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
