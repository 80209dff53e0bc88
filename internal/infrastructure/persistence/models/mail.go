package models

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/mail"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmailMessageModel is the persistence model for the email log
type EmailMessageModel struct {
	TenantAggregateModel
	Direction     string     `gorm:"type:varchar(10);not null;index"`
	Subject       string     `gorm:"type:varchar(500)"`
	Sender        string     `gorm:"type:varchar(254);index"`
	Recipients    string     `gorm:"type:text"`
	CC            string     `gorm:"type:text"`
	ProviderMsgID string     `gorm:"type:varchar(500);uniqueIndex:idx_email_tenant_provider,priority:2"`
	ThreadID      string     `gorm:"type:varchar(500);index"`
	SentAt        *time.Time `gorm:"index"`
	BodyText      string     `gorm:"type:text"`
	BodyHTML      string     `gorm:"type:text"`
	EntityType    string     `gorm:"type:varchar(50);index:idx_email_entity"`
	EntityID      *uuid.UUID `gorm:"type:uuid;index:idx_email_entity"`
}

// TableName returns the table name for GORM
func (EmailMessageModel) TableName() string {
	return "email_messages"
}

// ToDomain converts the persistence model to a domain Message
func (m *EmailMessageModel) ToDomain() *mail.Message {
	msg := &mail.Message{
		Direction:     mail.Direction(m.Direction),
		Subject:       m.Subject,
		Sender:        m.Sender,
		Recipients:    m.Recipients,
		CC:            m.CC,
		ProviderMsgID: m.ProviderMsgID,
		ThreadID:      m.ThreadID,
		SentAt:        m.SentAt,
		BodyText:      m.BodyText,
		BodyHTML:      m.BodyHTML,
		EntityType:    shared.EntityType(m.EntityType),
		EntityID:      m.EntityID,
	}
	m.PopulateTenantAggregateRoot(&msg.TenantAggregateRoot)
	return msg
}

// FromDomain populates the model from a domain Message
func (m *EmailMessageModel) FromDomain(msg *mail.Message) {
	m.FromDomainTenantAggregateRoot(msg.TenantAggregateRoot)
	m.Direction = string(msg.Direction)
	m.Subject = msg.Subject
	m.Sender = msg.Sender
	m.Recipients = msg.Recipients
	m.CC = msg.CC
	m.ProviderMsgID = msg.ProviderMsgID
	m.ThreadID = msg.ThreadID
	m.SentAt = msg.SentAt
	m.BodyText = msg.BodyText
	m.BodyHTML = msg.BodyHTML
	m.EntityType = string(msg.EntityType)
	m.EntityID = msg.EntityID
}
