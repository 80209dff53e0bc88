package models

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/crm"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealModel is the persistence model for pipeline deals
type DealModel struct {
	TenantAggregateModel
	CompanyID     *uuid.UUID      `gorm:"type:uuid;index"`
	ContactID     *uuid.UUID      `gorm:"type:uuid"`
	AssignedTo    *uuid.UUID      `gorm:"type:uuid;index"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Stage         string          `gorm:"type:varchar(20);not null;default:'lead';index"`
	Value         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	ExpectedClose *time.Time      `gorm:"type:date"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DealModel) TableName() string {
	return "deals"
}

// ToDomain converts the persistence model to a domain Deal
func (m *DealModel) ToDomain() *crm.Deal {
	deal := &crm.Deal{
		CompanyID:     m.CompanyID,
		ContactID:     m.ContactID,
		AssignedTo:    m.AssignedTo,
		Title:         m.Title,
		Stage:         crm.DealStage(m.Stage),
		Value:         m.Value,
		Currency:      m.Currency,
		ExpectedClose: m.ExpectedClose,
		Notes:         m.Notes,
	}
	m.PopulateTenantAggregateRoot(&deal.TenantAggregateRoot)
	return deal
}

// FromDomain populates the model from a domain Deal
func (m *DealModel) FromDomain(d *crm.Deal) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.CompanyID = d.CompanyID
	m.ContactID = d.ContactID
	m.AssignedTo = d.AssignedTo
	m.Title = d.Title
	m.Stage = string(d.Stage)
	m.Value = d.Value
	m.Currency = d.Currency
	m.ExpectedClose = d.ExpectedClose
	m.Notes = d.Notes
}

// ActivityModel is the persistence model for activities
type ActivityModel struct {
	TenantAggregateModel
	Type        string     `gorm:"type:varchar(20);not null;default:'task'"`
	Subject     string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	DueAt       *time.Time `gorm:"index"`
	CompletedAt *time.Time
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index"`
	EntityType  string     `gorm:"type:varchar(50);index:idx_activity_entity"`
	EntityID    *uuid.UUID `gorm:"type:uuid;index:idx_activity_entity"`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts the persistence model to a domain Activity
func (m *ActivityModel) ToDomain() *crm.Activity {
	activity := &crm.Activity{
		Type:        crm.ActivityType(m.Type),
		Subject:     m.Subject,
		Description: m.Description,
		DueAt:       m.DueAt,
		CompletedAt: m.CompletedAt,
		AssignedTo:  m.AssignedTo,
		EntityType:  shared.EntityType(m.EntityType),
		EntityID:    m.EntityID,
	}
	m.PopulateTenantAggregateRoot(&activity.TenantAggregateRoot)
	return activity
}

// FromDomain populates the model from a domain Activity
func (m *ActivityModel) FromDomain(a *crm.Activity) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Type = string(a.Type)
	m.Subject = a.Subject
	m.Description = a.Description
	m.DueAt = a.DueAt
	m.CompletedAt = a.CompletedAt
	m.AssignedTo = a.AssignedTo
	m.EntityType = string(a.EntityType)
	m.EntityID = a.EntityID
}
