package crm

import (
	"time"

	"github.com/foodcrm/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Deal DTOs
// =============================================================================

// CreateDealRequest represents a request to create a new deal
type CreateDealRequest struct {
	Title         string           `json:"title" binding:"required,min=1,max=200"`
	CompanyID     *uuid.UUID       `json:"company_id"`
	ContactID     *uuid.UUID       `json:"contact_id"`
	AssignedTo    *uuid.UUID       `json:"assigned_to"`
	Value         *decimal.Decimal `json:"value"`
	Currency      string           `json:"currency" binding:"omitempty,currency_code"`
	ExpectedClose *time.Time       `json:"expected_close"`
	Notes         string           `json:"notes"`
}

// UpdateDealRequest carries the full replacement state of a deal.
// The stage is not part of it; stage moves go through their own endpoint.
type UpdateDealRequest struct {
	Title         string           `json:"title" binding:"required,min=1,max=200"`
	CompanyID     *uuid.UUID       `json:"company_id"`
	ContactID     *uuid.UUID       `json:"contact_id"`
	AssignedTo    *uuid.UUID       `json:"assigned_to"`
	Value         *decimal.Decimal `json:"value"`
	Currency      string           `json:"currency" binding:"omitempty,currency_code"`
	ExpectedClose *time.Time       `json:"expected_close"`
	Notes         string           `json:"notes"`
}

// ChangeDealStageRequest represents a pipeline stage transition
type ChangeDealStageRequest struct {
	Stage string `json:"stage" binding:"required,oneof=lead qualified proposal negotiation won lost"`
}

// DealResponse represents a deal in API responses
type DealResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	CompanyID     *uuid.UUID      `json:"company_id"`
	ContactID     *uuid.UUID      `json:"contact_id"`
	AssignedTo    *uuid.UUID      `json:"assigned_to"`
	Title         string          `json:"title"`
	Stage         string          `json:"stage"`
	Value         decimal.Decimal `json:"value"`
	Currency      string          `json:"currency"`
	ExpectedClose *time.Time      `json:"expected_close"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// DealListFilter contains filters for listing deals
type DealListFilter struct {
	Search     string     `form:"search"`
	Stage      string     `form:"stage"`
	CompanyID  *uuid.UUID `form:"company_id"`
	AssignedTo *uuid.UUID `form:"assigned_to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// ToDealResponse converts a domain deal to a response DTO
func ToDealResponse(d *crm.Deal) DealResponse {
	return DealResponse{
		ID:            d.ID,
		TenantID:      d.TenantID,
		CompanyID:     d.CompanyID,
		ContactID:     d.ContactID,
		AssignedTo:    d.AssignedTo,
		Title:         d.Title,
		Stage:         string(d.Stage),
		Value:         d.Value,
		Currency:      d.Currency,
		ExpectedClose: d.ExpectedClose,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Version:       d.Version,
	}
}

// ToDealResponses converts a slice of domain deals
func ToDealResponses(deals []crm.Deal) []DealResponse {
	responses := make([]DealResponse, len(deals))
	for i := range deals {
		responses[i] = ToDealResponse(&deals[i])
	}
	return responses
}

// =============================================================================
// Activity DTOs
// =============================================================================

// CreateActivityRequest represents a request to create a new activity
type CreateActivityRequest struct {
	Subject     string     `json:"subject" binding:"required,min=1,max=200"`
	Type        string     `json:"activity_type" binding:"omitempty,oneof=task call meeting"`
	Description string     `json:"description"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DueAt       *time.Time `json:"due_at"`
	EntityType  string     `json:"entity_type" binding:"omitempty,oneof=company contact deal quote po"`
	EntityID    *uuid.UUID `json:"entity_id"`
}

// UpdateActivityRequest carries the full replacement state of an
// activity. Completion has its own endpoint and is untouched here.
type UpdateActivityRequest struct {
	Subject     string     `json:"subject" binding:"required,min=1,max=200"`
	Type        string     `json:"activity_type" binding:"omitempty,oneof=task call meeting"`
	Description string     `json:"description"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DueAt       *time.Time `json:"due_at"`
	EntityType  string     `json:"entity_type" binding:"omitempty,oneof=company contact deal quote po"`
	EntityID    *uuid.UUID `json:"entity_id"`
}

// ActivityResponse represents an activity in API responses
type ActivityResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Type        string     `json:"activity_type"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	CompletedAt *time.Time `json:"completed_at"`
	EntityType  string     `json:"entity_type"`
	EntityID    *uuid.UUID `json:"entity_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ActivityListFilter contains filters for listing activities
type ActivityListFilter struct {
	Search     string     `form:"search"`
	Type       string     `form:"activity_type"`
	AssignedTo *uuid.UUID `form:"assigned_to"`
	EntityType string     `form:"entity_type"`
	EntityID   *uuid.UUID `form:"entity_id"`
	Open       *bool      `form:"open"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// ToActivityResponse converts a domain activity to a response DTO
func ToActivityResponse(a *crm.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		TenantID:    a.TenantID,
		AssignedTo:  a.AssignedTo,
		Type:        string(a.Type),
		Subject:     a.Subject,
		Description: a.Description,
		DueAt:       a.DueAt,
		CompletedAt: a.CompletedAt,
		EntityType:  string(a.EntityType),
		EntityID:    a.EntityID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Version:     a.Version,
	}
}

// ToActivityResponses converts a slice of domain activities
func ToActivityResponses(activities []crm.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, len(activities))
	for i := range activities {
		responses[i] = ToActivityResponse(&activities[i])
	}
	return responses
}
