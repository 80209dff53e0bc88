package crm

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealStage represents the pipeline stage of a deal
type DealStage string

const (
	StageLead        DealStage = "lead"
	StageQualified   DealStage = "qualified"
	StageProposal    DealStage = "proposal"
	StageNegotiation DealStage = "negotiation"
	StageWon         DealStage = "won"
	StageLost        DealStage = "lost"
)

var validStages = map[DealStage]struct{}{
	StageLead:        {},
	StageQualified:   {},
	StageProposal:    {},
	StageNegotiation: {},
	StageWon:         {},
	StageLost:        {},
}

// IsValid reports whether the stage is one of the canonical pipeline stages
func (s DealStage) IsValid() bool {
	_, ok := validStages[s]
	return ok
}

// Deal represents a sales opportunity in the pipeline
type Deal struct {
	shared.TenantAggregateRoot
	CompanyID     *uuid.UUID
	ContactID     *uuid.UUID
	AssignedTo    *uuid.UUID
	Title         string
	Stage         DealStage
	Value         decimal.Decimal
	Currency      string
	ExpectedClose *time.Time
	Notes         string
}

// NewDeal creates a new deal starting at the lead stage
func NewDeal(tenantID uuid.UUID, title string) (*Deal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_DEAL_TITLE", "Deal title is required")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_DEAL_TITLE", "Deal title cannot exceed 200 characters")
	}

	return &Deal{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               title,
		Stage:               StageLead,
		Value:               decimal.Zero,
		Currency:            "EUR",
	}, nil
}

// SetTitle updates the deal title
func (d *Deal) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_DEAL_TITLE", "Deal title is required")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_DEAL_TITLE", "Deal title cannot exceed 200 characters")
	}
	d.Title = title
	d.touch()
	return nil
}

// ChangeStage moves the deal to another pipeline stage
func (d *Deal) ChangeStage(stage DealStage) error {
	if !stage.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Invalid deal stage: "+string(stage))
	}
	d.Stage = stage
	d.touch()
	return nil
}

// SetValue sets the expected deal value
func (d *Deal) SetValue(value decimal.Decimal, currency string) error {
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_DEAL_VALUE", "Deal value cannot be negative")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "EUR"
	}
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}
	d.Value = value
	d.Currency = currency
	d.touch()
	return nil
}

// SetCompany links the deal to a company
func (d *Deal) SetCompany(companyID *uuid.UUID) {
	d.CompanyID = companyID
	d.touch()
}

// SetContact links the deal to a contact
func (d *Deal) SetContact(contactID *uuid.UUID) {
	d.ContactID = contactID
	d.touch()
}

// Assign sets the owning user
func (d *Deal) Assign(userID *uuid.UUID) {
	d.AssignedTo = userID
	d.touch()
}

// SetExpectedClose sets the expected close date
func (d *Deal) SetExpectedClose(at *time.Time) {
	d.ExpectedClose = at
	d.touch()
}

// SetNotes sets free-form notes
func (d *Deal) SetNotes(notes string) {
	d.Notes = notes
	d.touch()
}

// IsClosed reports whether the deal reached a terminal stage
func (d *Deal) IsClosed() bool {
	return d.Stage == StageWon || d.Stage == StageLost
}

func (d *Deal) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
