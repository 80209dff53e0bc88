package crm

import (
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ActivityType represents the kind of activity
type ActivityType string

const (
	ActivityTask    ActivityType = "task"
	ActivityCall    ActivityType = "call"
	ActivityMeeting ActivityType = "meeting"
)

// IsValid reports whether the activity type is known
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTask, ActivityCall, ActivityMeeting:
		return true
	}
	return false
}

// Activity represents a task, call or meeting, optionally linked to
// another record through the EntityType/EntityID pair.
type Activity struct {
	shared.TenantAggregateRoot
	AssignedTo  *uuid.UUID
	Type        ActivityType
	Subject     string
	Description string
	DueAt       *time.Time
	CompletedAt *time.Time
	EntityType  shared.EntityType
	EntityID    *uuid.UUID
}

// NewActivity creates a new open activity
func NewActivity(tenantID uuid.UUID, subject string, activityType ActivityType) (*Activity, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Activity subject is required")
	}
	if len(subject) > 200 {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Activity subject cannot exceed 200 characters")
	}
	if activityType == "" {
		activityType = ActivityTask
	}
	if !activityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_TYPE", "Invalid activity type: "+string(activityType))
	}

	return &Activity{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                activityType,
		Subject:             subject,
	}, nil
}

// SetSubject updates the activity subject
func (a *Activity) SetSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return shared.NewDomainError("INVALID_SUBJECT", "Activity subject is required")
	}
	if len(subject) > 200 {
		return shared.NewDomainError("INVALID_SUBJECT", "Activity subject cannot exceed 200 characters")
	}
	a.Subject = subject
	a.touch()
	return nil
}

// SetType changes the activity type
func (a *Activity) SetType(activityType ActivityType) error {
	if !activityType.IsValid() {
		return shared.NewDomainError("INVALID_ACTIVITY_TYPE", "Invalid activity type: "+string(activityType))
	}
	a.Type = activityType
	a.touch()
	return nil
}

// LinkTo attaches the activity to another record
func (a *Activity) LinkTo(entityType shared.EntityType, entityID uuid.UUID) error {
	if !entityType.IsValid() {
		return shared.NewDomainError("INVALID_ENTITY_TYPE", "Invalid entity type: "+string(entityType))
	}
	a.EntityType = entityType
	a.EntityID = &entityID
	a.touch()
	return nil
}

// Unlink clears the entity reference
func (a *Activity) Unlink() {
	a.EntityType = ""
	a.EntityID = nil
	a.touch()
}

// Assign sets the owning user
func (a *Activity) Assign(userID *uuid.UUID) {
	a.AssignedTo = userID
	a.touch()
}

// SetDescription sets the long description
func (a *Activity) SetDescription(description string) {
	a.Description = description
	a.touch()
}

// SetDueAt sets the due timestamp
func (a *Activity) SetDueAt(at *time.Time) {
	a.DueAt = at
	a.touch()
}

// Complete marks the activity as done. Completing an already completed
// activity refreshes the completion timestamp.
func (a *Activity) Complete(at time.Time) {
	completed := at.UTC()
	a.CompletedAt = &completed
	a.touch()
}

// IsCompleted reports whether the activity is done
func (a *Activity) IsCompleted() bool {
	return a.CompletedAt != nil
}

func (a *Activity) touch() {
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
