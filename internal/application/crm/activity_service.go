package crm

import (
	"context"
	"time"

	"github.com/foodcrm/backend/internal/domain/crm"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ActivityService handles task, call and meeting operations
type ActivityService struct {
	activityRepo crm.ActivityRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo crm.ActivityRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
	}
}

// Create creates a new open activity
func (s *ActivityService) Create(ctx context.Context, tenantID uuid.UUID, req CreateActivityRequest) (*ActivityResponse, error) {
	activity, err := crm.NewActivity(tenantID, req.Subject, crm.ActivityType(req.Type))
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		activity.SetDescription(req.Description)
	}
	if req.AssignedTo != nil {
		activity.Assign(req.AssignedTo)
	}
	if req.DueAt != nil {
		activity.SetDueAt(req.DueAt)
	}
	if req.EntityType != "" && req.EntityID != nil {
		if err := activity.LinkTo(shared.EntityType(req.EntityType), *req.EntityID); err != nil {
			return nil, err
		}
	}

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}

	response := ToActivityResponse(activity)
	return &response, nil
}

// GetByID retrieves an activity by ID
func (s *ActivityService) GetByID(ctx context.Context, tenantID, activityID uuid.UUID) (*ActivityResponse, error) {
	activity, err := s.activityRepo.FindByIDForTenant(ctx, tenantID, activityID)
	if err != nil {
		return nil, err
	}

	response := ToActivityResponse(activity)
	return &response, nil
}

// List retrieves activities with filtering and pagination
func (s *ActivityService) List(ctx context.Context, tenantID uuid.UUID, filter ActivityListFilter) ([]ActivityResponse, int64, error) {
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
		Filters:  make(map[string]any),
	}

	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.AssignedTo != nil {
		domainFilter.Filters["assigned_to"] = *filter.AssignedTo
	}
	if filter.EntityType != "" {
		domainFilter.Filters["entity_type"] = filter.EntityType
	}
	if filter.EntityID != nil {
		domainFilter.Filters["entity_id"] = *filter.EntityID
	}
	if filter.Open != nil {
		domainFilter.Filters["open"] = *filter.Open
	}

	activities, err := s.activityRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.activityRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToActivityResponses(activities), total, nil
}

// Update replaces all mutable fields of an activity; completion state
// is untouched
func (s *ActivityService) Update(ctx context.Context, tenantID, activityID uuid.UUID, req UpdateActivityRequest) (*ActivityResponse, error) {
	activity, err := s.activityRepo.FindByIDForTenant(ctx, tenantID, activityID)
	if err != nil {
		return nil, err
	}

	if err := activity.SetSubject(req.Subject); err != nil {
		return nil, err
	}
	activityType := crm.ActivityType(req.Type)
	if activityType == "" {
		activityType = crm.ActivityTask
	}
	if err := activity.SetType(activityType); err != nil {
		return nil, err
	}
	activity.SetDescription(req.Description)
	if req.AssignedTo == nil || *req.AssignedTo == uuid.Nil {
		activity.Assign(nil)
	} else {
		activity.Assign(req.AssignedTo)
	}
	activity.SetDueAt(req.DueAt)
	if req.EntityType != "" && req.EntityID != nil {
		if err := activity.LinkTo(shared.EntityType(req.EntityType), *req.EntityID); err != nil {
			return nil, err
		}
	} else {
		activity.Unlink()
	}

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}

	response := ToActivityResponse(activity)
	return &response, nil
}

// Complete marks an activity as done at the current UTC time
func (s *ActivityService) Complete(ctx context.Context, tenantID, activityID uuid.UUID) (*ActivityResponse, error) {
	activity, err := s.activityRepo.FindByIDForTenant(ctx, tenantID, activityID)
	if err != nil {
		return nil, err
	}

	activity.Complete(time.Now().UTC())

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}

	response := ToActivityResponse(activity)
	return &response, nil
}

// Delete removes an activity
func (s *ActivityService) Delete(ctx context.Context, tenantID, activityID uuid.UUID) error {
	return s.activityRepo.DeleteForTenant(ctx, tenantID, activityID)
}
