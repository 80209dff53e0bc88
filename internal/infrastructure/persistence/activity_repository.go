package persistence

import (
	"context"
	"errors"

	"github.com/foodcrm/backend/internal/domain/crm"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormActivityRepository implements ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindByID finds an activity by its ID
func (r *GormActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Activity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an activity by ID within a tenant
func (r *GormActivityRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*crm.Activity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all activities matching the filter
func (r *GormActivityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Activity, error) {
	var activityModels []models.ActivityModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ActivityModel{}), filter)

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]crm.Activity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities, nil
}

// FindAllForTenant finds all activities for a tenant
func (r *GormActivityRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crm.Activity, error) {
	var activityModels []models.ActivityModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ActivityModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]crm.Activity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities, nil
}

// Save creates or updates an activity
func (r *GormActivityRepository) Save(ctx context.Context, activity *crm.Activity) error {
	var model models.ActivityModel
	model.FromDomain(activity)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an activity
func (r *GormActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ActivityModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForTenant deletes an activity within a tenant
func (r *GormActivityRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ActivityModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts activities matching the filter
func (r *GormActivityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ActivityModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts activities for a tenant
func (r *GormActivityRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ActivityModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormActivityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	query = query.Order(orderClause(filter, activitySortColumns, "due_at ASC NULLS LAST, created_at DESC"))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormActivityRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("subject ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "assigned_to":
			query = query.Where("assigned_to = ?", value)
		case "entity_type":
			query = query.Where("entity_type = ?", value)
		case "entity_id":
			query = query.Where("entity_id = ?", value)
		case "open":
			if value == true {
				query = query.Where("completed_at IS NULL")
			} else {
				query = query.Where("completed_at IS NOT NULL")
			}
		}
	}

	return query
}

// Ensure GormActivityRepository implements ActivityRepository
var _ crm.ActivityRepository = (*GormActivityRepository)(nil)
