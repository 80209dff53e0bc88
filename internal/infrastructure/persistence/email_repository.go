package persistence

import (
	"context"
	"errors"

	"github.com/foodcrm/backend/internal/domain/mail"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmailRepository implements MessageRepository using GORM
type GormEmailRepository struct {
	db *gorm.DB
}

// NewGormEmailRepository creates a new GormEmailRepository
func NewGormEmailRepository(db *gorm.DB) *GormEmailRepository {
	return &GormEmailRepository{db: db}
}

// FindByID finds an email message by its ID
func (r *GormEmailRepository) FindByID(ctx context.Context, id uuid.UUID) (*mail.Message, error) {
	var model models.EmailMessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an email message by ID within a tenant
func (r *GormEmailRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*mail.Message, error) {
	var model models.EmailMessageModel
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

// ExistsByProviderID reports whether an inbound message with this
// provider id was already ingested for the tenant
func (r *GormEmailRepository) ExistsByProviderID(ctx context.Context, tenantID uuid.UUID, providerMsgID string) (bool, error) {
	if providerMsgID == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmailMessageModel{}).
		Where("tenant_id = ? AND provider_msg_id = ?", tenantID, providerMsgID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds all email messages matching the filter
func (r *GormEmailRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mail.Message, error) {
	var messageModels []models.EmailMessageModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EmailMessageModel{}), filter)

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]mail.Message, len(messageModels))
	for i, model := range messageModels {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}

// FindAllForTenant finds all email messages for a tenant
func (r *GormEmailRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]mail.Message, error) {
	var messageModels []models.EmailMessageModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EmailMessageModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]mail.Message, len(messageModels))
	for i, model := range messageModels {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}

// Save creates or updates an email message
func (r *GormEmailRepository) Save(ctx context.Context, message *mail.Message) error {
	var model models.EmailMessageModel
	model.FromDomain(message)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an email message
func (r *GormEmailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmailMessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForTenant deletes an email message within a tenant
func (r *GormEmailRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmailMessageModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts email messages matching the filter
func (r *GormEmailRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.EmailMessageModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts email messages for a tenant
func (r *GormEmailRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.EmailMessageModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormEmailRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	query = query.Order(orderClause(filter, emailSortColumns, "sent_at DESC NULLS LAST, created_at DESC"))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormEmailRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("subject ILIKE ? OR sender ILIKE ? OR recipients ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "direction":
			query = query.Where("direction = ?", value)
		case "entity_type":
			query = query.Where("entity_type = ?", value)
		case "entity_id":
			query = query.Where("entity_id = ?", value)
		case "thread_id":
			query = query.Where("thread_id = ?", value)
		}
	}

	return query
}

// Ensure GormEmailRepository implements MessageRepository
var _ mail.MessageRepository = (*GormEmailRepository)(nil)
