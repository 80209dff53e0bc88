package persistence

import (
	"context"
	"errors"

	"github.com/foodcrm/backend/internal/domain/catalog"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPriceListRepository implements PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

// NewGormPriceListRepository creates a new GormPriceListRepository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

// FindByID finds a price list with its lines by ID
func (r *GormPriceListRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PriceList, error) {
	var model models.PriceListModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a price list with its lines within a tenant
func (r *GormPriceListRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.PriceList, error) {
	var model models.PriceListModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all price lists matching the filter
func (r *GormPriceListRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PriceList, error) {
	var listModels []models.PriceListModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PriceListModel{}).Preload("Lines"), filter)

	if err := query.Find(&listModels).Error; err != nil {
		return nil, err
	}

	lists := make([]catalog.PriceList, len(listModels))
	for i, model := range listModels {
		lists[i] = *model.ToDomain()
	}
	return lists, nil
}

// FindAllForTenant finds all price lists for a tenant
func (r *GormPriceListRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.PriceList, error) {
	var listModels []models.PriceListModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.PriceListModel{}).Preload("Lines").Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&listModels).Error; err != nil {
		return nil, err
	}

	lists := make([]catalog.PriceList, len(listModels))
	for i, model := range listModels {
		lists[i] = *model.ToDomain()
	}
	return lists, nil
}

// Save persists the price list header and its lines in one transaction.
// Lines removed from the aggregate are deleted, the rest are upserted.
func (r *GormPriceListRepository) Save(ctx context.Context, list *catalog.PriceList) error {
	var model models.PriceListModel
	model.FromDomain(list)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(&model).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(model.Lines))
		for i, line := range model.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("price_list_id = ? AND id NOT IN ?", model.ID, currentLineIDs).
				Delete(&models.PriceListLineModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("price_list_id = ?", model.ID).
				Delete(&models.PriceListLineModel{}).Error; err != nil {
				return err
			}
		}

		for i := range model.Lines {
			if err := tx.Save(&model.Lines[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a price list and its lines
func (r *GormPriceListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteWhere(ctx, "id = ?", id)
}

// DeleteForTenant deletes a price list and its lines within a tenant
func (r *GormPriceListRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.deleteWhere(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

func (r *GormPriceListRepository) deleteWhere(ctx context.Context, query string, args ...interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.PriceListModel
		if err := tx.Where(query, args...).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Where("price_list_id = ?", model.ID).
			Delete(&models.PriceListLineModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PriceListModel{}, "id = ?", model.ID).Error
	})
}

// Count counts price lists matching the filter
func (r *GormPriceListRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PriceListModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts price lists for a tenant
func (r *GormPriceListRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PriceListModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPriceListRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	query = query.Order(orderClause(filter, priceListSortColumns, "name ASC"))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPriceListRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "currency":
			query = query.Where("currency = ?", value)
		}
	}

	return query
}

// Ensure GormPriceListRepository implements PriceListRepository
var _ catalog.PriceListRepository = (*GormPriceListRepository)(nil)
