package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/cache"
	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type ClassPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewClassPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.ClassRepository {
	return &ClassPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cm,
	}
}

func (r *ClassPostgreSQL) Create(ctx context.Context, class *models.Class) error {
	if err := r.db.WithContext(ctx).Create(class).Error; err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	cache.InvalidateClassCache(ctx, r.cacheManager, class.ID)
	return nil
}

// GetByID retrieves a class with caching. The derived student count is NOT
// part of the cached record; the service layer attaches it per read.
func (r *ClassPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var class models.Class

	err := r.cacheManager.Class.CacheOrExecute(ctx, cacheKey, &class, cache.ClassCacheConfig.TTL, func() (interface{}, error) {
		var dbClass models.Class
		if err := r.db.WithContext(ctx).First(&dbClass, id).Error; err != nil {
			return nil, err
		}
		return &dbClass, nil
	})
	if err != nil {
		return nil, err
	}

	return &class, nil
}

func (r *ClassPostgreSQL) List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Class{})

	if filters.Grade != nil {
		query = query.Where("grade = ?", *filters.Grade)
	}
	if filters.YearStart != nil {
		query = query.Where("year_start = ?", *filters.YearStart)
	}
	if len(filters.IDs) > 0 {
		query = query.Where("id IN ?", filters.IDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count classes: %w", err)
	}

	var classes []*models.Class
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&classes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list classes: %w", err)
	}

	return classes, total, nil
}

func (r *ClassPostgreSQL) Update(ctx context.Context, class *models.Class) error {
	if err := r.db.WithContext(ctx).Save(class).Error; err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	cache.InvalidateClassCache(ctx, r.cacheManager, class.ID)
	return nil
}

func (r *ClassPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Class{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete class: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateClassCache(ctx, r.cacheManager, id)
	return nil
}

func (r *ClassPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Class{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check class: %w", err)
	}
	return count > 0, nil
}
