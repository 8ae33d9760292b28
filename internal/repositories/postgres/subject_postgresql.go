package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/cache"
	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type SubjectPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewSubjectPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.SubjectRepository {
	return &SubjectPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cm,
	}
}

func (r *SubjectPostgreSQL) Create(ctx context.Context, subject *models.Subject) error {
	if err := r.db.WithContext(ctx).Create(subject).Error; err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	cache.InvalidateSubjectCache(ctx, r.cacheManager, subject.ID)
	return nil
}

func (r *SubjectPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var subject models.Subject

	err := r.cacheManager.Subject.CacheOrExecute(ctx, cacheKey, &subject, cache.SubjectCacheConfig.TTL, func() (interface{}, error) {
		var dbSubject models.Subject
		if err := r.db.WithContext(ctx).First(&dbSubject, id).Error; err != nil {
			return nil, err
		}
		return &dbSubject, nil
	})
	if err != nil {
		return nil, err
	}

	return &subject, nil
}

func (r *SubjectPostgreSQL) List(ctx context.Context, filters repositories.SubjectFilters) ([]*models.Subject, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Subject{})

	if filters.Grade != nil {
		query = query.Where("grade = ?", *filters.Grade)
	}
	if filters.IsOptional != nil {
		query = query.Where("is_optional = ?", *filters.IsOptional)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subjects: %w", err)
	}

	var subjects []*models.Subject
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&subjects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list subjects: %w", err)
	}

	return subjects, total, nil
}

func (r *SubjectPostgreSQL) Update(ctx context.Context, subject *models.Subject) error {
	if err := r.db.WithContext(ctx).Save(subject).Error; err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}
	cache.InvalidateSubjectCache(ctx, r.cacheManager, subject.ID)
	return nil
}

func (r *SubjectPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Subject{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subject: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateSubjectCache(ctx, r.cacheManager, id)
	return nil
}

func (r *SubjectPostgreSQL) ExistsByCode(ctx context.Context, code string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("code = ?", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check subject code: %w", err)
	}
	return count > 0, nil
}
