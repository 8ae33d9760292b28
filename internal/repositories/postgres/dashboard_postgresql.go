package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/cache"
	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type DashboardPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewDashboardPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.DashboardRepository {
	return &DashboardPostgreSQL{
		db:           db,
		cacheManager: cm,
	}
}

// Counts returns whole-school entity counts, cached briefly since the
// overview screen polls them.
func (r *DashboardPostgreSQL) Counts(ctx context.Context) (*repositories.SchoolCounts, error) {
	var counts repositories.SchoolCounts

	err := r.cacheManager.Stats.CacheOrExecute(ctx, "school-counts", &counts, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var c repositories.SchoolCounts
		if err := r.countAll(ctx, nil, &c); err != nil {
			return nil, err
		}
		return &c, nil
	})
	if err != nil {
		return nil, err
	}

	return &counts, nil
}

// CountsScoped restricts student/class counts to the given class set. Not
// cached: the scope is a per-principal authorization projection.
func (r *DashboardPostgreSQL) CountsScoped(ctx context.Context, classIDs []uint) (*repositories.SchoolCounts, error) {
	var counts repositories.SchoolCounts
	if err := r.countAll(ctx, classIDs, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *DashboardPostgreSQL) countAll(ctx context.Context, classIDs []uint, out *repositories.SchoolCounts) error {
	studentQ := r.db.WithContext(ctx).Model(&models.Student{})
	classQ := r.db.WithContext(ctx).Model(&models.Class{})
	if classIDs != nil {
		studentQ = studentQ.Where("current_class_id IN ?", classIDs)
		classQ = classQ.Where("id IN ?", classIDs)
	}

	if err := studentQ.Count(&out.Students).Error; err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if err := classQ.Count(&out.Classes).Error; err != nil {
		return fmt.Errorf("failed to count classes: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Teacher{}).Count(&out.Teachers).Error; err != nil {
		return fmt.Errorf("failed to count teachers: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Subject{}).Count(&out.Subjects).Error; err != nil {
		return fmt.Errorf("failed to count subjects: %w", err)
	}

	return nil
}
