package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type TeacherPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *TeacherPostgreSQL) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return fmt.Errorf("failed to create teacher: %w", err)
	}
	return nil
}

func (r *TeacherPostgreSQL) GetByID(ctx context.Context, id string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&teacher).Error; err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return &teacher, nil
}

func (r *TeacherPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		return nil, fmt.Errorf("failed to get teacher by user: %w", err)
	}
	return &teacher, nil
}

func (r *TeacherPostgreSQL) List(ctx context.Context, filters repositories.TeacherFilters) ([]*models.Teacher, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Teacher{})

	if filters.MainSubject != nil {
		query = query.Where("main_subject = ?", *filters.MainSubject)
	}
	query = r.helpers.ApplySearch(query, filters.Search, "id", "full_name", "email")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count teachers: %w", err)
	}

	var teachers []*models.Teacher
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&teachers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list teachers: %w", err)
	}

	return teachers, total, nil
}

func (r *TeacherPostgreSQL) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Save(teacher).Error; err != nil {
		return fmt.Errorf("failed to update teacher: %w", err)
	}
	return nil
}

func (r *TeacherPostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Teacher{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete teacher: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TeacherPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Teacher{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check teacher: %w", err)
	}
	return count > 0, nil
}
