package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *StudentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Preload("CurrentClass").
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

func (r *StudentPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error; err != nil {
		return nil, fmt.Errorf("failed to get student by user: %w", err)
	}
	return &student, nil
}

func (r *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filters.ClassID != nil {
		query = query.Where("current_class_id = ?", *filters.ClassID)
	}
	if len(filters.ClassIDs) > 0 {
		query = query.Where("current_class_id IN ?", filters.ClassIDs)
	}
	query = r.helpers.ApplySearch(query, filters.Search, "id", "full_name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	var students []*models.Student
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}

	return students, total, nil
}

func (r *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

func (r *StudentPostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Student{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StudentPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check student: %w", err)
	}
	return count > 0, nil
}

func (r *StudentPostgreSQL) CountByClass(ctx context.Context, classID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("current_class_id = ?", classID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count students in class: %w", err)
	}
	return count, nil
}

func (r *StudentPostgreSQL) CountByClassIDs(ctx context.Context, classIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(classIDs))
	if len(classIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ClassID uint
		N       int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Select("current_class_id AS class_id, COUNT(*) AS n").
		Where("current_class_id IN ?", classIDs).
		Group("current_class_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count students per class: %w", err)
	}

	for _, r := range rows {
		counts[r.ClassID] = r.N
	}
	return counts, nil
}
