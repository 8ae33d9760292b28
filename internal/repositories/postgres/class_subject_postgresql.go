package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type ClassSubjectPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewClassSubjectPostgreSQL(db *gorm.DB) repositories.ClassSubjectRepository {
	return &ClassSubjectPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *ClassSubjectPostgreSQL) Create(ctx context.Context, assignment *models.ClassSubject) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *ClassSubjectPostgreSQL) GetByID(ctx context.Context, id uint) (*models.ClassSubject, error) {
	var assignment models.ClassSubject
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Subject").
		Preload("Teacher").
		First(&assignment, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &assignment, nil
}

func (r *ClassSubjectPostgreSQL) List(ctx context.Context, filters repositories.ClassSubjectFilters) ([]*models.ClassSubject, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ClassSubject{})

	if filters.ClassID != nil {
		query = query.Where("class_id = ?", *filters.ClassID)
	}
	if filters.ClassIDs != nil {
		query = query.Where("class_id IN ?", filters.ClassIDs)
	}
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	var assignments []*models.ClassSubject
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Preload("Class").Preload("Subject").Preload("Teacher").Find(&assignments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, total, nil
}

func (r *ClassSubjectPostgreSQL) Update(ctx context.Context, assignment *models.ClassSubject) error {
	err := r.db.WithContext(ctx).
		Model(&models.ClassSubject{}).
		Where("id = ?", assignment.ID).
		Updates(map[string]interface{}{
			"class_id":       assignment.ClassID,
			"subject_id":     assignment.SubjectID,
			"teacher_id":     assignment.TeacherID,
			"weekly_lessons": assignment.WeeklyLessons,
			"room":           assignment.Room,
			"status":         assignment.Status,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return nil
}

// Delete removes the assignment row only: score, attendance and material
// history referencing the id stays in place.
func (r *ClassSubjectPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ClassSubject{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ClassSubjectPostgreSQL) ExistsByComposite(ctx context.Context, classID, subjectID uint, teacherID string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ClassSubject{}).
		Where("class_id = ? AND subject_id = ? AND teacher_id = ?", classID, subjectID, teacherID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check assignment uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *ClassSubjectPostgreSQL) DistinctClassIDs(ctx context.Context, teacherID string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.ClassSubject{}).
		Distinct("class_id").
		Where("teacher_id = ?", teacherID).
		Pluck("class_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to project teacher class ids: %w", err)
	}
	return ids, nil
}
