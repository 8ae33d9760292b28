package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type AttendancePostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// DeleteByClassAndDate removes every attendance row for the (class, date)
// pair. The bulk recorder calls this on a transaction-bound repository
// immediately before re-inserting the day's rows.
func (r *AttendancePostgreSQL) DeleteByClassAndDate(ctx context.Context, classID uint, date time.Time) error {
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND date = ?", classID, datatypes.Date(date)).
		Delete(&models.Attendance{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete attendance for day: %w", err)
	}
	return nil
}

func (r *AttendancePostgreSQL) CreateBatch(ctx context.Context, records []*models.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("failed to insert attendance batch: %w", err)
	}
	return nil
}

func (r *AttendancePostgreSQL) ListByClassAndDate(ctx context.Context, classID uint, date time.Time) ([]*models.Attendance, error) {
	var rows []*models.Attendance
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND date = ?", classID, datatypes.Date(date)).
		Order("student_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for day: %w", err)
	}
	return rows, nil
}

func (r *AttendancePostgreSQL) ListByStudent(ctx context.Context, studentID string, filters repositories.AttendanceFilters) ([]*models.Attendance, int64, error) {
	filters.StudentID = &studentID
	return r.List(ctx, filters)
}

func (r *AttendancePostgreSQL) List(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{})

	if filters.ClassID != nil {
		query = query.Where("class_id = ?", *filters.ClassID)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", datatypes.Date(*filters.DateFrom))
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", datatypes.Date(*filters.DateTo))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	var rows []*models.Attendance
	query = query.Order("date DESC, student_id ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	return rows, total, nil
}

func (r *AttendancePostgreSQL) CountByStatusOnDate(ctx context.Context, date time.Time, classIDs []uint) (map[models.AttendanceStatus]int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("date = ?", datatypes.Date(date))
	if classIDs != nil {
		query = query.Where("class_id IN ?", classIDs)
	}

	type row struct {
		Status models.AttendanceStatus
		N      int64
	}
	var rows []row
	err := query.
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance by status: %w", err)
	}

	counts := make(map[models.AttendanceStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
