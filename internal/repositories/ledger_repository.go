package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
)

// AttendanceRepository manages the per-day attendance ledger. The write path
// is delete-then-insert for a whole (class, date): both calls must run on a
// transaction-bound Repository so a failed insert rolls the delete back.
type AttendanceRepository interface {
	DeleteByClassAndDate(ctx context.Context, classID uint, date time.Time) error
	CreateBatch(ctx context.Context, records []*models.Attendance) error
	ListByClassAndDate(ctx context.Context, classID uint, date time.Time) ([]*models.Attendance, error)
	ListByStudent(ctx context.Context, studentID string, filters AttendanceFilters) ([]*models.Attendance, int64, error)
	List(ctx context.Context, filters AttendanceFilters) ([]*models.Attendance, int64, error)
	CountByStatusOnDate(ctx context.Context, date time.Time, classIDs []uint) (map[models.AttendanceStatus]int64, error)
}

// ScoreRepository manages the per-assessment score ledger.
type ScoreRepository interface {
	// FindByKey looks a score up by its compound key; a missing row surfaces
	// as a store not-found error.
	FindByKey(ctx context.Context, studentID string, classSubjectID uint, scoreType models.ScoreType) (*models.Score, error)
	Create(ctx context.Context, score *models.Score) error
	Update(ctx context.Context, score *models.Score) error
	ListByClassSubject(ctx context.Context, classSubjectID uint) ([]*models.Score, error)
	ListByStudent(ctx context.Context, studentID string, filters ScoreFilters) ([]*models.Score, int64, error)
}

// DashboardRepository serves read-only aggregates for the overview screen.
type DashboardRepository interface {
	Counts(ctx context.Context) (*SchoolCounts, error)
	CountsScoped(ctx context.Context, classIDs []uint) (*SchoolCounts, error)
}
