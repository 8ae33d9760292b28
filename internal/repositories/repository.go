package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository aggregates the per-domain repositories. A Repository obtained
// inside WithTransaction is bound to that transaction; everything called on
// it commits or rolls back together.
type Repository interface {
	User() UserRepository
	Teacher() TeacherRepository
	Student() StudentRepository

	Class() ClassRepository
	Subject() SubjectRepository
	ClassSubject() ClassSubjectRepository
	Material() MaterialRepository

	Attendance() AttendanceRepository
	Score() ScoreRepository

	Dashboard() DashboardRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// IsNotFoundError reports whether err is the underlying store's missing-row
// error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
