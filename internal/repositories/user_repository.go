package repositories

import (
	"context"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
)

// UserRepository manages login accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, id uint, status models.UserStatus) error
	Delete(ctx context.Context, id uint) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// TeacherRepository manages teacher profiles.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id string) (*models.Teacher, error)
	// GetByUserID resolves the profile belonging to a login account; this is
	// the server-side teacher-id resolution the authorization policy uses.
	GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error)
	List(ctx context.Context, filters TeacherFilters) ([]*models.Teacher, int64, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// StudentRepository manages student profiles.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Student, error)
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	CountByClass(ctx context.Context, classID uint) (int64, error)
	CountByClassIDs(ctx context.Context, classIDs []uint) (map[uint]int64, error)
}
