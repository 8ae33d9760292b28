package repositories

import (
	"context"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
)

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id uint) (*models.Class, error)
	List(ctx context.Context, filters ClassFilters) ([]*models.Class, int64, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id uint) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	List(ctx context.Context, filters SubjectFilters) ([]*models.Subject, int64, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id uint) error
	ExistsByCode(ctx context.Context, code string, excludeID uint) (bool, error)
}

// ClassSubjectRepository manages the class-subject-teacher assignment graph.
type ClassSubjectRepository interface {
	Create(ctx context.Context, assignment *models.ClassSubject) error
	GetByID(ctx context.Context, id uint) (*models.ClassSubject, error)
	List(ctx context.Context, filters ClassSubjectFilters) ([]*models.ClassSubject, int64, error)
	Update(ctx context.Context, assignment *models.ClassSubject) error
	// Delete removes the assignment only. Historical Score, Attendance and
	// Material rows referencing it are retained.
	Delete(ctx context.Context, id uint) error
	ExistsByComposite(ctx context.Context, classID, subjectID uint, teacherID string, excludeID uint) (bool, error)
	// DistinctClassIDs projects the distinct class ids a teacher is assigned
	// to, regardless of assignment status.
	DistinctClassIDs(ctx context.Context, teacherID string) ([]uint, error)
}

type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id uint) (*models.Material, error)
	List(ctx context.Context, filters MaterialFilters) ([]*models.Material, int64, error)
	ListByClassSubject(ctx context.Context, classSubjectID uint) ([]*models.Material, error)
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id uint) error
}
