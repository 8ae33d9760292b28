package validator

import (
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
)

// ===== AUTH =====

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// ===== USERS =====

type UserCreateRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=100"`
	Password string          `json:"password" validate:"required,min=6,max=100"`
	FullName string          `json:"full_name" validate:"required,max=100"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Phone    string          `json:"phone" validate:"omitempty,max=20"`
	Role     models.UserRole `json:"role" validate:"required,oneof=ADMIN TEACHER STUDENT"`
}

type UserUpdateRequest struct {
	FullName *string            `json:"full_name" validate:"omitempty,max=100"`
	Email    *string            `json:"email" validate:"omitempty,email"`
	Phone    *string            `json:"phone" validate:"omitempty,max=20"`
	Status   *models.UserStatus `json:"status" validate:"omitempty,oneof=ACTIVE LOCKED"`
}

// ===== TEACHERS =====

// TeacherCreateRequest creates the profile and, when Account is present,
// the linked login user in the same transaction.
type TeacherCreateRequest struct {
	ID          string             `json:"id" validate:"required,max=20"`
	FullName    string             `json:"full_name" validate:"required,max=100"`
	DateOfBirth *time.Time         `json:"date_of_birth"`
	Gender      string             `json:"gender" validate:"omitempty,max=10"`
	Address     string             `json:"address" validate:"omitempty,max=255"`
	Phone       string             `json:"phone" validate:"omitempty,max=20"`
	Email       string             `json:"email" validate:"omitempty,email"`
	MainSubject string             `json:"main_subject" validate:"omitempty,max=100"`
	Account     *UserCreateRequest `json:"account"`
}

type TeacherUpdateRequest struct {
	FullName    *string    `json:"full_name" validate:"omitempty,max=100"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender" validate:"omitempty,max=10"`
	Address     *string    `json:"address" validate:"omitempty,max=255"`
	Phone       *string    `json:"phone" validate:"omitempty,max=20"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	MainSubject *string    `json:"main_subject" validate:"omitempty,max=100"`
}

// ===== STUDENTS =====

type StudentCreateRequest struct {
	ID             string             `json:"id" validate:"required,max=20"`
	FullName       string             `json:"full_name" validate:"required,max=100"`
	DateOfBirth    *time.Time         `json:"date_of_birth"`
	Gender         string             `json:"gender" validate:"omitempty,max=10"`
	Address        string             `json:"address" validate:"omitempty,max=255"`
	CurrentClassID *uint              `json:"current_class_id"`
	GuardianName   string             `json:"guardian_name" validate:"omitempty,max=100"`
	GuardianPhone  string             `json:"guardian_phone" validate:"omitempty,max=20"`
	Account        *UserCreateRequest `json:"account"`
}

type StudentUpdateRequest struct {
	FullName       *string    `json:"full_name" validate:"omitempty,max=100"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         *string    `json:"gender" validate:"omitempty,max=10"`
	Address        *string    `json:"address" validate:"omitempty,max=255"`
	CurrentClassID *uint      `json:"current_class_id"`
	ClearClass     bool       `json:"clear_class"`
	GuardianName   *string    `json:"guardian_name" validate:"omitempty,max=100"`
	GuardianPhone  *string    `json:"guardian_phone" validate:"omitempty,max=20"`
}

// ===== CLASSES / SUBJECTS =====

type ClassCreateRequest struct {
	Name              string  `json:"name" validate:"required,max=50"`
	Grade             int     `json:"grade" validate:"required,min=1,max=12"`
	YearStart         int     `json:"year_start" validate:"required,min=2000,max=2100"`
	YearEnd           int     `json:"year_end" validate:"required,min=2000,max=2100"`
	HomeroomTeacherID *string `json:"homeroom_teacher_id" validate:"omitempty,max=20"`
	Capacity          int     `json:"capacity" validate:"omitempty,min=1,max=100"`
}

type ClassUpdateRequest struct {
	Name              *string `json:"name" validate:"omitempty,max=50"`
	Grade             *int    `json:"grade" validate:"omitempty,min=1,max=12"`
	YearStart         *int    `json:"year_start" validate:"omitempty,min=2000,max=2100"`
	YearEnd           *int    `json:"year_end" validate:"omitempty,min=2000,max=2100"`
	HomeroomTeacherID *string `json:"homeroom_teacher_id" validate:"omitempty,max=20"`
	Capacity          *int    `json:"capacity" validate:"omitempty,min=1,max=100"`
}

type SubjectCreateRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Code       string `json:"code" validate:"required,max=20"`
	Grade      int    `json:"grade" validate:"required,min=1,max=12"`
	IsOptional bool   `json:"is_optional"`
}

type SubjectUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=100"`
	Code       *string `json:"code" validate:"omitempty,max=20"`
	Grade      *int    `json:"grade" validate:"omitempty,min=1,max=12"`
	IsOptional *bool   `json:"is_optional"`
}

// ===== ASSIGNMENTS =====

type ClassSubjectCreateRequest struct {
	ClassID       uint                     `json:"class_id" validate:"required"`
	SubjectID     uint                     `json:"subject_id" validate:"required"`
	TeacherID     string                   `json:"teacher_id" validate:"required,max=20"`
	WeeklyLessons int                      `json:"weekly_lessons" validate:"omitempty,min=1,max=20"`
	Room          string                   `json:"room" validate:"omitempty,max=50"`
	Status        *models.AssignmentStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type ClassSubjectUpdateRequest struct {
	ClassID       *uint                    `json:"class_id"`
	SubjectID     *uint                    `json:"subject_id"`
	TeacherID     *string                  `json:"teacher_id" validate:"omitempty,max=20"`
	WeeklyLessons *int                     `json:"weekly_lessons" validate:"omitempty,min=1,max=20"`
	Room          *string                  `json:"room" validate:"omitempty,max=50"`
	Status        *models.AssignmentStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ===== ATTENDANCE =====

type BulkAttendanceItem struct {
	StudentID string                  `json:"studentId" validate:"required,max=20"`
	Status    models.AttendanceStatus `json:"status" validate:"required"`
}

// BulkAttendanceRequest replaces a whole day's attendance for a class.
// Items must be non-empty; students omitted from the list end up with no
// row for the date.
type BulkAttendanceRequest struct {
	ClassID uint                 `json:"classId" validate:"required"`
	Date    string               `json:"date" validate:"required,iso_date"`
	Items   []BulkAttendanceItem `json:"items" validate:"required,min=1,dive"`
}

// ===== SCORES =====

type ScoreUpsertRequest struct {
	StudentID      string           `json:"studentId" validate:"required,max=20"`
	ClassSubjectID uint             `json:"class_subject_id" validate:"required"`
	Type           models.ScoreType `json:"type" validate:"required,score_type"`
	Score          *float64         `json:"score" validate:"omitempty,score_range"`
	Date           *string          `json:"date" validate:"omitempty,iso_date"`
}

// ===== MATERIALS =====

type MaterialCreateRequest struct {
	ClassSubjectID uint    `json:"class_subject_id" validate:"required"`
	Title          string  `json:"title" validate:"required,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=1000"`
	URL            string  `json:"url" validate:"required,url,max=500"`
}

type MaterialUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	URL         *string `json:"url" validate:"omitempty,url,max=500"`
}
