package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type LoginRequest = validator.LoginRequest
type CreateUserRequest = validator.UserCreateRequest
type UpdateUserRequest = validator.UserUpdateRequest
type CreateTeacherRequest = validator.TeacherCreateRequest
type UpdateTeacherRequest = validator.TeacherUpdateRequest
type CreateStudentRequest = validator.StudentCreateRequest
type UpdateStudentRequest = validator.StudentUpdateRequest
type CreateClassRequest = validator.ClassCreateRequest
type UpdateClassRequest = validator.ClassUpdateRequest
type CreateSubjectRequest = validator.SubjectCreateRequest
type UpdateSubjectRequest = validator.SubjectUpdateRequest
type CreateClassSubjectRequest = validator.ClassSubjectCreateRequest
type UpdateClassSubjectRequest = validator.ClassSubjectUpdateRequest
type BulkAttendanceRequest = validator.BulkAttendanceRequest
type ScoreUpsertRequest = validator.ScoreUpsertRequest
type CreateMaterialRequest = validator.MaterialCreateRequest
type UpdateMaterialRequest = validator.MaterialUpdateRequest

// Principal identifies the authenticated caller extracted from the JWT.
type Principal struct {
	UserID   uint
	Username string
	Role     models.UserRole
}

func (p Principal) IsAdmin() bool   { return p.Role == models.RoleAdmin }
func (p Principal) IsTeacher() bool { return p.Role == models.RoleTeacher }

// AccessScope is the set of classes a principal may touch. Admin scopes
// are unrestricted; teacher scopes enumerate the classes of their
// assignments. An empty restricted scope denies everything.
type AccessScope struct {
	Unrestricted bool
	ClassIDs     map[uint]struct{}
}

// Allows reports whether the scope covers the given class.
func (s AccessScope) Allows(classID uint) bool {
	if s.Unrestricted {
		return true
	}
	_, ok := s.ClassIDs[classID]
	return ok
}

// ClassIDList flattens the scope for SQL IN clauses. Nil means no
// restriction; an empty non-nil slice matches nothing.
func (s AccessScope) ClassIDList() []uint {
	if s.Unrestricted {
		return nil
	}
	ids := make([]uint, 0, len(s.ClassIDs))
	for id := range s.ClassIDs {
		ids = append(ids, id)
	}
	return ids
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
	SortDesc bool
}

func (q ListQuery) Offset() int { return q.Page * q.PageSize }

type StudentListQuery struct {
	ListQuery
	ClassID *uint
}

type ClassSubjectListQuery struct {
	ListQuery
	ClassID   *uint
	SubjectID *uint
	TeacherID *string
	Status    *models.AssignmentStatus
}

type ScoreListQuery struct {
	StudentID *string
	Type      *models.ScoreType
}

type MaterialListQuery struct {
	ListQuery
	ClassSubjectID *uint
}

// AttendanceDaySheet is a class's roster joined with the recorded
// statuses for one date. Students without a row carry a nil Status.
type AttendanceDaySheet struct {
	ClassID  uint                 `json:"class_id"`
	Date     string               `json:"date"`
	Entries  []AttendanceDayEntry `json:"entries"`
	Recorded bool                 `json:"recorded"`
}

type AttendanceDayEntry struct {
	StudentID   string                   `json:"student_id"`
	StudentName string                   `json:"student_name"`
	Status      *models.AttendanceStatus `json:"status"`
}

type StudentScoreSummary struct {
	Student *models.Student `json:"student"`
	Scores  []*models.Score `json:"scores"`
	Average *float64        `json:"average"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	VerifyToken(tokenString string) (*Principal, error)
}

// AuthorizationService projects a principal onto the set of classes it
// may act on. Scopes are computed per request, never cached.
type AuthorizationService interface {
	ScopeFor(ctx context.Context, principal Principal) (AccessScope, error)
	RequireClassAccess(ctx context.Context, principal Principal, classID uint) error
	RequireAssignmentAccess(ctx context.Context, principal Principal, classSubjectID uint) (*models.ClassSubject, error)
}

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest, principal Principal) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, query ListQuery) ([]*models.User, int64, error)
	Update(ctx context.Context, id uint, req *UpdateUserRequest, principal Principal) (*models.User, error)
	Delete(ctx context.Context, id uint, principal Principal) error
}

type TeacherService interface {
	Create(ctx context.Context, req *CreateTeacherRequest, principal Principal) (*models.Teacher, error)
	GetByID(ctx context.Context, id string) (*models.Teacher, error)
	List(ctx context.Context, query ListQuery) ([]*models.Teacher, int64, error)
	Update(ctx context.Context, id string, req *UpdateTeacherRequest, principal Principal) (*models.Teacher, error)
	Delete(ctx context.Context, id string, principal Principal) error
}

type StudentService interface {
	Create(ctx context.Context, req *CreateStudentRequest, principal Principal) (*models.Student, error)
	GetByID(ctx context.Context, id string, principal Principal) (*models.Student, error)
	List(ctx context.Context, query StudentListQuery, principal Principal) ([]*models.Student, int64, error)
	Update(ctx context.Context, id string, req *UpdateStudentRequest, principal Principal) (*models.Student, error)
	Delete(ctx context.Context, id string, principal Principal) error
}

type ClassService interface {
	Create(ctx context.Context, req *CreateClassRequest, principal Principal) (*models.Class, error)
	GetByID(ctx context.Context, id uint, principal Principal) (*models.Class, error)
	List(ctx context.Context, query ListQuery, principal Principal) ([]*models.Class, int64, error)
	Update(ctx context.Context, id uint, req *UpdateClassRequest, principal Principal) (*models.Class, error)
	Delete(ctx context.Context, id uint, principal Principal) error
}

type SubjectService interface {
	Create(ctx context.Context, req *CreateSubjectRequest, principal Principal) (*models.Subject, error)
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	List(ctx context.Context, query ListQuery) ([]*models.Subject, int64, error)
	Update(ctx context.Context, id uint, req *UpdateSubjectRequest, principal Principal) (*models.Subject, error)
	Delete(ctx context.Context, id uint, principal Principal) error
}

type ClassSubjectService interface {
	Create(ctx context.Context, req *CreateClassSubjectRequest, principal Principal) (*models.ClassSubject, error)
	GetByID(ctx context.Context, id uint, principal Principal) (*models.ClassSubject, error)
	List(ctx context.Context, query ClassSubjectListQuery, principal Principal) ([]*models.ClassSubject, int64, error)
	Update(ctx context.Context, id uint, req *UpdateClassSubjectRequest, principal Principal) (*models.ClassSubject, error)
	Delete(ctx context.Context, id uint, principal Principal) error
}

type AttendanceService interface {
	BulkRecord(ctx context.Context, req *BulkAttendanceRequest, principal Principal) ([]*models.Attendance, error)
	ListByClassAndDate(ctx context.Context, classID uint, date string, principal Principal) ([]*models.Attendance, error)
	GetDaySheet(ctx context.Context, classID uint, date string, principal Principal) (*AttendanceDaySheet, error)
	ListByStudent(ctx context.Context, studentID string, principal Principal) ([]*models.Attendance, error)
	ListMine(ctx context.Context, principal Principal) ([]*models.Attendance, error)
}

type ScoreService interface {
	Upsert(ctx context.Context, req *ScoreUpsertRequest, principal Principal) (*models.Score, error)
	ListByClassSubject(ctx context.Context, classSubjectID uint, query ScoreListQuery, principal Principal) ([]*models.Score, error)
	StudentSummary(ctx context.Context, studentID string, principal Principal) (*StudentScoreSummary, error)
	MySummary(ctx context.Context, principal Principal) (*StudentScoreSummary, error)
}

type MaterialService interface {
	Create(ctx context.Context, req *CreateMaterialRequest, principal Principal) (*models.Material, error)
	GetByID(ctx context.Context, id uint, principal Principal) (*models.Material, error)
	List(ctx context.Context, query MaterialListQuery, principal Principal) ([]*models.Material, int64, error)
	ListMine(ctx context.Context, principal Principal) ([]*models.Material, error)
	Update(ctx context.Context, id uint, req *UpdateMaterialRequest, principal Principal) (*models.Material, error)
	Delete(ctx context.Context, id uint, principal Principal) error
}

type ReportService interface {
	ExportClassScores(ctx context.Context, classSubjectID uint, principal Principal) ([]byte, string, error)
	ExportAttendanceMonth(ctx context.Context, classID uint, year int, month int, principal Principal) ([]byte, string, error)
}

type DashboardService interface {
	Overview(ctx context.Context, principal Principal) (*models.DashboardOverview, error)
}

// ServiceManager wires all portal services over one repository.
type ServiceManager interface {
	Auth() AuthService
	Authorization() AuthorizationService
	User() UserService
	Teacher() TeacherService
	Student() StudentService
	Class() ClassService
	Subject() SubjectService
	ClassSubject() ClassSubjectService
	Attendance() AttendanceService
	Score() ScoreService
	Material() MaterialService
	Report() ReportService
	Dashboard() DashboardService

	HealthCheck(ctx context.Context) error
	Close() error
}
