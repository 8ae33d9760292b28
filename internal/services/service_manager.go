package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/events"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

// ServiceManagerConfig holds cross-service settings.
type ServiceManagerConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// serviceManager implements ServiceManager
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher

	authService          AuthService
	authorizationService AuthorizationService
	userService          UserService
	teacherService       TeacherService
	studentService       StudentService
	classService         ClassService
	subjectService       SubjectService
	classSubjectService  ClassSubjectService
	attendanceService    AttendanceService
	scoreService         ScoreService
	materialService      MaterialService
	reportService        ReportService
	dashboardService     DashboardService
}

// NewServiceManager wires every portal service over one repository and
// one event publisher.
func NewServiceManager(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	sm := &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}

	authz := NewAuthorizationService(repo, logger)
	sm.authorizationService = authz
	sm.authService = NewAuthService(repo, logger, validator, config.JWTSecret, config.TokenTTL)
	sm.userService = NewUserService(repo, logger, validator)
	sm.teacherService = NewTeacherService(repo, logger, validator)
	sm.studentService = NewStudentService(repo, authz, logger, validator)
	sm.classService = NewClassService(repo, authz, logger, validator)
	sm.subjectService = NewSubjectService(repo, logger, validator)
	sm.classSubjectService = NewClassSubjectService(repo, authz, publisher, logger, validator)
	sm.attendanceService = NewAttendanceService(repo, authz, publisher, logger, validator)
	sm.scoreService = NewScoreService(repo, authz, publisher, logger, validator)
	sm.materialService = NewMaterialService(repo, authz, logger, validator)
	sm.reportService = NewReportService(repo, authz, logger)
	sm.dashboardService = NewDashboardService(repo, authz, logger)

	logger.Info("Service manager initialized")
	return sm
}

func (sm *serviceManager) Auth() AuthService                   { return sm.authService }
func (sm *serviceManager) Authorization() AuthorizationService { return sm.authorizationService }
func (sm *serviceManager) User() UserService                   { return sm.userService }
func (sm *serviceManager) Teacher() TeacherService             { return sm.teacherService }
func (sm *serviceManager) Student() StudentService             { return sm.studentService }
func (sm *serviceManager) Class() ClassService                 { return sm.classService }
func (sm *serviceManager) Subject() SubjectService             { return sm.subjectService }
func (sm *serviceManager) ClassSubject() ClassSubjectService   { return sm.classSubjectService }
func (sm *serviceManager) Attendance() AttendanceService       { return sm.attendanceService }
func (sm *serviceManager) Score() ScoreService                 { return sm.scoreService }
func (sm *serviceManager) Material() MaterialService           { return sm.materialService }
func (sm *serviceManager) Report() ReportService               { return sm.reportService }
func (sm *serviceManager) Dashboard() DashboardService         { return sm.dashboardService }

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Close() error {
	if sm.publisher != nil {
		return sm.publisher.Close()
	}
	return nil
}
