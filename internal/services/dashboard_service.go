package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	authz  AuthorizationService
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, authz AuthorizationService, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		authz:  authz,
		logger: logger,
	}
}

// Overview aggregates entity counts and today's attendance breakdown.
// Admins see whole-school numbers; teachers see their scoped slice.
func (s *dashboardService) Overview(ctx context.Context, principal Principal) (*models.DashboardOverview, error) {
	scope, err := s.authz.ScopeFor(ctx, principal)
	if err != nil {
		return nil, err
	}

	var counts *repositories.SchoolCounts
	var scopedClassIDs []uint
	if scope.Unrestricted {
		counts, err = s.repo.Dashboard().Counts(ctx)
	} else {
		scopedClassIDs = scope.ClassIDList()
		counts, err = s.repo.Dashboard().CountsScoped(ctx, scopedClassIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load counts: %w", err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	attendance, err := s.repo.Attendance().CountByStatusOnDate(ctx, today, scopedClassIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance breakdown: %w", err)
	}

	overview := &models.DashboardOverview{
		TotalStudents:   counts.Students,
		TotalTeachers:   counts.Teachers,
		TotalClasses:    counts.Classes,
		TotalSubjects:   counts.Subjects,
		AttendanceToday: attendance,
		AttendanceDate:  today.Format("2006-01-02"),
		GeneratedAt:     time.Now().UTC(),
	}
	if !scope.Unrestricted {
		scoped := int64(len(scopedClassIDs))
		overview.ScopedClassCount = &scoped
	}

	return overview, nil
}
