package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/events"
	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

type scoreService struct {
	repo      repositories.Repository
	authz     AuthorizationService
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewScoreService(repo repositories.Repository, authz AuthorizationService, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) ScoreService {
	return &scoreService{
		repo:      repo,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Upsert writes at most one score per (student, class-subject, type).
// An existing row is updated in place; a nil value clears the stored
// score but keeps the row and its date. The [0, 10] range is enforced
// here, before any write happens.
func (s *scoreService) Upsert(ctx context.Context, req *ScoreUpsertRequest, principal Principal) (*models.Score, error) {
	if errors := s.validator.GetBusinessValidator().ValidateScoreUpsert(req); len(errors) > 0 {
		return nil, errors
	}

	assignment, err := s.authz.RequireAssignmentAccess(ctx, principal, req.ClassSubjectID)
	if err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	date := time.Now()
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, validator.ValidationErrors{{
				Field:   "date",
				Message: "must be a date in YYYY-MM-DD format",
				Value:   *req.Date,
				Rule:    "iso_date",
			}}
		}
		date = parsed
	}

	score, err := s.repo.Score().FindByKey(ctx, req.StudentID, req.ClassSubjectID, req.Type)
	switch {
	case err == nil:
		// The row keys on (student, assignment, type) alone, so history
		// stays amendable after the student changes class.
		score.Value = req.Score
		if req.Date != nil {
			score.Date = date
		}
		if err := s.repo.Score().Update(ctx, score); err != nil {
			return nil, fmt.Errorf("failed to update score: %w", err)
		}
	case repositories.IsNotFoundError(err):
		// New rows require current enrollment in the assignment's class.
		if student.CurrentClassID == nil || *student.CurrentClassID != assignment.ClassID {
			return nil, validator.ValidationErrors{{
				Field:   "studentId",
				Message: fmt.Sprintf("student %s is not enrolled in class %d", req.StudentID, assignment.ClassID),
				Value:   req.StudentID,
				Rule:    "business_logic",
			}}
		}
		score = &models.Score{
			StudentID:      req.StudentID,
			ClassSubjectID: req.ClassSubjectID,
			Type:           req.Type,
			Value:          req.Score,
			Date:           date,
		}
		if err := s.repo.Score().Create(ctx, score); err != nil {
			return nil, fmt.Errorf("failed to create score: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up score: %w", err)
	}

	s.logger.Info("Score upserted", "student_id", req.StudentID, "class_subject_id", req.ClassSubjectID, "type", req.Type, "cleared", req.Score == nil, "recorded_by", principal.UserID)

	event := events.NewEvent(events.TypeScoreUpserted, events.ScoreUpsertedData{
		StudentID:      req.StudentID,
		ClassSubjectID: req.ClassSubjectID,
		Type:           string(req.Type),
		Cleared:        req.Score == nil,
		RecordedBy:     principal.UserID,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish score event", "error", err, "student_id", req.StudentID)
	}

	return score, nil
}

func (s *scoreService) ListByClassSubject(ctx context.Context, classSubjectID uint, query ScoreListQuery, principal Principal) ([]*models.Score, error) {
	if _, err := s.authz.RequireAssignmentAccess(ctx, principal, classSubjectID); err != nil {
		return nil, err
	}

	scores, err := s.repo.Score().ListByClassSubject(ctx, classSubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	if query.StudentID == nil && query.Type == nil {
		return scores, nil
	}
	filtered := scores[:0]
	for _, sc := range scores {
		if query.StudentID != nil && sc.StudentID != *query.StudentID {
			continue
		}
		if query.Type != nil && sc.Type != *query.Type {
			continue
		}
		filtered = append(filtered, sc)
	}
	return filtered, nil
}

// StudentSummary returns a student's scores with a simple average over
// the non-null values.
func (s *scoreService) StudentSummary(ctx context.Context, studentID string, principal Principal) (*StudentScoreSummary, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	if !principal.IsAdmin() {
		if student.CurrentClassID == nil {
			return nil, NewPermissionError(principal.UserID, "score", "read", "student has no current class")
		}
		if err := s.authz.RequireClassAccess(ctx, principal, *student.CurrentClassID); err != nil {
			return nil, err
		}
	}

	return s.buildSummary(ctx, student)
}

// MySummary returns the score summary of the student profile linked to
// the calling account.
func (s *scoreService) MySummary(ctx context.Context, principal Principal) (*StudentScoreSummary, error) {
	student, err := s.repo.Student().GetByUserID(ctx, principal.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewPermissionError(principal.UserID, "score", "read", "no student profile linked to this account")
		}
		return nil, fmt.Errorf("failed to resolve student profile: %w", err)
	}
	return s.buildSummary(ctx, student)
}

// buildSummary averages the non-null values only. A cleared score stays
// in the list but does not drag the average down.
func (s *scoreService) buildSummary(ctx context.Context, student *models.Student) (*StudentScoreSummary, error) {
	scores, _, err := s.repo.Score().ListByStudent(ctx, student.ID, repositories.ScoreFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	summary := &StudentScoreSummary{
		Student: student,
		Scores:  scores,
	}
	var sum float64
	var n int
	for _, sc := range scores {
		if sc.Value != nil {
			sum += *sc.Value
			n++
		}
	}
	if n > 0 {
		avg := sum / float64(n)
		summary.Average = &avg
	}

	return summary, nil
}
