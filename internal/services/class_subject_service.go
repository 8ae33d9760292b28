package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-portal-service/internal/events"
	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

type classSubjectService struct {
	repo      repositories.Repository
	authz     AuthorizationService
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassSubjectService(repo repositories.Repository, authz AuthorizationService, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) ClassSubjectService {
	return &classSubjectService{
		repo:      repo,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *classSubjectService) Create(ctx context.Context, req *CreateClassSubjectRequest, principal Principal) (*models.ClassSubject, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "class-subject", "create", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	if err := s.checkReferences(ctx, req.ClassID, req.SubjectID, req.TeacherID); err != nil {
		return nil, err
	}

	conflict, err := s.repo.ClassSubject().ExistsByComposite(ctx, req.ClassID, req.SubjectID, req.TeacherID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment uniqueness: %w", err)
	}
	if conflict {
		return nil, ErrAssignmentConflict
	}

	assignment := &models.ClassSubject{
		ClassID:       req.ClassID,
		SubjectID:     req.SubjectID,
		TeacherID:     req.TeacherID,
		WeeklyLessons: req.WeeklyLessons,
		Room:          req.Room,
		Status:        models.AssignmentActive,
	}
	if assignment.WeeklyLessons == 0 {
		assignment.WeeklyLessons = 1
	}
	if req.Status != nil {
		assignment.Status = *req.Status
	}

	if err := s.repo.ClassSubject().Create(ctx, assignment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAssignmentConflict
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("Assignment created", "class_subject_id", assignment.ID, "class_id", assignment.ClassID, "teacher_id", assignment.TeacherID, "created_by", principal.UserID)
	return assignment, nil
}

func (s *classSubjectService) GetByID(ctx context.Context, id uint, principal Principal) (*models.ClassSubject, error) {
	return s.authz.RequireAssignmentAccess(ctx, principal, id)
}

func (s *classSubjectService) List(ctx context.Context, query ClassSubjectListQuery, principal Principal) ([]*models.ClassSubject, int64, error) {
	scope, err := s.authz.ScopeFor(ctx, principal)
	if err != nil {
		return nil, 0, err
	}

	if !scope.Unrestricted {
		if query.ClassID != nil {
			if !scope.Allows(*query.ClassID) {
				return nil, 0, NewPermissionError(principal.UserID, "class-subject", "list", fmt.Sprintf("class %d is outside the caller's scope", *query.ClassID))
			}
		} else if len(scope.ClassIDs) == 0 {
			return []*models.ClassSubject{}, 0, nil
		}
	}

	filters := repositories.ClassSubjectFilters{
		ClassID:   query.ClassID,
		SubjectID: query.SubjectID,
		TeacherID: query.TeacherID,
		Status:    query.Status,
		Limit:     query.PageSize,
		Offset:    query.Offset(),
		SortBy:    query.SortBy,
		SortOrder: sortOrder(query.SortDesc),
	}
	// A restricted scope without a class filter goes into the WHERE
	// clause, so pagination and total count only scoped rows.
	if !scope.Unrestricted && query.ClassID == nil {
		filters.ClassIDs = scope.ClassIDList()
	}

	assignments, total, err := s.repo.ClassSubject().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, total, nil
}

func (s *classSubjectService) Update(ctx context.Context, id uint, req *UpdateClassSubjectRequest, principal Principal) (*models.ClassSubject, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "class-subject", "update", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	assignment, err := s.repo.ClassSubject().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	classID, subjectID, teacherID := assignment.ClassID, assignment.SubjectID, assignment.TeacherID
	if req.ClassID != nil {
		classID = *req.ClassID
	}
	if req.SubjectID != nil {
		subjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		teacherID = *req.TeacherID
	}

	keyChanged := classID != assignment.ClassID || subjectID != assignment.SubjectID || teacherID != assignment.TeacherID
	if keyChanged {
		if err := s.checkReferences(ctx, classID, subjectID, teacherID); err != nil {
			return nil, err
		}
		conflict, err := s.repo.ClassSubject().ExistsByComposite(ctx, classID, subjectID, teacherID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check assignment uniqueness: %w", err)
		}
		if conflict {
			return nil, ErrAssignmentConflict
		}
		assignment.ClassID = classID
		assignment.SubjectID = subjectID
		assignment.TeacherID = teacherID
	}

	if req.WeeklyLessons != nil {
		assignment.WeeklyLessons = *req.WeeklyLessons
	}
	if req.Room != nil {
		assignment.Room = *req.Room
	}
	if req.Status != nil {
		assignment.Status = *req.Status
	}

	if err := s.repo.ClassSubject().Update(ctx, assignment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAssignmentConflict
		}
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	s.logger.Info("Assignment updated", "class_subject_id", assignment.ID, "updated_by", principal.UserID)
	return assignment, nil
}

// Delete removes the assignment row only. Scores, attendance and
// materials recorded under it are kept for history.
func (s *classSubjectService) Delete(ctx context.Context, id uint, principal Principal) error {
	if !principal.IsAdmin() {
		return NewPermissionError(principal.UserID, "class-subject", "delete", "admin role required")
	}

	assignment, err := s.repo.ClassSubject().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := s.repo.ClassSubject().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("Assignment deleted", "class_subject_id", id, "deleted_by", principal.UserID)

	event := events.NewEvent(events.TypeAssignmentDeleted, events.AssignmentDeletedData{
		AssignmentID: assignment.ID,
		ClassID:      assignment.ClassID,
		SubjectID:    assignment.SubjectID,
		TeacherID:    assignment.TeacherID,
		DeletedBy:    principal.UserID,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish assignment deleted event", "error", err, "class_subject_id", id)
	}

	return nil
}

func (s *classSubjectService) checkReferences(ctx context.Context, classID, subjectID uint, teacherID string) error {
	classExists, err := s.repo.Class().ExistsByID(ctx, classID)
	if err != nil {
		return fmt.Errorf("failed to check class: %w", err)
	}
	if !classExists {
		return ErrClassNotFound
	}

	if _, err := s.repo.Subject().GetByID(ctx, subjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSubjectNotFound
		}
		return fmt.Errorf("failed to check subject: %w", err)
	}

	teacherExists, err := s.repo.Teacher().ExistsByID(ctx, teacherID)
	if err != nil {
		return fmt.Errorf("failed to check teacher: %w", err)
	}
	if !teacherExists {
		return ErrTeacherNotFound
	}

	return nil
}
