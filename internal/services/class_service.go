package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

type classService struct {
	repo      repositories.Repository
	authz     AuthorizationService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(repo repositories.Repository, authz AuthorizationService, logger *slog.Logger, validator *validator.Validator) ClassService {
	return &classService{
		repo:      repo,
		authz:     authz,
		logger:    logger,
		validator: validator,
	}
}

func (s *classService) Create(ctx context.Context, req *CreateClassRequest, principal Principal) (*models.Class, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "class", "create", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}
	if errors := s.validator.GetBusinessValidator().ValidateClassYears(req.YearStart, req.YearEnd); len(errors) > 0 {
		return nil, errors
	}

	if req.HomeroomTeacherID != nil {
		exists, err := s.repo.Teacher().ExistsByID(ctx, *req.HomeroomTeacherID)
		if err != nil {
			return nil, fmt.Errorf("failed to check homeroom teacher: %w", err)
		}
		if !exists {
			return nil, ErrTeacherNotFound
		}
	}

	class := &models.Class{
		Name:              req.Name,
		Grade:             req.Grade,
		YearStart:         req.YearStart,
		YearEnd:           req.YearEnd,
		HomeroomTeacherID: req.HomeroomTeacherID,
		Capacity:          req.Capacity,
	}
	if class.Capacity == 0 {
		class.Capacity = 40
	}

	if err := s.repo.Class().Create(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	s.logger.Info("Class created", "class_id", class.ID, "name", class.Name, "created_by", principal.UserID)
	return class, nil
}

func (s *classService) GetByID(ctx context.Context, id uint, principal Principal) (*models.Class, error) {
	if !principal.IsAdmin() {
		if err := s.authz.RequireClassAccess(ctx, principal, id); err != nil {
			return nil, err
		}
	}

	class, err := s.repo.Class().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}

	if err := s.attachStudentCount(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// List narrows to the caller's scope and attaches derived enrollment
// counts in one batched query.
func (s *classService) List(ctx context.Context, query ListQuery, principal Principal) ([]*models.Class, int64, error) {
	scope, err := s.authz.ScopeFor(ctx, principal)
	if err != nil {
		return nil, 0, err
	}

	filters := repositories.ClassFilters{
		Limit:     query.PageSize,
		Offset:    query.Offset(),
		SortBy:    query.SortBy,
		SortOrder: sortOrder(query.SortDesc),
	}
	if !scope.Unrestricted {
		filters.IDs = scope.ClassIDList()
		if len(filters.IDs) == 0 {
			return []*models.Class{}, 0, nil
		}
	}

	classes, total, err := s.repo.Class().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list classes: %w", err)
	}

	if len(classes) > 0 {
		ids := make([]uint, len(classes))
		for i, c := range classes {
			ids[i] = c.ID
		}
		counts, err := s.repo.Student().CountByClassIDs(ctx, ids)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count students: %w", err)
		}
		for _, c := range classes {
			c.TotalStudents = counts[c.ID]
		}
	}

	return classes, total, nil
}

func (s *classService) Update(ctx context.Context, id uint, req *UpdateClassRequest, principal Principal) (*models.Class, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "class", "update", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	class, err := s.repo.Class().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Grade != nil {
		class.Grade = *req.Grade
	}
	if req.YearStart != nil {
		class.YearStart = *req.YearStart
	}
	if req.YearEnd != nil {
		class.YearEnd = *req.YearEnd
	}
	if errors := s.validator.GetBusinessValidator().ValidateClassYears(class.YearStart, class.YearEnd); len(errors) > 0 {
		return nil, errors
	}
	if req.HomeroomTeacherID != nil {
		exists, err := s.repo.Teacher().ExistsByID(ctx, *req.HomeroomTeacherID)
		if err != nil {
			return nil, fmt.Errorf("failed to check homeroom teacher: %w", err)
		}
		if !exists {
			return nil, ErrTeacherNotFound
		}
		class.HomeroomTeacherID = req.HomeroomTeacherID
	}
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}

	if err := s.repo.Class().Update(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}

	s.logger.Info("Class updated", "class_id", class.ID, "updated_by", principal.UserID)

	if err := s.attachStudentCount(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *classService) Delete(ctx context.Context, id uint, principal Principal) error {
	if !principal.IsAdmin() {
		return NewPermissionError(principal.UserID, "class", "delete", "admin role required")
	}

	count, err := s.repo.Student().CountByClass(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("class has %d enrolled students: %w", count, ErrConflict)
	}

	if err := s.repo.Class().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrClassNotFound
		}
		return fmt.Errorf("failed to delete class: %w", err)
	}

	s.logger.Info("Class deleted", "class_id", id, "deleted_by", principal.UserID)
	return nil
}

func (s *classService) attachStudentCount(ctx context.Context, class *models.Class) error {
	count, err := s.repo.Student().CountByClass(ctx, class.ID)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	class.TotalStudents = count
	return nil
}
