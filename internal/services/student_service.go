package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	authz     AuthorizationService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, authz AuthorizationService, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		authz:     authz,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest, principal Principal) (*models.Student, error) {
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}
	if req.Account != nil && req.Account.Role != models.RoleStudent {
		return nil, validator.ValidationErrors{{
			Field:   "account.role",
			Message: "linked account must have the STUDENT role",
			Value:   req.Account.Role,
			Rule:    "business_logic",
		}}
	}

	// A teacher may only enroll a student into a class within their scope.
	if req.CurrentClassID != nil {
		if err := s.requireClassInScope(ctx, principal, *req.CurrentClassID, "create"); err != nil {
			return nil, err
		}
		if err := s.requireClassExists(ctx, *req.CurrentClassID); err != nil {
			return nil, err
		}
	} else if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "student", "create", "teachers must enroll the student into one of their classes")
	}

	exists, err := s.repo.Student().ExistsByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student id: %w", err)
	}
	if exists {
		return nil, ErrStudentIDTaken
	}

	student := &models.Student{
		ID:             req.ID,
		FullName:       req.FullName,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		Address:        req.Address,
		CurrentClassID: req.CurrentClassID,
		GuardianName:   req.GuardianName,
		GuardianPhone:  req.GuardianPhone,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if req.Account != nil {
			user, err := buildUser(req.Account)
			if err != nil {
				return err
			}
			if err := tx.User().Create(ctx, user); err != nil {
				if repositories.IsDuplicateError(err) {
					return ErrUsernameTaken
				}
				return fmt.Errorf("failed to create linked account: %w", err)
			}
			student.UserID = &user.ID
		}
		if err := tx.Student().Create(ctx, student); err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student created", "student_id", student.ID, "created_by", principal.UserID)
	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id string, principal Principal) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	if err := s.requireStudentInScope(ctx, principal, student, "read"); err != nil {
		return nil, err
	}
	return student, nil
}

// List narrows results to the caller's scope. An explicit class filter
// still has to fall inside it.
func (s *studentService) List(ctx context.Context, query StudentListQuery, principal Principal) ([]*models.Student, int64, error) {
	scope, err := s.authz.ScopeFor(ctx, principal)
	if err != nil {
		return nil, 0, err
	}

	filters := repositories.StudentFilters{
		ClassID:   query.ClassID,
		Search:    query.Search,
		Limit:     query.PageSize,
		Offset:    query.Offset(),
		SortBy:    query.SortBy,
		SortOrder: sortOrder(query.SortDesc),
	}

	if !scope.Unrestricted {
		if query.ClassID != nil {
			if !scope.Allows(*query.ClassID) {
				return nil, 0, NewPermissionError(principal.UserID, "student", "list", fmt.Sprintf("class %d is outside the caller's scope", *query.ClassID))
			}
		} else {
			filters.ClassIDs = scope.ClassIDList()
			if len(filters.ClassIDs) == 0 {
				return []*models.Student{}, 0, nil
			}
		}
	}

	students, total, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return students, total, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *UpdateStudentRequest, principal Principal) (*models.Student, error) {
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	if err := s.requireStudentInScope(ctx, principal, student, "update"); err != nil {
		return nil, err
	}

	// Moving a student requires scope over the target class too.
	if req.CurrentClassID != nil {
		if err := s.requireClassInScope(ctx, principal, *req.CurrentClassID, "update"); err != nil {
			return nil, err
		}
		if err := s.requireClassExists(ctx, *req.CurrentClassID); err != nil {
			return nil, err
		}
		student.CurrentClassID = req.CurrentClassID
	} else if req.ClearClass {
		student.CurrentClassID = nil
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.GuardianName != nil {
		student.GuardianName = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		student.GuardianPhone = *req.GuardianPhone
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.logger.Info("Student updated", "student_id", student.ID, "updated_by", principal.UserID)
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string, principal Principal) error {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to get student: %w", err)
	}

	if err := s.requireStudentInScope(ctx, principal, student, "delete"); err != nil {
		return err
	}

	if err := s.repo.Student().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info("Student deleted", "student_id", id, "deleted_by", principal.UserID)
	return nil
}

// requireStudentInScope gates by the student's current class. A student
// with no class is reachable only by admins.
func (s *studentService) requireStudentInScope(ctx context.Context, principal Principal, student *models.Student, action string) error {
	if principal.IsAdmin() {
		return nil
	}
	if student.CurrentClassID == nil {
		return NewPermissionError(principal.UserID, "student", action, "student has no current class")
	}
	return s.requireClassInScope(ctx, principal, *student.CurrentClassID, action)
}

func (s *studentService) requireClassInScope(ctx context.Context, principal Principal, classID uint, action string) error {
	if principal.IsAdmin() {
		return nil
	}
	if err := s.authz.RequireClassAccess(ctx, principal, classID); err != nil {
		return err
	}
	return nil
}

func (s *studentService) requireClassExists(ctx context.Context, classID uint) error {
	exists, err := s.repo.Class().ExistsByID(ctx, classID)
	if err != nil {
		return fmt.Errorf("failed to check class: %w", err)
	}
	if !exists {
		return ErrClassNotFound
	}
	return nil
}
