package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

type teacherService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTeacherService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) TeacherService {
	return &teacherService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create inserts the profile and, when an account block is present, the
// linked login user in the same transaction.
func (s *teacherService) Create(ctx context.Context, req *CreateTeacherRequest, principal Principal) (*models.Teacher, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "teacher", "create", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}
	if req.Account != nil && req.Account.Role != models.RoleTeacher {
		return nil, validator.ValidationErrors{{
			Field:   "account.role",
			Message: "linked account must have the TEACHER role",
			Value:   req.Account.Role,
			Rule:    "business_logic",
		}}
	}

	exists, err := s.repo.Teacher().ExistsByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check teacher id: %w", err)
	}
	if exists {
		return nil, ErrTeacherIDTaken
	}

	teacher := &models.Teacher{
		ID:          req.ID,
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		MainSubject: req.MainSubject,
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
			teacher.UserID = &user.ID
		}
		if err := tx.Teacher().Create(ctx, teacher); err != nil {
			return fmt.Errorf("failed to create teacher: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Teacher created", "teacher_id", teacher.ID, "created_by", principal.UserID)
	return teacher, nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.repo.Teacher().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return teacher, nil
}

func (s *teacherService) List(ctx context.Context, query ListQuery) ([]*models.Teacher, int64, error) {
	teachers, total, err := s.repo.Teacher().List(ctx, repositories.TeacherFilters{
		Search:    query.Search,
		Limit:     query.PageSize,
		Offset:    query.Offset(),
		SortBy:    query.SortBy,
		SortOrder: sortOrder(query.SortDesc),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, total, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *UpdateTeacherRequest, principal Principal) (*models.Teacher, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "teacher", "update", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	teacher, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		teacher.FullName = *req.FullName
	}
	if req.DateOfBirth != nil {
		teacher.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		teacher.Gender = *req.Gender
	}
	if req.Address != nil {
		teacher.Address = *req.Address
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.MainSubject != nil {
		teacher.MainSubject = *req.MainSubject
	}

	if err := s.repo.Teacher().Update(ctx, teacher); err != nil {
		return nil, fmt.Errorf("failed to update teacher: %w", err)
	}

	s.logger.Info("Teacher updated", "teacher_id", teacher.ID, "updated_by", principal.UserID)
	return teacher, nil
}

// Delete removes the profile. Assignments referencing the teacher keep
// their rows; history stays queryable.
func (s *teacherService) Delete(ctx context.Context, id string, principal Principal) error {
	if !principal.IsAdmin() {
		return NewPermissionError(principal.UserID, "teacher", "delete", "admin role required")
	}

	if err := s.repo.Teacher().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	s.logger.Info("Teacher deleted", "teacher_id", id, "deleted_by", principal.UserID)
	return nil
}
