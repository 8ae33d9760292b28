package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest, principal Principal) (*models.User, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "user", "create", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	taken, err := s.repo.User().ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	user, err := buildUser(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "role", user.Role, "created_by", principal.UserID)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, query ListQuery) ([]*models.User, int64, error) {
	users, total, err := s.repo.User().List(ctx, repositories.UserFilters{
		Search:    query.Search,
		Limit:     query.PageSize,
		Offset:    query.Offset(),
		SortBy:    query.SortBy,
		SortOrder: sortOrder(query.SortDesc),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) Update(ctx context.Context, id uint, req *UpdateUserRequest, principal Principal) (*models.User, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "user", "update", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User updated", "user_id", user.ID, "updated_by", principal.UserID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint, principal Principal) error {
	if !principal.IsAdmin() {
		return NewPermissionError(principal.UserID, "user", "delete", "admin role required")
	}
	if id == principal.UserID {
		return NewPermissionError(principal.UserID, "user", "delete", "cannot delete own account")
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted", "user_id", id, "deleted_by", principal.UserID)
	return nil
}

// buildUser hashes the password and assembles the account row. Shared
// with the teacher and student services which create linked accounts.
func buildUser(req *CreateUserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		Status:       models.UserActive,
	}, nil
}

func sortOrder(desc bool) string {
	if desc {
		return "desc"
	}
	return "asc"
}
