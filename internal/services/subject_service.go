package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

type subjectService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSubjectService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) SubjectService {
	return &subjectService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *subjectService) Create(ctx context.Context, req *CreateSubjectRequest, principal Principal) (*models.Subject, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "subject", "create", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	taken, err := s.repo.Subject().ExistsByCode(ctx, req.Code, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check subject code: %w", err)
	}
	if taken {
		return nil, ErrSubjectCodeTaken
	}

	subject := &models.Subject{
		Name:       req.Name,
		Code:       req.Code,
		Grade:      req.Grade,
		IsOptional: req.IsOptional,
	}

	if err := s.repo.Subject().Create(ctx, subject); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrSubjectCodeTaken
		}
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	s.logger.Info("Subject created", "subject_id", subject.ID, "code", subject.Code, "created_by", principal.UserID)
	return subject, nil
}

func (s *subjectService) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	subject, err := s.repo.Subject().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

func (s *subjectService) List(ctx context.Context, query ListQuery) ([]*models.Subject, int64, error) {
	subjects, total, err := s.repo.Subject().List(ctx, repositories.SubjectFilters{
		Limit:     query.PageSize,
		Offset:    query.Offset(),
		SortBy:    query.SortBy,
		SortOrder: sortOrder(query.SortDesc),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, total, nil
}

func (s *subjectService) Update(ctx context.Context, id uint, req *UpdateSubjectRequest, principal Principal) (*models.Subject, error) {
	if !principal.IsAdmin() {
		return nil, NewPermissionError(principal.UserID, "subject", "update", "admin role required")
	}
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	subject, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != subject.Code {
		taken, err := s.repo.Subject().ExistsByCode(ctx, *req.Code, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check subject code: %w", err)
		}
		if taken {
			return nil, ErrSubjectCodeTaken
		}
		subject.Code = *req.Code
	}
	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Grade != nil {
		subject.Grade = *req.Grade
	}
	if req.IsOptional != nil {
		subject.IsOptional = *req.IsOptional
	}

	if err := s.repo.Subject().Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}

	s.logger.Info("Subject updated", "subject_id", subject.ID, "updated_by", principal.UserID)
	return subject, nil
}

func (s *subjectService) Delete(ctx context.Context, id uint, principal Principal) error {
	if !principal.IsAdmin() {
		return NewPermissionError(principal.UserID, "subject", "delete", "admin role required")
	}

	if err := s.repo.Subject().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSubjectNotFound
		}
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	s.logger.Info("Subject deleted", "subject_id", id, "deleted_by", principal.UserID)
	return nil
}
