package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

type materialService struct {
	repo      repositories.Repository
	authz     AuthorizationService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewMaterialService(repo repositories.Repository, authz AuthorizationService, logger *slog.Logger, validator *validator.Validator) MaterialService {
	return &materialService{
		repo:      repo,
		authz:     authz,
		logger:    logger,
		validator: validator,
	}
}

func (s *materialService) Create(ctx context.Context, req *CreateMaterialRequest, principal Principal) (*models.Material, error) {
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	if _, err := s.authz.RequireAssignmentAccess(ctx, principal, req.ClassSubjectID); err != nil {
		return nil, err
	}

	material := &models.Material{
		ClassSubjectID: req.ClassSubjectID,
		Title:          req.Title,
		Description:    req.Description,
		URL:            req.URL,
	}

	if err := s.repo.Material().Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.Info("Material created", "material_id", material.ID, "class_subject_id", material.ClassSubjectID, "created_by", principal.UserID)
	return material, nil
}

func (s *materialService) GetByID(ctx context.Context, id uint, principal Principal) (*models.Material, error) {
	material, err := s.repo.Material().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	if err := s.requireMaterialAccess(ctx, principal, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *materialService) List(ctx context.Context, query MaterialListQuery, principal Principal) ([]*models.Material, int64, error) {
	if query.ClassSubjectID != nil {
		if _, err := s.authz.RequireAssignmentAccess(ctx, principal, *query.ClassSubjectID); err != nil {
			return nil, 0, err
		}
	} else if !principal.IsAdmin() {
		return nil, 0, NewPermissionError(principal.UserID, "material", "list", "teachers must filter by class-subject")
	}

	materials, total, err := s.repo.Material().List(ctx, repositories.MaterialFilters{
		ClassSubjectID: query.ClassSubjectID,
		Search:         query.Search,
		Limit:          query.PageSize,
		Offset:         query.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, total, nil
}

// ListMine returns the materials published under the assignments of the
// calling student's current class.
func (s *materialService) ListMine(ctx context.Context, principal Principal) ([]*models.Material, error) {
	student, err := s.repo.Student().GetByUserID(ctx, principal.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewPermissionError(principal.UserID, "material", "read", "no student profile linked to this account")
		}
		return nil, fmt.Errorf("failed to resolve student profile: %w", err)
	}
	if student.CurrentClassID == nil {
		return []*models.Material{}, nil
	}

	assignments, _, err := s.repo.ClassSubject().List(ctx, repositories.ClassSubjectFilters{ClassID: student.CurrentClassID})
	if err != nil {
		return nil, fmt.Errorf("failed to list class assignments: %w", err)
	}
	if len(assignments) == 0 {
		return []*models.Material{}, nil
	}
	ids := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}

	materials, _, err := s.repo.Material().List(ctx, repositories.MaterialFilters{ClassSubjectIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	if materials == nil {
		materials = []*models.Material{}
	}
	return materials, nil
}

func (s *materialService) Update(ctx context.Context, id uint, req *UpdateMaterialRequest, principal Principal) (*models.Material, error) {
	if errors := s.validator.Validate(req); len(errors) > 0 {
		return nil, errors
	}

	material, err := s.repo.Material().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	if err := s.requireMaterialAccess(ctx, principal, material); err != nil {
		return nil, err
	}

	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Description != nil {
		material.Description = req.Description
	}
	if req.URL != nil {
		material.URL = *req.URL
	}

	if err := s.repo.Material().Update(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	s.logger.Info("Material updated", "material_id", material.ID, "updated_by", principal.UserID)
	return material, nil
}

func (s *materialService) Delete(ctx context.Context, id uint, principal Principal) error {
	material, err := s.repo.Material().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to get material: %w", err)
	}

	if err := s.requireMaterialAccess(ctx, principal, material); err != nil {
		return err
	}

	if err := s.repo.Material().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}

	s.logger.Info("Material deleted", "material_id", id, "deleted_by", principal.UserID)
	return nil
}

// requireMaterialAccess gates via the owning assignment. A material whose
// assignment was deleted stays reachable for admins only.
func (s *materialService) requireMaterialAccess(ctx context.Context, principal Principal, material *models.Material) error {
	if principal.IsAdmin() {
		return nil
	}
	_, err := s.authz.RequireAssignmentAccess(ctx, principal, material.ClassSubjectID)
	return err
}
