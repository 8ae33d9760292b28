package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type authorizationService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAuthorizationService(repo repositories.Repository, logger *slog.Logger) AuthorizationService {
	return &authorizationService{
		repo:   repo,
		logger: logger,
	}
}

// ScopeFor computes the caller's class scope from the assignment graph.
// Admins are unrestricted. Teachers get the distinct class ids of their
// assignments, active or not: an inactive assignment still grants read
// access to the class it references. A teacher account with no profile
// row resolves to an empty scope, not an error.
func (s *authorizationService) ScopeFor(ctx context.Context, principal Principal) (AccessScope, error) {
	if principal.IsAdmin() {
		return AccessScope{Unrestricted: true}, nil
	}

	if !principal.IsTeacher() {
		return AccessScope{ClassIDs: map[uint]struct{}{}}, nil
	}

	teacher, err := s.repo.Teacher().GetByUserID(ctx, principal.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.logger.Warn("Teacher account has no profile, denying all access", "user_id", principal.UserID)
			return AccessScope{ClassIDs: map[uint]struct{}{}}, nil
		}
		return AccessScope{}, fmt.Errorf("failed to resolve teacher profile: %w", err)
	}

	classIDs, err := s.repo.ClassSubject().DistinctClassIDs(ctx, teacher.ID)
	if err != nil {
		return AccessScope{}, fmt.Errorf("failed to project teacher class scope: %w", err)
	}

	scope := AccessScope{ClassIDs: make(map[uint]struct{}, len(classIDs))}
	for _, id := range classIDs {
		scope.ClassIDs[id] = struct{}{}
	}
	return scope, nil
}

// RequireClassAccess returns a PermissionError when the principal's scope
// does not cover the class.
func (s *authorizationService) RequireClassAccess(ctx context.Context, principal Principal, classID uint) error {
	scope, err := s.ScopeFor(ctx, principal)
	if err != nil {
		return err
	}
	if !scope.Allows(classID) {
		return NewPermissionError(principal.UserID, "class", "access", fmt.Sprintf("class %d is outside the caller's scope", classID))
	}
	return nil
}

// RequireAssignmentAccess loads the assignment and checks the principal
// may act on its class. The loaded assignment is returned so callers do
// not fetch it twice.
func (s *authorizationService) RequireAssignmentAccess(ctx context.Context, principal Principal, classSubjectID uint) (*models.ClassSubject, error) {
	assignment, err := s.repo.ClassSubject().GetByID(ctx, classSubjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get class-subject assignment: %w", err)
	}

	if err := s.RequireClassAccess(ctx, principal, assignment.ClassID); err != nil {
		return nil, err
	}
	return assignment, nil
}
