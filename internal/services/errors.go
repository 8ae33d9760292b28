package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses at the handler layer.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")

	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrAccountLocked      = fmt.Errorf("account is locked: %w", ErrUnauthorized)

	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrTeacherNotFound    = fmt.Errorf("teacher %w", ErrNotFound)
	ErrStudentNotFound    = fmt.Errorf("student %w", ErrNotFound)
	ErrClassNotFound      = fmt.Errorf("class %w", ErrNotFound)
	ErrSubjectNotFound    = fmt.Errorf("subject %w", ErrNotFound)
	ErrAssignmentNotFound = fmt.Errorf("class-subject assignment %w", ErrNotFound)
	ErrMaterialNotFound   = fmt.Errorf("material %w", ErrNotFound)
	ErrScoreNotFound      = fmt.Errorf("score %w", ErrNotFound)

	ErrUsernameTaken      = fmt.Errorf("username already exists: %w", ErrConflict)
	ErrSubjectCodeTaken   = fmt.Errorf("subject code already exists: %w", ErrConflict)
	ErrAssignmentConflict = fmt.Errorf("class-subject assignment already exists: %w", ErrConflict)
	ErrStudentIDTaken     = fmt.Errorf("student id already exists: %w", ErrConflict)
	ErrTeacherIDTaken     = fmt.Errorf("teacher id already exists: %w", ErrConflict)
)

// PermissionError carries the denied principal and target for logging.
// It unwraps to ErrForbidden so handlers map it to 403 with errors.Is.
type PermissionError struct {
	UserID   uint
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

func NewPermissionError(userID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}
