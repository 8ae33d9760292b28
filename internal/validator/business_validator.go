package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles business rule validation for portal requests
type BusinessValidator struct {
	validate *validator.Validate
}

// ValidationError represents a single field-level business validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates a struct against its tag rules
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := bv.validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: bv.getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// ValidateBulkAttendance validates a replace-for-day attendance request.
// Any invalid status rejects the whole batch.
func (bv *BusinessValidator) ValidateBulkAttendance(req *BulkAttendanceRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	seen := make(map[string]struct{}, len(req.Items))
	for i, item := range req.Items {
		if !item.Status.Valid() {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("items[%d].status", i),
				Message: fmt.Sprintf("'%s' is not a valid attendance status", item.Status),
				Value:   item.Status,
				Rule:    "attendance_status",
			})
		}
		if _, dup := seen[item.StudentID]; dup && item.StudentID != "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("items[%d].studentId", i),
				Message: "duplicate student in batch",
				Value:   item.StudentID,
				Rule:    "business_logic",
			})
		}
		seen[item.StudentID] = struct{}{}
	}

	return errors
}

// ValidateScoreUpsert validates a score upsert request. Score may be nil,
// which clears the stored value; a non-nil score must fall in [0, 10].
func (bv *BusinessValidator) ValidateScoreUpsert(req *ScoreUpsertRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if !req.Type.Valid() {
		errors = append(errors, ValidationError{
			Field:   "type",
			Message: "must be oral, quiz, mid or final",
			Value:   req.Type,
			Rule:    "score_type",
		})
	}

	return errors
}

// ValidateClassYears checks that a class's school year range is coherent.
func (bv *BusinessValidator) ValidateClassYears(yearStart, yearEnd int) ValidationErrors {
	var errors ValidationErrors

	if yearEnd < yearStart {
		errors = append(errors, ValidationError{
			Field:   "year_end",
			Message: "must not precede year_start",
			Value:   yearEnd,
			Rule:    "business_logic",
		})
	}

	return errors
}

// registerBusinessRules registers custom portal validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Attendance status enum
	bv.validate.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})

	// Score type enum
	bv.validate.RegisterValidation("score_type", func(fl validator.FieldLevel) bool {
		return models.ScoreType(fl.Field().String()).Valid()
	})

	// Score value range (0-10 scale)
	bv.validate.RegisterValidation("score_range", func(fl validator.FieldLevel) bool {
		value := fl.Field().Float()
		return value >= 0 && value <= 10
	})

	// ISO calendar date (YYYY-MM-DD)
	bv.validate.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		raw := strings.TrimSpace(fl.Field().String())
		_, err := time.Parse("2006-01-02", raw)
		return err == nil
	})
}

// getErrorMessage returns user-friendly error messages
func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "attendance_status":
		return "must be PRESENT, ABSENT, LATE or EXCUSED"
	case "score_type":
		return "must be oral, quiz, mid or final"
	case "score_range":
		return "must be between 0 and 10"
	case "iso_date":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
