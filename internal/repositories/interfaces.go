package repositories

import (
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role      *models.UserRole   `json:"role"`
	Status    *models.UserStatus `json:"status"`
	Search    string             `json:"search"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`
	SortOrder string             `json:"sort_order"`
}

type TeacherFilters struct {
	MainSubject *string `json:"main_subject"`
	Search      string  `json:"search"`
	Limit       int     `json:"limit"`
	Offset      int     `json:"offset"`
	SortBy      string  `json:"sort_by"`
	SortOrder   string  `json:"sort_order"`
}

type StudentFilters struct {
	ClassID *uint `json:"class_id"`
	// ClassIDs restricts results to a teacher's authorized class set.
	ClassIDs  []uint `json:"class_ids"`
	Search    string `json:"search"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type ClassFilters struct {
	Grade     *int   `json:"grade"`
	YearStart *int   `json:"year_start"`
	IDs       []uint `json:"ids"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type SubjectFilters struct {
	Grade      *int   `json:"grade"`
	IsOptional *bool  `json:"is_optional"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
}

type ClassSubjectFilters struct {
	ClassID *uint `json:"class_id"`
	// ClassIDs restricts results to a teacher's authorized class set.
	ClassIDs  []uint                   `json:"class_ids"`
	SubjectID *uint                    `json:"subject_id"`
	TeacherID *string                  `json:"teacher_id"`
	Status    *models.AssignmentStatus `json:"status"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
	SortBy    string                   `json:"sort_by"`
	SortOrder string                   `json:"sort_order"`
}

type AttendanceFilters struct {
	ClassID   *uint                    `json:"class_id"`
	StudentID *string                  `json:"student_id"`
	Status    *models.AttendanceStatus `json:"status"`
	DateFrom  *time.Time               `json:"date_from"`
	DateTo    *time.Time               `json:"date_to"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}

type ScoreFilters struct {
	ClassSubjectID *uint             `json:"class_subject_id"`
	StudentID      *string           `json:"student_id"`
	Type           *models.ScoreType `json:"type"`
	Limit          int               `json:"limit"`
	Offset         int               `json:"offset"`
}

type MaterialFilters struct {
	ClassSubjectID  *uint  `json:"class_subject_id"`
	ClassSubjectIDs []uint `json:"class_subject_ids"`
	Search          string `json:"search"`
	Limit           int    `json:"limit"`
	Offset          int    `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type SchoolCounts struct {
	Students int64 `json:"students"`
	Teachers int64 `json:"teachers"`
	Classes  int64 `json:"classes"`
	Subjects int64 `json:"subjects"`
}
