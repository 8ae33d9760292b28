package models

import "time"

// ===== PAGINATION =====

// PagedResponse is the system-wide list shape: zero-based page/pageSize in,
// {data, total} out.
type PagedResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
}

// ===== ERROR RESPONSES =====

type ValidationErrorResponse struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

type ErrorResponse struct {
	Message          string                    `json:"message"`
	Details          interface{}               `json:"details,omitempty"`
	ValidationErrors []ValidationErrorResponse `json:"validation_errors,omitempty"`
}

// BulkWriteResponse acknowledges a batch write with the number of rows
// it stored.
type BulkWriteResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ===== DASHBOARD DTOs =====

type DashboardOverview struct {
	TotalStudents    int64                      `json:"total_students"`
	TotalTeachers    int64                      `json:"total_teachers"`
	TotalClasses     int64                      `json:"total_classes"`
	TotalSubjects    int64                      `json:"total_subjects"`
	AttendanceToday  map[AttendanceStatus]int64 `json:"attendance_today"`
	AttendanceDate   string                     `json:"attendance_date"`
	ScopedClassCount *int64                     `json:"scoped_class_count,omitempty"`
	GeneratedAt      time.Time                  `json:"generated_at"`
}
