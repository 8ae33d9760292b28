package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Valid reports whether the status is one of the supported values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	default:
		return false
	}
}

// Attendance is one status per student per class per day. A day's records
// for a class are written as a whole via the bulk replace operation; a
// student with no row for a date simply has no attendance recorded, which
// is not the same as PRESENT.
type Attendance struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID string           `json:"student_id" gorm:"not null;size:20;uniqueIndex:idx_attendance_day" validate:"required"`
	ClassID   uint             `json:"class_id" gorm:"not null;index;uniqueIndex:idx_attendance_day" validate:"required"`
	Date      datatypes.Date   `json:"date" gorm:"not null;uniqueIndex:idx_attendance_day"`
	Status    AttendanceStatus `json:"status" gorm:"not null;size:20" validate:"required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
