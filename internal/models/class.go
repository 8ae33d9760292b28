package models

import (
	"time"

	"gorm.io/gorm"
)

// Class is a homeroom group for one school year. TotalStudents is a derived
// read-time aggregate over Student rows; it is never stored, so it cannot
// drift from the enrollment data.
type Class struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	Name              string  `json:"name" gorm:"not null;size:50;index" validate:"required,max=50"`
	Grade             int     `json:"grade" gorm:"not null" validate:"required,min=1,max=12"`
	YearStart         int     `json:"year_start" gorm:"not null" validate:"required,min=2000,max=2100"`
	YearEnd           int     `json:"year_end" gorm:"not null" validate:"required,min=2000,max=2100"`
	HomeroomTeacherID *string `json:"homeroom_teacher_id" gorm:"size:20;index"`
	Capacity          int     `json:"capacity" gorm:"default:40" validate:"omitempty,min=1,max=100"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	HomeroomTeacher *Teacher `json:"homeroom_teacher,omitempty" gorm:"foreignKey:HomeroomTeacherID"`

	// Computed at read time, not stored.
	TotalStudents int64 `json:"total_students" gorm:"-"`
}

func (Class) TableName() string {
	return "classes"
}
