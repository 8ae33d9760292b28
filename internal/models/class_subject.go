package models

import (
	"time"

	"gorm.io/gorm"
)

type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "ACTIVE"
	AssignmentInactive AssignmentStatus = "INACTIVE"
)

// ClassSubject binds one class, one subject and one teacher: who teaches
// what, where, and how many periods per week. It is the sole authorization
// surface for teacher scoping — a teacher's allowed class set is the
// distinct class_id projection of their rows here.
//
// Uniqueness on (class_id, subject_id, teacher_id): a teacher teaches a
// given subject to a given class at most once.
type ClassSubject struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	ClassID       uint             `json:"class_id" gorm:"not null;index;uniqueIndex:idx_class_subject_teacher" validate:"required"`
	SubjectID     uint             `json:"subject_id" gorm:"not null;index;uniqueIndex:idx_class_subject_teacher" validate:"required"`
	TeacherID     string           `json:"teacher_id" gorm:"not null;size:20;index;uniqueIndex:idx_class_subject_teacher" validate:"required"`
	WeeklyLessons int              `json:"weekly_lessons" gorm:"not null;default:1" validate:"omitempty,min=1,max=20"`
	Room          string           `json:"room" gorm:"size:50"`
	Status        AssignmentStatus `json:"status" gorm:"not null;size:20;default:ACTIVE" validate:"omitempty,oneof=ACTIVE INACTIVE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Class   *Class   `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher *Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

func (ClassSubject) TableName() string {
	return "class_subjects"
}
