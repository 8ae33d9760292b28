package models

import (
	"time"

	"gorm.io/gorm"
)

// Student is the pupil profile keyed by the human-readable student code
// (e.g. "HS001"). CurrentClassID is nullable: a student may be between
// classes after a transfer or before enrollment.
type Student struct {
	ID             string     `json:"id" gorm:"primaryKey;size:20" validate:"required,max=20"`
	UserID         *uint      `json:"user_id" gorm:"uniqueIndex"`
	FullName       string     `json:"full_name" gorm:"not null;size:100" validate:"required,max=100"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         string     `json:"gender" gorm:"size:10"`
	Address        string     `json:"address" gorm:"size:255"`
	CurrentClassID *uint      `json:"current_class_id" gorm:"index"`
	GuardianName   string     `json:"guardian_name" gorm:"size:100"`
	GuardianPhone  string     `json:"guardian_phone" gorm:"size:20"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User         *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CurrentClass *Class `json:"current_class,omitempty" gorm:"foreignKey:CurrentClassID"`
}

func (Student) TableName() string {
	return "students"
}
