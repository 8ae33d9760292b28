package models

import (
	"time"

	"gorm.io/gorm"
)

// Material is a learning attachment keyed by class-subject. Rows outlive
// the assignment they were created under; deleting a ClassSubject does not
// clean up its materials.
type Material struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	ClassSubjectID uint    `json:"class_subject_id" gorm:"not null;index" validate:"required"`
	Title          string  `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description    *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	URL            string  `json:"url" gorm:"not null;size:500" validate:"required,url,max=500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	ClassSubject *ClassSubject `json:"class_subject,omitempty" gorm:"foreignKey:ClassSubjectID"`
}

func (Material) TableName() string {
	return "materials"
}
