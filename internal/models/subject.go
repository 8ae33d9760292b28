package models

import (
	"time"

	"gorm.io/gorm"
)

type Subject struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Code       string `json:"code" gorm:"uniqueIndex;not null;size:20" validate:"required,max=20"`
	Grade      int    `json:"grade" gorm:"not null;index" validate:"required,min=1,max=12"`
	IsOptional bool   `json:"is_optional" gorm:"not null;default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Subject) TableName() string {
	return "subjects"
}
