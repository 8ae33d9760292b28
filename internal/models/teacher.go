package models

import (
	"time"

	"gorm.io/gorm"
)

// Teacher is the staff profile keyed by the human-readable teacher code
// (e.g. "GV001"). The profile owns the 1:1 relation to its login account.
type Teacher struct {
	ID          string     `json:"id" gorm:"primaryKey;size:20" validate:"required,max=20"`
	UserID      *uint      `json:"user_id" gorm:"uniqueIndex"`
	FullName    string     `json:"full_name" gorm:"not null;size:100" validate:"required,max=100"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender" gorm:"size:10"`
	Address     string     `json:"address" gorm:"size:255"`
	Phone       string     `json:"phone" gorm:"size:20"`
	Email       string     `json:"email" gorm:"size:255" validate:"omitempty,email"`
	MainSubject string     `json:"main_subject" gorm:"size:100"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Teacher) TableName() string {
	return "teachers"
}
