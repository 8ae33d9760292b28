package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

type UserStatus string

const (
	UserActive UserStatus = "ACTIVE"
	UserLocked UserStatus = "LOCKED"
)

// User is the login account. Teachers and students are satellite profile
// records linked back to a User; the role is assigned once at creation.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null;size:100" validate:"required,min=3,max=100"`
	PasswordHash string     `json:"-" gorm:"not null;size:100"`
	FullName     string     `json:"full_name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        string     `json:"email" gorm:"size:255" validate:"omitempty,email"`
	Phone        string     `json:"phone" gorm:"size:20"`
	Role         UserRole   `json:"role" gorm:"not null;size:20;index" validate:"required,oneof=ADMIN TEACHER STUDENT"`
	Status       UserStatus `json:"status" gorm:"not null;size:20;default:ACTIVE" validate:"omitempty,oneof=ACTIVE LOCKED"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
