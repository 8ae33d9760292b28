package models

import "time"

type ScoreType string

const (
	ScoreOral  ScoreType = "oral"
	ScoreQuiz  ScoreType = "quiz"
	ScoreMid   ScoreType = "mid"
	ScoreFinal ScoreType = "final"
)

func (t ScoreType) Valid() bool {
	switch t {
	case ScoreOral, ScoreQuiz, ScoreMid, ScoreFinal:
		return true
	default:
		return false
	}
}

// Score is at most one assessment score per (student, class-subject, type).
// Value is nullable: a null score means "cleared", the row itself is kept.
// Persisted values always satisfy null or 0 <= value <= 10.
type Score struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StudentID      string    `json:"student_id" gorm:"not null;size:20;index;uniqueIndex:idx_score_key" validate:"required"`
	ClassSubjectID uint      `json:"class_subject_id" gorm:"not null;index;uniqueIndex:idx_score_key" validate:"required"`
	Type           ScoreType `json:"type" gorm:"not null;size:10;uniqueIndex:idx_score_key" validate:"required"`
	Value          *float64  `json:"score" gorm:"column:score"`
	Date           time.Time `json:"date" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClassSubject *ClassSubject `json:"class_subject,omitempty" gorm:"foreignKey:ClassSubjectID"`
}

func (Score) TableName() string {
	return "scores"
}
