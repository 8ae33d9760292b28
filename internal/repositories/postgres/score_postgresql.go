package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type ScorePostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewScorePostgreSQL(db *gorm.DB) repositories.ScoreRepository {
	return &ScorePostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *ScorePostgreSQL) FindByKey(ctx context.Context, studentID string, classSubjectID uint, scoreType models.ScoreType) (*models.Score, error) {
	var score models.Score
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND class_subject_id = ? AND type = ?", studentID, classSubjectID, scoreType).
		First(&score).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find score: %w", err)
	}
	return &score, nil
}

func (r *ScorePostgreSQL) Create(ctx context.Context, score *models.Score) error {
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}
	return nil
}

// Update overwrites the value and date columns. A nil value is written as
// SQL NULL, which is how a score is cleared without losing the row.
func (r *ScorePostgreSQL) Update(ctx context.Context, score *models.Score) error {
	err := r.db.WithContext(ctx).
		Model(&models.Score{}).
		Where("id = ?", score.ID).
		Updates(map[string]interface{}{
			"score": score.Value,
			"date":  score.Date,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	return nil
}

func (r *ScorePostgreSQL) ListByClassSubject(ctx context.Context, classSubjectID uint) ([]*models.Score, error) {
	var scores []*models.Score
	err := r.db.WithContext(ctx).
		Where("class_subject_id = ?", classSubjectID).
		Order("student_id ASC, type ASC").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

func (r *ScorePostgreSQL) ListByStudent(ctx context.Context, studentID string, filters repositories.ScoreFilters) ([]*models.Score, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Score{}).
		Where("student_id = ?", studentID)

	if filters.ClassSubjectID != nil {
		query = query.Where("class_subject_id = ?", *filters.ClassSubjectID)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count scores: %w", err)
	}

	var scores []*models.Score
	query = query.Preload("ClassSubject").Order("class_subject_id ASC, type ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	if err := query.Find(&scores).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list student scores: %w", err)
	}

	return scores, total, nil
}
