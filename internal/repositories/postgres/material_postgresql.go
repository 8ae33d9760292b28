package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type MaterialPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewMaterialPostgreSQL(db *gorm.DB) repositories.MaterialRepository {
	return &MaterialPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *MaterialPostgreSQL) Create(ctx context.Context, material *models.Material) error {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

func (r *MaterialPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	var material models.Material
	err := r.db.WithContext(ctx).
		Preload("ClassSubject").
		First(&material, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &material, nil
}

func (r *MaterialPostgreSQL) List(ctx context.Context, filters repositories.MaterialFilters) ([]*models.Material, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Material{})

	if filters.ClassSubjectID != nil {
		query = query.Where("class_subject_id = ?", *filters.ClassSubjectID)
	}
	if filters.ClassSubjectIDs != nil {
		query = query.Where("class_subject_id IN ?", filters.ClassSubjectIDs)
	}
	query = r.helpers.ApplySearch(query, filters.Search, "title")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count materials: %w", err)
	}

	var materials []*models.Material
	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	if err := query.Find(&materials).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list materials: %w", err)
	}

	return materials, total, nil
}

func (r *MaterialPostgreSQL) ListByClassSubject(ctx context.Context, classSubjectID uint) ([]*models.Material, error) {
	var materials []*models.Material
	err := r.db.WithContext(ctx).
		Where("class_subject_id = ?", classSubjectID).
		Order("created_at DESC").
		Find(&materials).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

func (r *MaterialPostgreSQL) Update(ctx context.Context, material *models.Material) error {
	if err := r.db.WithContext(ctx).Save(material).Error; err != nil {
		return fmt.Errorf("failed to update material: %w", err)
	}
	return nil
}

func (r *MaterialPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Material{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
