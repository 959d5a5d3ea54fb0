package repository

import (
	"context"
	"fmt"

	"accesshub/internal/http-api/models"

	"gorm.io/gorm"
)

type FeatureRepo struct {
	db *gorm.DB
}

func NewFeatureRepo(db *gorm.DB) *FeatureRepo {
	return &FeatureRepo{db: db}
}

func (r *FeatureRepo) GetByID(ctx context.Context, id int64) (*models.AccessibilityFeature, error) {
	var f models.AccessibilityFeature
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeatureRepo) GetBySlug(ctx context.Context, slug string) (*models.AccessibilityFeature, error) {
	var f models.AccessibilityFeature
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeatureRepo) Create(ctx context.Context, f *models.AccessibilityFeature) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("create feature: %w", err)
	}
	return nil
}

func (r *FeatureRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.AccessibilityFeature{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update feature: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FeatureRepo) List(ctx context.Context, accessibilityType string) ([]models.AccessibilityFeature, error) {
	var list []models.AccessibilityFeature
	q := r.db.WithContext(ctx).Order("name asc")
	if accessibilityType != "" {
		q = q.Where("accessibility_type = ?", accessibilityType)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	return list, nil
}

func (r *FeatureRepo) ListPopular(ctx context.Context, accessibilityType string, limit int) ([]models.AccessibilityFeature, error) {
	var list []models.AccessibilityFeature
	q := r.db.WithContext(ctx).Order("usage_count desc, name asc").Limit(limit)
	if accessibilityType != "" {
		q = q.Where("accessibility_type = ?", accessibilityType)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list popular features: %w", err)
	}
	return list, nil
}

// Delete removes a feature and every association referencing it.
func (r *FeatureRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feature_id = ?", id).Delete(&models.EntryFeature{}).Error; err != nil {
			return fmt.Errorf("delete feature associations: %w", err)
		}
		result := tx.Delete(&models.AccessibilityFeature{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete feature: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
