package repository

import (
	"context"
	"fmt"

	"accesshub/internal/http-api/models"

	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db: db}
}

func (r *TagRepo) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBySlug returns the tag with the given slug, or gorm.ErrRecordNotFound.
func (r *TagRepo) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepo) Create(ctx context.Context, t *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *TagRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns all tags, optionally filtered by accessibility type.
func (r *TagRepo) List(ctx context.Context, accessibilityType string) ([]models.Tag, error) {
	var list []models.Tag
	q := r.db.WithContext(ctx).Order("name asc")
	if accessibilityType != "" {
		q = q.Where("accessibility_type = ?", accessibilityType)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return list, nil
}

// ListPopular returns the top tags by usage count.
func (r *TagRepo) ListPopular(ctx context.Context, accessibilityType string, limit int) ([]models.Tag, error) {
	var list []models.Tag
	q := r.db.WithContext(ctx).Order("usage_count desc, name asc").Limit(limit)
	if accessibilityType != "" {
		q = q.Where("accessibility_type = ?", accessibilityType)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list popular tags: %w", err)
	}
	return list, nil
}

func (r *TagRepo) FindByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var list []models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find tags by ids: %w", err)
	}
	return list, nil
}

// Delete removes a tag and every association referencing it. The tag's own
// usage count dies with it; no other tag's count is touched.
func (r *TagRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.EntryTag{}).Error; err != nil {
			return fmt.Errorf("delete tag associations: %w", err)
		}
		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete tag: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
