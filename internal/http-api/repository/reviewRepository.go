package repository

import (
	"context"
	"fmt"

	"accesshub/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Create(ctx context.Context, rev *models.Review) error {
	if err := r.db.WithContext(ctx).Create(rev).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var rev models.Review
	if err := r.db.WithContext(ctx).First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) ListByEntry(ctx context.Context, ref models.EntryRef, page, pageSize int) ([]models.Review, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	var list []models.Review
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return list, total, nil
}

func (r *ReviewRepo) Update(ctx context.Context, rev *models.Review) error {
	if err := r.db.WithContext(ctx).Save(rev).Error; err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
