package repository

import (
	"context"
	"fmt"

	"accesshub/internal/http-api/models"

	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(ctx context.Context, c *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByEntry returns an entry's comments, newest first, paginated.
func (r *CommentRepo) ListByEntry(ctx context.Context, ref models.EntryRef, page, pageSize int) ([]models.Comment, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	var list []models.Comment
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	return list, total, nil
}

func (r *CommentRepo) Update(ctx context.Context, c *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
