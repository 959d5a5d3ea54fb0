package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accesshub/internal/http-api/models"

	"gorm.io/gorm"
)

type EntryRepo struct {
	db *gorm.DB
}

func NewEntryRepo(db *gorm.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// GetByRef loads one entry from the table its category names.
func (r *EntryRepo) GetByRef(ctx context.Context, ref models.EntryRef) (models.Entry, error) {
	e := models.NewEntry(ref.Category)
	if e == nil {
		return nil, fmt.Errorf("unknown category %q", ref.Category)
	}
	if err := r.db.WithContext(ctx).First(e, ref.ID).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Lookup is the tolerant form of GetByRef: an id that does not exist in the
// category's table yields (nil, nil) instead of an error, so polymorphic
// lookups can probe all five tables.
func (r *EntryRepo) Lookup(ctx context.Context, ref models.EntryRef) (models.Entry, error) {
	e, err := r.GetByRef(ctx, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EntryRepo) Create(ctx context.Context, e models.Entry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create %s: %w", e.Category(), err)
	}
	return nil
}

func (r *EntryRepo) Update(ctx context.Context, e models.Entry) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("update %s: %w", e.Category(), err)
	}
	return nil
}

// Delete removes an entry and everything hanging off it: tag and feature
// links (with their usage-count decrements), comments and reviews. One
// transaction, so counters never drift from the link rows.
func (r *EntryRepo) Delete(ctx context.Context, ref models.EntryRef) error {
	e := models.NewEntry(ref.Category)
	if e == nil {
		return fmt.Errorf("unknown category %q", ref.Category)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			"UPDATE tags SET usage_count = "+decrementClamped+
				" WHERE id IN (SELECT tag_id FROM entry_tags WHERE entry_type = ? AND entry_id = ?)",
			ref.Category, ref.ID).Error
		if err != nil {
			return fmt.Errorf("decrement tag usage: %w", err)
		}
		if err := tx.Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID).
			Delete(&models.EntryTag{}).Error; err != nil {
			return fmt.Errorf("delete tag links: %w", err)
		}

		err = tx.Exec(
			"UPDATE accessibility_features SET usage_count = "+decrementClamped+
				" WHERE id IN (SELECT feature_id FROM entry_features WHERE entry_type = ? AND entry_id = ?)",
			ref.Category, ref.ID).Error
		if err != nil {
			return fmt.Errorf("decrement feature usage: %w", err)
		}
		if err := tx.Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID).
			Delete(&models.EntryFeature{}).Error; err != nil {
			return fmt.Errorf("delete feature links: %w", err)
		}

		if err := tx.Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID).
			Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID).
			Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}

		result := tx.Delete(e, ref.ID)
		if result.Error != nil {
			return fmt.Errorf("delete %s: %w", ref.Category, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByCategory returns the newest entries of one category.
func (r *EntryRepo) ListByCategory(ctx context.Context, category models.Category, limit int) ([]models.Entry, error) {
	return r.fetch(ctx, category, func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at desc").Limit(limit)
	})
}

// SearchByCategory runs a tokenized case-insensitive match over name and
// description of one category's table. Every token must match at least one
// of the two fields.
func (r *EntryRepo) SearchByCategory(ctx context.Context, category models.Category, query string) ([]models.Entry, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []models.Entry{}, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*2)
	for _, tok := range tokens {
		p := "%" + tok + "%"
		clauses = append(clauses, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, p, p)
	}
	where := strings.Join(clauses, " AND ")

	return r.fetch(ctx, category, func(q *gorm.DB) *gorm.DB {
		return q.Where(where, args...).Order("created_at desc")
	})
}

// fetch runs a query against the category's table and returns the rows as
// the Entry sum type.
func (r *EntryRepo) fetch(ctx context.Context, category models.Category, scope func(*gorm.DB) *gorm.DB) ([]models.Entry, error) {
	q := scope(r.db.WithContext(ctx))
	switch category {
	case models.CategoryGame:
		return scanEntries[models.Game](q)
	case models.CategoryHardware:
		return scanEntries[models.Hardware](q)
	case models.CategoryPlace:
		return scanEntries[models.Place](q)
	case models.CategorySoftware:
		return scanEntries[models.Software](q)
	case models.CategoryService:
		return scanEntries[models.Service](q)
	}
	return nil, fmt.Errorf("unknown category %q", category)
}

type entryPtr[T any] interface {
	*T
	models.Entry
}

func scanEntries[T any, P entryPtr[T]](q *gorm.DB) ([]models.Entry, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	out := make([]models.Entry, 0, len(rows))
	for i := range rows {
		out = append(out, P(&rows[i]))
	}
	return out, nil
}
