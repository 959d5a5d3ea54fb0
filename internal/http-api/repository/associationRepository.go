package repository

import (
	"context"
	"errors"
	"fmt"

	"accesshub/internal/http-api/models"

	"gorm.io/gorm"
)

// decrementClamped lowers a usage counter without ever going below zero,
// in case a previous drift left it low. Portable across postgres and sqlite.
const decrementClamped = "CASE WHEN usage_count > 0 THEN usage_count - 1 ELSE 0 END"

// AssociationRepo maintains entry<->tag and entry<->feature links together
// with the usage counters on the referenced tag/feature rows. Every counter
// mutation happens in the same transaction as the association write; no
// method touches a counter on its own.
type AssociationRepo struct {
	db *gorm.DB
}

func NewAssociationRepo(db *gorm.DB) *AssociationRepo {
	return &AssociationRepo{db: db}
}

// GetTagLink returns the link for (entry, tag), or nil when none exists.
func (r *AssociationRepo) GetTagLink(ctx context.Context, ref models.EntryRef, tagID int64) (*models.EntryTag, error) {
	var link models.EntryTag
	err := r.db.WithContext(ctx).
		Where("entry_type = ? AND entry_id = ? AND tag_id = ?", ref.Category, ref.ID, tagID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tag link: %w", err)
	}
	return &link, nil
}

// LinkTag adds a tag to an entry. Idempotent: a second identical call
// returns the existing link and leaves the usage count alone.
func (r *AssociationRepo) LinkTag(ctx context.Context, ref models.EntryRef, tagID int64) (*models.EntryTag, error) {
	var link *models.EntryTag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.EntryTag
		err := tx.Where("entry_type = ? AND entry_id = ? AND tag_id = ?", ref.Category, ref.ID, tagID).
			First(&existing).Error
		if err == nil {
			link = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check tag link: %w", err)
		}

		created := models.EntryTag{EntryType: ref.Category, EntryID: ref.ID, TagID: tagID}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("create tag link: %w", err)
		}
		if err := tx.Model(&models.Tag{}).Where("id = ?", tagID).
			Update("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
			return fmt.Errorf("increment tag usage: %w", err)
		}
		link = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// UnlinkTag removes a tag from an entry and decrements the usage count.
// Removing a tag that was never linked is a no-op.
func (r *AssociationRepo) UnlinkTag(ctx context.Context, ref models.EntryRef, tagID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("entry_type = ? AND entry_id = ? AND tag_id = ?", ref.Category, ref.ID, tagID).
			Delete(&models.EntryTag{})
		if result.Error != nil {
			return fmt.Errorf("delete tag link: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&models.Tag{}).Where("id = ?", tagID).
			Update("usage_count", gorm.Expr(decrementClamped)).Error; err != nil {
			return fmt.Errorf("decrement tag usage: %w", err)
		}
		return nil
	})
}

// ReplaceTags makes tagIDs the exact tag set of the entry. Tags already
// linked stay untouched; removed ones are unlinked with a decrement, new
// ones linked with an increment, all in one transaction.
func (r *AssociationRepo) ReplaceTags(ctx context.Context, ref models.EntryRef, tagIDs []int64) error {
	desired := dedupIDs(tagIDs)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []int64
		if err := tx.Model(&models.EntryTag{}).
			Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID).
			Pluck("tag_id", &existing).Error; err != nil {
			return fmt.Errorf("list existing tag links: %w", err)
		}

		toAdd, toRemove := diffIDs(existing, desired)

		if len(toRemove) > 0 {
			if err := tx.Where("entry_type = ? AND entry_id = ? AND tag_id IN ?", ref.Category, ref.ID, toRemove).
				Delete(&models.EntryTag{}).Error; err != nil {
				return fmt.Errorf("delete tag links: %w", err)
			}
			// each removed tag had exactly one link for this entry
			if err := tx.Model(&models.Tag{}).Where("id IN ?", toRemove).
				Update("usage_count", gorm.Expr(decrementClamped)).Error; err != nil {
				return fmt.Errorf("decrement tag usage: %w", err)
			}
		}

		if len(toAdd) > 0 {
			links := make([]models.EntryTag, 0, len(toAdd))
			for _, id := range toAdd {
				links = append(links, models.EntryTag{EntryType: ref.Category, EntryID: ref.ID, TagID: id})
			}
			if err := tx.Create(&links).Error; err != nil {
				return fmt.Errorf("create tag links: %w", err)
			}
			if err := tx.Model(&models.Tag{}).Where("id IN ?", toAdd).
				Update("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
				return fmt.Errorf("increment tag usage: %w", err)
			}
		}

		return nil
	})
}

// ListTagsForEntry returns the tag records linked to an entry. The join
// naturally drops links whose tag has been deleted out from under them.
func (r *AssociationRepo) ListTagsForEntry(ctx context.Context, ref models.EntryRef) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Joins("JOIN entry_tags ON entry_tags.tag_id = tags.id").
		Where("entry_tags.entry_type = ? AND entry_tags.entry_id = ?", ref.Category, ref.ID).
		Order("tags.name asc").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags for entry: %w", err)
	}
	return tags, nil
}

// ListTagLinks returns the association rows for a tag, optionally filtered
// by entry type. Callers resolve entry ids to full entries themselves.
func (r *AssociationRepo) ListTagLinks(ctx context.Context, tagID int64, entryType models.Category) ([]models.EntryTag, error) {
	var links []models.EntryTag
	q := r.db.WithContext(ctx).Where("tag_id = ?", tagID)
	if entryType != "" {
		q = q.Where("entry_type = ?", entryType)
	}
	if err := q.Order("created_at desc").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list tag links: %w", err)
	}
	return links, nil
}

func (r *AssociationRepo) GetFeatureLink(ctx context.Context, ref models.EntryRef, featureID int64) (*models.EntryFeature, error) {
	var link models.EntryFeature
	err := r.db.WithContext(ctx).
		Where("entry_type = ? AND entry_id = ? AND feature_id = ?", ref.Category, ref.ID, featureID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feature link: %w", err)
	}
	return &link, nil
}

// LinkFeature adds a feature to an entry with a rating and optional notes.
// If the link already exists the rating and notes are revised in place and
// the usage count is left alone. Returns the link and whether it was newly
// created.
func (r *AssociationRepo) LinkFeature(ctx context.Context, ref models.EntryRef, featureID int64, rating int, notes *string) (*models.EntryFeature, bool, error) {
	var (
		link    *models.EntryFeature
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.EntryFeature
		err := tx.Where("entry_type = ? AND entry_id = ? AND feature_id = ?", ref.Category, ref.ID, featureID).
			First(&existing).Error
		if err == nil {
			existing.Rating = rating
			existing.Notes = notes
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("update feature link: %w", err)
			}
			link = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check feature link: %w", err)
		}

		fresh := models.EntryFeature{
			EntryType: ref.Category,
			EntryID:   ref.ID,
			FeatureID: featureID,
			Rating:    rating,
			Notes:     notes,
		}
		if err := tx.Create(&fresh).Error; err != nil {
			return fmt.Errorf("create feature link: %w", err)
		}
		if err := tx.Model(&models.AccessibilityFeature{}).Where("id = ?", featureID).
			Update("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
			return fmt.Errorf("increment feature usage: %w", err)
		}
		link = &fresh
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return link, created, nil
}

// UpdateFeatureLink revises rating/notes on an existing link. Returns
// gorm.ErrRecordNotFound when the feature is not associated with the entry.
func (r *AssociationRepo) UpdateFeatureLink(ctx context.Context, ref models.EntryRef, featureID int64, rating int, notes *string) (*models.EntryFeature, error) {
	var link models.EntryFeature
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_type = ? AND entry_id = ? AND feature_id = ?", ref.Category, ref.ID, featureID).
			First(&link).Error; err != nil {
			return err
		}
		link.Rating = rating
		link.Notes = notes
		if err := tx.Save(&link).Error; err != nil {
			return fmt.Errorf("update feature link: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *AssociationRepo) UnlinkFeature(ctx context.Context, ref models.EntryRef, featureID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("entry_type = ? AND entry_id = ? AND feature_id = ?", ref.Category, ref.ID, featureID).
			Delete(&models.EntryFeature{})
		if result.Error != nil {
			return fmt.Errorf("delete feature link: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&models.AccessibilityFeature{}).Where("id = ?", featureID).
			Update("usage_count", gorm.Expr(decrementClamped)).Error; err != nil {
			return fmt.Errorf("decrement feature usage: %w", err)
		}
		return nil
	})
}

// FeatureSet is one element of a feature replace operation.
type FeatureSet struct {
	FeatureID int64
	Rating    int
	Notes     *string
}

// ReplaceFeatures makes the given set the exact feature list of the entry.
// Features in both sets keep their link (no counter churn) but take the new
// rating and notes.
func (r *AssociationRepo) ReplaceFeatures(ctx context.Context, ref models.EntryRef, set []FeatureSet) error {
	desired := make(map[int64]FeatureSet, len(set))
	for _, fs := range set {
		if fs.FeatureID > 0 {
			desired[fs.FeatureID] = fs
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.EntryFeature
		if err := tx.Where("entry_type = ? AND entry_id = ?", ref.Category, ref.ID).
			Find(&existing).Error; err != nil {
			return fmt.Errorf("list existing feature links: %w", err)
		}

		existingIDs := make(map[int64]models.EntryFeature, len(existing))
		for _, link := range existing {
			existingIDs[link.FeatureID] = link
		}

		var toRemove []int64
		for id := range existingIDs {
			if _, keep := desired[id]; !keep {
				toRemove = append(toRemove, id)
			}
		}

		if len(toRemove) > 0 {
			if err := tx.Where("entry_type = ? AND entry_id = ? AND feature_id IN ?", ref.Category, ref.ID, toRemove).
				Delete(&models.EntryFeature{}).Error; err != nil {
				return fmt.Errorf("delete feature links: %w", err)
			}
			if err := tx.Model(&models.AccessibilityFeature{}).Where("id IN ?", toRemove).
				Update("usage_count", gorm.Expr(decrementClamped)).Error; err != nil {
				return fmt.Errorf("decrement feature usage: %w", err)
			}
		}

		var toAdd []int64
		for id, fs := range desired {
			link, exists := existingIDs[id]
			if !exists {
				toAdd = append(toAdd, id)
				continue
			}
			if link.Rating != fs.Rating || !equalNotes(link.Notes, fs.Notes) {
				link.Rating = fs.Rating
				link.Notes = fs.Notes
				if err := tx.Save(&link).Error; err != nil {
					return fmt.Errorf("update feature link: %w", err)
				}
			}
		}

		if len(toAdd) > 0 {
			links := make([]models.EntryFeature, 0, len(toAdd))
			for _, id := range toAdd {
				fs := desired[id]
				links = append(links, models.EntryFeature{
					EntryType: ref.Category,
					EntryID:   ref.ID,
					FeatureID: id,
					Rating:    fs.Rating,
					Notes:     fs.Notes,
				})
			}
			if err := tx.Create(&links).Error; err != nil {
				return fmt.Errorf("create feature links: %w", err)
			}
			if err := tx.Model(&models.AccessibilityFeature{}).Where("id IN ?", toAdd).
				Update("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
				return fmt.Errorf("increment feature usage: %w", err)
			}
		}

		return nil
	})
}

// ListFeaturesForEntry returns the feature records linked to an entry, each
// carrying the entry-specific rating and notes. Dangling links are dropped
// by the join.
func (r *AssociationRepo) ListFeaturesForEntry(ctx context.Context, ref models.EntryRef) ([]models.FeatureLink, error) {
	var links []models.FeatureLink
	err := r.db.WithContext(ctx).
		Table("entry_features").
		Select("accessibility_features.*, entry_features.rating, entry_features.notes").
		Joins("JOIN accessibility_features ON accessibility_features.id = entry_features.feature_id").
		Where("entry_features.entry_type = ? AND entry_features.entry_id = ?", ref.Category, ref.ID).
		Order("accessibility_features.name asc").
		Scan(&links).Error
	if err != nil {
		return nil, fmt.Errorf("list features for entry: %w", err)
	}
	return links, nil
}

// ListFeatureLinks returns the association rows for a feature, optionally
// filtered by entry type and minimum rating.
func (r *AssociationRepo) ListFeatureLinks(ctx context.Context, featureID int64, entryType models.Category, minRating int) ([]models.EntryFeature, error) {
	var links []models.EntryFeature
	q := r.db.WithContext(ctx).Where("feature_id = ?", featureID)
	if entryType != "" {
		q = q.Where("entry_type = ?", entryType)
	}
	if minRating > 0 {
		q = q.Where("rating >= ?", minRating)
	}
	if err := q.Order("created_at desc").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list feature links: %w", err)
	}
	return links, nil
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func diffIDs(existing, desired []int64) (toAdd, toRemove []int64) {
	have := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}
	want := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	for _, id := range desired {
		if _, ok := have[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range existing {
		if _, ok := want[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

func equalNotes(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
