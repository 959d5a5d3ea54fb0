package service

import (
	"context"
	"errors"
	"fmt"

	"accesshub/internal/http-api/models"
	"accesshub/internal/http-api/repository"

	"gorm.io/gorm"
)

// AssociationService links tags and accessibility features to entries of
// any category. All counter bookkeeping lives in the repository transaction;
// this layer validates inputs and resolves not-found cases before anything
// is written.
type AssociationService interface {
	AddTag(ctx context.Context, ref models.EntryRef, tagID int64) (*models.EntryTag, error)
	RemoveTag(ctx context.Context, ref models.EntryRef, tagID int64) error
	SetTags(ctx context.Context, ref models.EntryRef, tagIDs []int64) error
	TagsForEntry(ctx context.Context, ref models.EntryRef) ([]models.Tag, error)

	AddFeature(ctx context.Context, ref models.EntryRef, featureID int64, rating int, notes *string) (*models.EntryFeature, error)
	RemoveFeature(ctx context.Context, ref models.EntryRef, featureID int64) error
	SetFeatures(ctx context.Context, ref models.EntryRef, set []repository.FeatureSet) error
	UpdateFeatureRating(ctx context.Context, ref models.EntryRef, featureID int64, rating int, notes *string) (*models.EntryFeature, error)
	FeaturesForEntry(ctx context.Context, ref models.EntryRef) ([]models.FeatureLink, error)
}

type associationService struct {
	assoc    *repository.AssociationRepo
	entries  *repository.EntryRepo
	tags     *repository.TagRepo
	features *repository.FeatureRepo
}

func NewAssociationService(assoc *repository.AssociationRepo, entries *repository.EntryRepo, tags *repository.TagRepo, features *repository.FeatureRepo) AssociationService {
	return &associationService{assoc: assoc, entries: entries, tags: tags, features: features}
}

// requireEntry confirms the referenced entry exists before any association
// mutation runs.
func (s *associationService) requireEntry(ctx context.Context, ref models.EntryRef) error {
	e, err := s.entries.Lookup(ctx, ref)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: %s %d", ErrNotFound, ref.Category, ref.ID)
	}
	return nil
}

// AddTag links a tag to an entry. Idempotent: re-adding an existing link
// returns it unchanged and does not touch the usage count.
func (s *associationService) AddTag(ctx context.Context, ref models.EntryRef, tagID int64) (*models.EntryTag, error) {
	if err := s.requireEntry(ctx, ref); err != nil {
		return nil, err
	}
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tag %d", ErrNotFound, tagID)
		}
		return nil, err
	}
	return s.assoc.LinkTag(ctx, ref, tagID)
}

// RemoveTag unlinks a tag. Removing a tag that was never linked is a no-op.
func (s *associationService) RemoveTag(ctx context.Context, ref models.EntryRef, tagID int64) error {
	if err := s.requireEntry(ctx, ref); err != nil {
		return err
	}
	return s.assoc.UnlinkTag(ctx, ref, tagID)
}

// SetTags replaces the entry's tag set. All desired tags must exist; links
// already in place are left untouched.
func (s *associationService) SetTags(ctx context.Context, ref models.EntryRef, tagIDs []int64) error {
	if err := s.requireEntry(ctx, ref); err != nil {
		return err
	}
	if err := s.requireTags(ctx, tagIDs); err != nil {
		return err
	}
	return s.assoc.ReplaceTags(ctx, ref, tagIDs)
}

func (s *associationService) requireTags(ctx context.Context, tagIDs []int64) error {
	unique := map[int64]struct{}{}
	ids := make([]int64, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := unique[id]; !ok {
			unique[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	found, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return fmt.Errorf("%w: one or more tags do not exist", ErrNotFound)
	}
	return nil
}

func (s *associationService) TagsForEntry(ctx context.Context, ref models.EntryRef) ([]models.Tag, error) {
	if err := s.requireEntry(ctx, ref); err != nil {
		return nil, err
	}
	return s.assoc.ListTagsForEntry(ctx, ref)
}

// AddFeature links a feature with a rating and optional notes. On an
// existing link the rating and notes are revised in place; the usage count
// only moves on the first link.
func (s *associationService) AddFeature(ctx context.Context, ref models.EntryRef, featureID int64, rating int, notes *string) (*models.EntryFeature, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	if err := s.requireEntry(ctx, ref); err != nil {
		return nil, err
	}
	if _, err := s.features.GetByID(ctx, featureID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: feature %d", ErrNotFound, featureID)
		}
		return nil, err
	}
	link, _, err := s.assoc.LinkFeature(ctx, ref, featureID, rating, notes)
	return link, err
}

func (s *associationService) RemoveFeature(ctx context.Context, ref models.EntryRef, featureID int64) error {
	if err := s.requireEntry(ctx, ref); err != nil {
		return err
	}
	return s.assoc.UnlinkFeature(ctx, ref, featureID)
}

// SetFeatures replaces the entry's feature set. Every rating is validated
// before any write happens.
func (s *associationService) SetFeatures(ctx context.Context, ref models.EntryRef, set []repository.FeatureSet) error {
	for _, fs := range set {
		if err := validRating(fs.Rating); err != nil {
			return err
		}
	}
	if err := s.requireEntry(ctx, ref); err != nil {
		return err
	}
	if err := s.requireFeatures(ctx, set); err != nil {
		return err
	}
	return s.assoc.ReplaceFeatures(ctx, ref, set)
}

func (s *associationService) requireFeatures(ctx context.Context, set []repository.FeatureSet) error {
	for _, fs := range set {
		if _, err := s.features.GetByID(ctx, fs.FeatureID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: feature %d", ErrNotFound, fs.FeatureID)
			}
			return err
		}
	}
	return nil
}

// UpdateFeatureRating revises rating/notes on an existing link only; a
// missing link is an error, not an implicit add.
func (s *associationService) UpdateFeatureRating(ctx context.Context, ref models.EntryRef, featureID int64, rating int, notes *string) (*models.EntryFeature, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	if err := s.requireEntry(ctx, ref); err != nil {
		return nil, err
	}
	link, err := s.assoc.UpdateFeatureLink(ctx, ref, featureID, rating, notes)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: feature %d, %s %d", ErrNotAssociated, featureID, ref.Category, ref.ID)
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (s *associationService) FeaturesForEntry(ctx context.Context, ref models.EntryRef) ([]models.FeatureLink, error) {
	if err := s.requireEntry(ctx, ref); err != nil {
		return nil, err
	}
	return s.assoc.ListFeaturesForEntry(ctx, ref)
}

func validRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrValidation, rating)
	}
	return nil
}
