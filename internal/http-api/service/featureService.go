package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"accesshub/internal/cache"
	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/models"
	"accesshub/internal/http-api/repository"
	"accesshub/internal/slug"

	"gorm.io/gorm"
)

type FeatureService interface {
	GetOrCreate(ctx context.Context, req dto.CreateFeatureDTO) (*models.AccessibilityFeature, error)
	Get(ctx context.Context, id int64) (*models.AccessibilityFeature, error)
	List(ctx context.Context, accessibilityType string) ([]models.AccessibilityFeature, error)
	Popular(ctx context.Context, accessibilityType string, limit int) ([]models.AccessibilityFeature, error)
	Update(ctx context.Context, id int64, req dto.UpdateFeatureDTO) (*models.AccessibilityFeature, error)
	Delete(ctx context.Context, id int64) error
	EntriesWith(ctx context.Context, featureID int64, entryType models.Category, minRating int) ([]models.EntryFeature, error)
}

type featureService struct {
	features *repository.FeatureRepo
	assoc    *repository.AssociationRepo
	cache    *cache.Client
}

func NewFeatureService(features *repository.FeatureRepo, assoc *repository.AssociationRepo, c *cache.Client) FeatureService {
	return &featureService{features: features, assoc: assoc, cache: c}
}

// GetOrCreate upserts a feature keyed by the slug of its name, exactly like
// tags: the existing record wins on collision.
func (s *featureService) GetOrCreate(ctx context.Context, req dto.CreateFeatureDTO) (*models.AccessibilityFeature, error) {
	key := slug.Make(req.Name)
	if key == "" {
		return nil, fmt.Errorf("%w: feature name must contain at least one word character", ErrValidation)
	}

	accessibilityType := req.AccessibilityType
	if accessibilityType == "" {
		accessibilityType = models.AccessibilityGeneral
	}
	if !models.ValidAccessibilityType(accessibilityType) {
		return nil, fmt.Errorf("%w: unknown accessibility type %q", ErrValidation, accessibilityType)
	}

	existing, err := s.features.GetBySlug(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	feature := &models.AccessibilityFeature{
		Name:              strings.TrimSpace(req.Name),
		Slug:              key,
		Description:       req.Description,
		AccessibilityType: accessibilityType,
	}
	if err := s.features.Create(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *featureService) Get(ctx context.Context, id int64) (*models.AccessibilityFeature, error) {
	feature, err := s.features.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: feature %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *featureService) List(ctx context.Context, accessibilityType string) ([]models.AccessibilityFeature, error) {
	if accessibilityType != "" && !models.ValidAccessibilityType(accessibilityType) {
		return nil, fmt.Errorf("%w: unknown accessibility type %q", ErrValidation, accessibilityType)
	}
	return s.features.List(ctx, accessibilityType)
}

func (s *featureService) Popular(ctx context.Context, accessibilityType string, limit int) ([]models.AccessibilityFeature, error) {
	if accessibilityType != "" && !models.ValidAccessibilityType(accessibilityType) {
		return nil, fmt.Errorf("%w: unknown accessibility type %q", ErrValidation, accessibilityType)
	}
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	key := fmt.Sprintf("popular:features:%s:%d", accessibilityType, limit)
	var cached []models.AccessibilityFeature
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		slog.Warn("popular features cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	list, err := s.features.ListPopular(ctx, accessibilityType, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, list); err != nil {
		slog.Warn("popular features cache write failed", "error", err)
	}
	return list, nil
}

func (s *featureService) Update(ctx context.Context, id int64, req dto.UpdateFeatureDTO) (*models.AccessibilityFeature, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		key := slug.Make(*req.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: feature name must contain at least one word character", ErrValidation)
		}
		if other, err := s.features.GetBySlug(ctx, key); err == nil && other.ID != id {
			return nil, fmt.Errorf("%w: a feature with slug %q already exists", ErrValidation, key)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["name"] = strings.TrimSpace(*req.Name)
		updates["slug"] = key
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AccessibilityType != nil {
		if !models.ValidAccessibilityType(*req.AccessibilityType) {
			return nil, fmt.Errorf("%w: unknown accessibility type %q", ErrValidation, *req.AccessibilityType)
		}
		updates["accessibility_type"] = *req.AccessibilityType
	}

	if err := s.features.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: feature %d", ErrNotFound, id)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *featureService) Delete(ctx context.Context, id int64) error {
	if err := s.features.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: feature %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *featureService) EntriesWith(ctx context.Context, featureID int64, entryType models.Category, minRating int) ([]models.EntryFeature, error) {
	if minRating != 0 && (minRating < 1 || minRating > 5) {
		return nil, fmt.Errorf("%w: min rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.Get(ctx, featureID); err != nil {
		return nil, err
	}
	return s.assoc.ListFeatureLinks(ctx, featureID, entryType, minRating)
}
