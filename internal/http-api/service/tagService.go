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

const defaultPopularLimit = 10

type TagService interface {
	GetOrCreate(ctx context.Context, req dto.CreateTagDTO) (*models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
	List(ctx context.Context, accessibilityType string) ([]models.Tag, error)
	Popular(ctx context.Context, accessibilityType string, limit int) ([]models.Tag, error)
	Update(ctx context.Context, id int64, req dto.UpdateTagDTO) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
	EntriesWith(ctx context.Context, tagID int64, entryType models.Category) ([]models.EntryTag, error)
}

type tagService struct {
	tags  *repository.TagRepo
	assoc *repository.AssociationRepo
	cache *cache.Client
}

func NewTagService(tags *repository.TagRepo, assoc *repository.AssociationRepo, c *cache.Client) TagService {
	return &tagService{tags: tags, assoc: assoc, cache: c}
}

// GetOrCreate upserts a tag keyed by the slug of its name. Two names that
// normalize to the same slug are the same tag; the existing record wins and
// the request's description/type are ignored.
func (s *tagService) GetOrCreate(ctx context.Context, req dto.CreateTagDTO) (*models.Tag, error) {
	key := slug.Make(req.Name)
	if key == "" {
		return nil, fmt.Errorf("%w: tag name must contain at least one word character", ErrValidation)
	}

	accessibilityType := req.AccessibilityType
	if accessibilityType == "" {
		accessibilityType = models.AccessibilityGeneral
	}
	if !models.ValidAccessibilityType(accessibilityType) {
		return nil, fmt.Errorf("%w: unknown accessibility type %q", ErrValidation, accessibilityType)
	}

	existing, err := s.tags.GetBySlug(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := &models.Tag{
		Name:              strings.TrimSpace(req.Name),
		Slug:              key,
		Description:       req.Description,
		AccessibilityType: accessibilityType,
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tag %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) List(ctx context.Context, accessibilityType string) ([]models.Tag, error) {
	if accessibilityType != "" && !models.ValidAccessibilityType(accessibilityType) {
		return nil, fmt.Errorf("%w: unknown accessibility type %q", ErrValidation, accessibilityType)
	}
	return s.tags.List(ctx, accessibilityType)
}

// Popular returns the top tags by usage count, served from redis when the
// cache has a fresh copy. Cache trouble never fails the request.
func (s *tagService) Popular(ctx context.Context, accessibilityType string, limit int) ([]models.Tag, error) {
	if accessibilityType != "" && !models.ValidAccessibilityType(accessibilityType) {
		return nil, fmt.Errorf("%w: unknown accessibility type %q", ErrValidation, accessibilityType)
	}
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	key := fmt.Sprintf("popular:tags:%s:%d", accessibilityType, limit)
	var cached []models.Tag
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		slog.Warn("popular tags cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	list, err := s.tags.ListPopular(ctx, accessibilityType, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, list); err != nil {
		slog.Warn("popular tags cache write failed", "error", err)
	}
	return list, nil
}

func (s *tagService) Update(ctx context.Context, id int64, req dto.UpdateTagDTO) (*models.Tag, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		key := slug.Make(*req.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: tag name must contain at least one word character", ErrValidation)
		}
		// renames may not collide with another tag's slug
		if other, err := s.tags.GetBySlug(ctx, key); err == nil && other.ID != id {
			return nil, fmt.Errorf("%w: a tag with slug %q already exists", ErrValidation, key)
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

	if err := s.tags.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tag %d", ErrNotFound, id)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete cascades: the repository removes every association referencing the
// tag before the tag itself.
func (s *tagService) Delete(ctx context.Context, id int64) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: tag %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// EntriesWith returns the association rows for a tag; callers resolve the
// entry ids themselves if they need full entries.
func (s *tagService) EntriesWith(ctx context.Context, tagID int64, entryType models.Category) ([]models.EntryTag, error) {
	if _, err := s.Get(ctx, tagID); err != nil {
		return nil, err
	}
	return s.assoc.ListTagLinks(ctx, tagID, entryType)
}
