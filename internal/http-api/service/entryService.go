package service

import (
	"context"
	"errors"
	"fmt"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/models"
	"accesshub/internal/http-api/repository"

	"gorm.io/gorm"
)

type EntryService interface {
	Get(ctx context.Context, ref models.EntryRef) (models.Entry, error)
	Create(ctx context.Context, category models.Category, ownerID string, req dto.EntryDTO) (models.Entry, error)
	Update(ctx context.Context, ref models.EntryRef, userID string, req dto.EntryDTO) (models.Entry, error)
	Delete(ctx context.Context, ref models.EntryRef, userID string) error
}

type entryService struct {
	entries *repository.EntryRepo
}

func NewEntryService(entries *repository.EntryRepo) EntryService {
	return &entryService{entries: entries}
}

func (s *entryService) Get(ctx context.Context, ref models.EntryRef) (models.Entry, error) {
	e, err := s.entries.GetByRef(ctx, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Category, ref.ID)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create builds a new entry owned by the signed-in user. The completeness
// flag is computed here and persisted with the row; it is never derived
// lazily on reads.
func (s *entryService) Create(ctx context.Context, category models.Category, ownerID string, req dto.EntryDTO) (models.Entry, error) {
	e := models.NewEntry(category)
	if e == nil {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}

	req.ApplyTo(e)
	core := e.Core()
	core.OwnerID = &ownerID

	if err := validateEntry(e); err != nil {
		return nil, err
	}
	core.Complete = models.IsComplete(e)

	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update applies a partial edit. Only the owner may edit; entries without a
// recorded owner are editable by anyone signed in. The completeness flag is
// recomputed on every update.
func (s *entryService) Update(ctx context.Context, ref models.EntryRef, userID string, req dto.EntryDTO) (models.Entry, error) {
	e, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	core := e.Core()
	if !core.EditableBy(userID) {
		return nil, fmt.Errorf("%w: %s %d belongs to another user", ErrForbidden, ref.Category, ref.ID)
	}

	req.ApplyTo(e)
	if err := validateEntry(e); err != nil {
		return nil, err
	}
	core.Complete = models.IsComplete(e)

	if err := s.entries.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the entry with its associations, comments and reviews.
func (s *entryService) Delete(ctx context.Context, ref models.EntryRef, userID string) error {
	e, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}
	if !e.Core().EditableBy(userID) {
		return fmt.Errorf("%w: %s %d belongs to another user", ErrForbidden, ref.Category, ref.ID)
	}

	if err := s.entries.Delete(ctx, ref); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s %d", ErrNotFound, ref.Category, ref.ID)
		}
		return err
	}
	return nil
}

// validateEntry checks field-level constraints shared by create and update.
func validateEntry(e models.Entry) error {
	core := e.Core()
	if core.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if core.OverallRating < 1 || core.OverallRating > 5 {
		return fmt.Errorf("%w: overall rating must be between 1 and 5", ErrValidation)
	}
	for _, dim := range []struct {
		name  string
		value *int
	}{
		{"visual", core.VisualRating},
		{"auditory", core.AuditoryRating},
		{"motor", core.MotorRating},
		{"cognitive", core.CognitiveRating},
	} {
		if dim.value != nil && (*dim.value < 1 || *dim.value > 5) {
			return fmt.Errorf("%w: %s rating must be between 1 and 5", ErrValidation, dim.name)
		}
	}
	return nil
}
