package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/models"
	"accesshub/internal/http-api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, ref models.EntryRef, authorID, authorName string, req dto.CreateReviewDTO) (*models.Review, error)
	ListByEntry(ctx context.Context, ref models.EntryRef, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	Update(ctx context.Context, id int64, userID string, req dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type reviewService struct {
	reviews *repository.ReviewRepo
	entries *repository.EntryRepo
}

func NewReviewService(reviews *repository.ReviewRepo, entries *repository.EntryRepo) ReviewService {
	return &reviewService{reviews: reviews, entries: entries}
}

func (s *reviewService) Create(ctx context.Context, ref models.EntryRef, authorID, authorName string, req dto.CreateReviewDTO) (*models.Review, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: review body must not be blank", ErrValidation)
	}
	if err := validRating(req.Rating); err != nil {
		return nil, err
	}
	e, err := s.entries.Lookup(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Category, ref.ID)
	}

	review := &models.Review{
		EntryType:  ref.Category,
		EntryID:    ref.ID,
		AuthorID:   &authorID,
		AuthorName: authorName,
		Title:      req.Title,
		Body:       req.Body,
		Rating:     req.Rating,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByEntry(ctx context.Context, ref models.EntryRef, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	e, err := s.entries.Lookup(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Category, ref.ID)
	}
	reviews, total, err := s.reviews.ListByEntry(ctx, ref, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedReviewResponse(reviews, total, page, pageSize), nil
}

func (s *reviewService) Update(ctx context.Context, id int64, userID string, req dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: review %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if !review.EditableBy(userID) {
		return nil, fmt.Errorf("%w: review %d belongs to another user", ErrForbidden, id)
	}

	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, fmt.Errorf("%w: review body must not be blank", ErrValidation)
		}
		review.Body = *req.Body
	}
	if req.Rating != nil {
		if err := validRating(*req.Rating); err != nil {
			return nil, err
		}
		review.Rating = *req.Rating
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id int64, userID string) error {
	review, err := s.reviews.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: review %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	if !review.EditableBy(userID) {
		return fmt.Errorf("%w: review %d belongs to another user", ErrForbidden, id)
	}
	return s.reviews.Delete(ctx, id)
}
