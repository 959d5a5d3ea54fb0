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

type CommentService interface {
	Create(ctx context.Context, ref models.EntryRef, authorID, authorName string, req dto.CreateCommentDTO) (*models.Comment, error)
	ListByEntry(ctx context.Context, ref models.EntryRef, page, pageSize int) (*dto.PaginatedCommentResponse, error)
	Update(ctx context.Context, id int64, userID string, req dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type commentService struct {
	comments *repository.CommentRepo
	entries  *repository.EntryRepo
}

func NewCommentService(comments *repository.CommentRepo, entries *repository.EntryRepo) CommentService {
	return &commentService{comments: comments, entries: entries}
}

func (s *commentService) Create(ctx context.Context, ref models.EntryRef, authorID, authorName string, req dto.CreateCommentDTO) (*models.Comment, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: comment body must not be blank", ErrValidation)
	}
	e, err := s.entries.Lookup(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Category, ref.ID)
	}

	comment := &models.Comment{
		EntryType:  ref.Category,
		EntryID:    ref.ID,
		AuthorID:   &authorID,
		AuthorName: authorName,
		Body:       req.Body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListByEntry(ctx context.Context, ref models.EntryRef, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	e, err := s.entries.Lookup(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Category, ref.ID)
	}
	comments, total, err := s.comments.ListByEntry(ctx, ref, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedCommentResponse(comments, total, page, pageSize), nil
}

func (s *commentService) Update(ctx context.Context, id int64, userID string, req dto.UpdateCommentDTO) (*models.Comment, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: comment body must not be blank", ErrValidation)
	}
	comment, err := s.comments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: comment %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if !comment.EditableBy(userID) {
		return nil, fmt.Errorf("%w: comment %d belongs to another user", ErrForbidden, id)
	}

	comment.Body = req.Body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id int64, userID string) error {
	comment, err := s.comments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: comment %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	if !comment.EditableBy(userID) {
		return fmt.Errorf("%w: comment %d belongs to another user", ErrForbidden, id)
	}
	return s.comments.Delete(ctx, id)
}
