package dto

import "accesshub/internal/http-api/models"

// CreateReviewDTO for creating a review
type CreateReviewDTO struct {
	Title  string `json:"title" binding:"required,min=1,max=200"`
	Body   string `json:"body" binding:"max=10000"`
	Rating int    `json:"rating" binding:"required"`
}

// UpdateReviewDTO for updating a review (partial)
type UpdateReviewDTO struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	Rating *int    `json:"rating,omitempty"`
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []models.Review `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int64           `json:"total"`
	TotalPages int64           `json:"total_pages"`
}

func NewPaginatedReviewResponse(data []models.Review, total int64, page, pageSize int) *PaginatedReviewResponse {
	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
}
