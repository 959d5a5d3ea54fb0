package handler

import (
	"context"
	"net/http"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/middleware"
	"accesshub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterEntryRoutes wires the entry-scoped routes (list, create);
// RegisterRoutes wires edits addressed by comment id alone.
func (h *CommentHandler) RegisterEntryRoutes(rg, protected *gin.RouterGroup) {
	rg.GET("/:entry_id/comments", h.ListByEntry)
	protected.POST("/:entry_id/comments", h.Create)
}

func (h *CommentHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.PATCH("/:comment_id", h.Update)
	protected.DELETE("/:comment_id", h.Delete)
}

func (h *CommentHandler) ListByEntry(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.svc.ListByEntry(ctx, ref, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Create(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}
	userID, displayName, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comment, err := h.svc.Create(ctx, ref, userID, displayName, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "comment_id")
	if !ok {
		return
	}
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comment, err := h.svc.Update(ctx, id, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "comment_id")
	if !ok {
		return
	}
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id, userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
