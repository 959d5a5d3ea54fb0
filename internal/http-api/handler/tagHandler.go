package handler

import (
	"context"
	"net/http"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	svc service.TagService
}

func NewTagHandler(svc service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

func (h *TagHandler) RegisterRoutes(rg, protected *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/popular", h.Popular)
	rg.GET("/:tag_id", h.Get)
	rg.GET("/:tag_id/entries", h.Entries)

	protected.POST("/", h.Create)
	protected.PATCH("/:tag_id", h.Update)
	protected.DELETE("/:tag_id", h.Delete)
}

func (h *TagHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tags, err := h.svc.List(ctx, c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags})
}

func (h *TagHandler) Popular(c *gin.Context) {
	limit := parseLimit(c, 100)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tags, err := h.svc.Popular(ctx, c.Query("type"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags})
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "tag_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tag, err := h.svc.Get(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Entries answers "which entries carry this tag", optionally narrowed to one
// category with ?type=.
func (h *TagHandler) Entries(c *gin.Context) {
	id, ok := parseID(c, "tag_id")
	if !ok {
		return
	}
	category, ok := parseCategoryQuery(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	links, err := h.svc.EntriesWith(ctx, id, category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": links})
}

func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tag, err := h.svc.GetOrCreate(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "tag_id")
	if !ok {
		return
	}

	var req dto.UpdateTagDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tag, err := h.svc.Update(ctx, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "tag_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}
