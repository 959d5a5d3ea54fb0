package handler

import (
	"context"
	"net/http"
	"strconv"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type FeatureHandler struct {
	svc service.FeatureService
}

func NewFeatureHandler(svc service.FeatureService) *FeatureHandler {
	return &FeatureHandler{svc: svc}
}

func (h *FeatureHandler) RegisterRoutes(rg, protected *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/popular", h.Popular)
	rg.GET("/:feature_id", h.Get)
	rg.GET("/:feature_id/entries", h.Entries)

	protected.POST("/", h.Create)
	protected.PATCH("/:feature_id", h.Update)
	protected.DELETE("/:feature_id", h.Delete)
}

func (h *FeatureHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	features, err := h.svc.List(ctx, c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": features})
}

func (h *FeatureHandler) Popular(c *gin.Context) {
	limit := parseLimit(c, 100)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	features, err := h.svc.Popular(ctx, c.Query("type"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": features})
}

func (h *FeatureHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "feature_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	feature, err := h.svc.Get(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, feature)
}

// Entries answers "which entries offer this feature", narrowed by ?type= and
// ?min_rating=.
func (h *FeatureHandler) Entries(c *gin.Context) {
	id, ok := parseID(c, "feature_id")
	if !ok {
		return
	}
	category, ok := parseCategoryQuery(c)
	if !ok {
		return
	}

	minRating := 0
	if mr := c.Query("min_rating"); mr != "" {
		parsed, err := strconv.Atoi(mr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_rating"})
			return
		}
		minRating = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	links, err := h.svc.EntriesWith(ctx, id, category, minRating)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": links})
}

func (h *FeatureHandler) Create(c *gin.Context) {
	var req dto.CreateFeatureDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	feature, err := h.svc.GetOrCreate(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feature)
}

func (h *FeatureHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "feature_id")
	if !ok {
		return
	}

	var req dto.UpdateFeatureDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	feature, err := h.svc.Update(ctx, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, feature)
}

func (h *FeatureHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "feature_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feature deleted"})
}
