package handler

import (
	"context"
	"net/http"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/repository"
	"accesshub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// AssociationHandler serves the tag and feature links of a single entry,
// nested under /:category/:entry_id.
type AssociationHandler struct {
	svc service.AssociationService
}

func NewAssociationHandler(svc service.AssociationService) *AssociationHandler {
	return &AssociationHandler{svc: svc}
}

func (h *AssociationHandler) RegisterRoutes(rg, protected *gin.RouterGroup) {
	rg.GET("/:entry_id/tags", h.ListTags)
	rg.GET("/:entry_id/features", h.ListFeatures)

	protected.POST("/:entry_id/tags/:tag_id", h.AddTag)
	protected.DELETE("/:entry_id/tags/:tag_id", h.RemoveTag)
	protected.PUT("/:entry_id/tags", h.SetTags)

	protected.POST("/:entry_id/features/:feature_id", h.AddFeature)
	protected.PATCH("/:entry_id/features/:feature_id", h.UpdateFeature)
	protected.DELETE("/:entry_id/features/:feature_id", h.RemoveFeature)
	protected.PUT("/:entry_id/features", h.SetFeatures)
}

func (h *AssociationHandler) ListTags(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tags, err := h.svc.TagsForEntry(ctx, ref)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags})
}

func (h *AssociationHandler) AddTag(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tag_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	link, err := h.svc.AddTag(ctx, ref, tagID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *AssociationHandler) RemoveTag(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tag_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.RemoveTag(ctx, ref, tagID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag removed"})
}

func (h *AssociationHandler) SetTags(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}

	var req dto.SetTagsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.SetTags(ctx, ref, req.TagIDs); err != nil {
		writeError(c, err)
		return
	}

	tags, err := h.svc.TagsForEntry(ctx, ref)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags})
}

func (h *AssociationHandler) ListFeatures(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	features, err := h.svc.FeaturesForEntry(ctx, ref)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": features})
}

func (h *AssociationHandler) AddFeature(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}
	featureID, ok := parseID(c, "feature_id")
	if !ok {
		return
	}

	var req dto.FeatureLinkDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	link, err := h.svc.AddFeature(ctx, ref, featureID, req.Rating, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *AssociationHandler) UpdateFeature(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}
	featureID, ok := parseID(c, "feature_id")
	if !ok {
		return
	}

	var req dto.FeatureLinkDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	link, err := h.svc.UpdateFeatureRating(ctx, ref, featureID, req.Rating, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *AssociationHandler) RemoveFeature(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}
	featureID, ok := parseID(c, "feature_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.RemoveFeature(ctx, ref, featureID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feature removed"})
}

func (h *AssociationHandler) SetFeatures(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}

	var req dto.SetFeaturesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := make([]repository.FeatureSet, 0, len(req.Features))
	for _, f := range req.Features {
		set = append(set, repository.FeatureSet{FeatureID: f.FeatureID, Rating: f.Rating, Notes: f.Notes})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.SetFeatures(ctx, ref, set); err != nil {
		writeError(c, err)
		return
	}

	features, err := h.svc.FeaturesForEntry(ctx, ref)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": features})
}
