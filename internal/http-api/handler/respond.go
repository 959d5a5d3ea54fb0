package handler

import (
	"errors"
	"net/http"
	"strconv"

	"accesshub/internal/http-api/models"
	"accesshub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 with a generic message so storage details
// never leak to clients.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAssociated):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseID reads a positive int64 path parameter.
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// parseRef resolves the :category and :entry_id path parameters into a
// typed entry reference.
func parseRef(c *gin.Context) (models.EntryRef, bool) {
	category, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return models.EntryRef{}, false
	}
	id, ok := parseID(c, "entry_id")
	if !ok {
		return models.EntryRef{}, false
	}
	return models.EntryRef{Category: category, ID: id}, true
}

// parseCategoryFromPath resolves the :category path parameter alone, for
// routes that have no entry id yet.
func parseCategoryFromPath(c *gin.Context) (models.Category, bool) {
	category, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return "", false
	}
	return category, true
}

// parseCategoryQuery reads the optional ?category= filter; empty means all.
func parseCategoryQuery(c *gin.Context) (models.Category, bool) {
	raw := c.Query("category")
	if raw == "" {
		return "", true
	}
	category, ok := models.ParseCategory(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return "", false
	}
	return category, true
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}
	return page, pageSize
}

func parseLimit(c *gin.Context, max int) int {
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= max {
			return parsed
		}
	}
	return 0
}
