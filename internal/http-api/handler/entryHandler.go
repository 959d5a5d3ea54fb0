package handler

import (
	"context"
	"net/http"
	"time"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/middleware"
	"accesshub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

// EntryHandler serves both surfaces of the catalogue: the cross-category
// browse routes under /entries and the per-category CRUD routes under
// /:category.
type EntryHandler struct {
	browse  service.BrowseService
	entries service.EntryService
}

func NewEntryHandler(browse service.BrowseService, entries service.EntryService) *EntryHandler {
	return &EntryHandler{browse: browse, entries: entries}
}

func (h *EntryHandler) RegisterBrowseRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:entry_id", h.LookupAnyCategory)
}

// RegisterCategoryRoutes wires the per-category reads; protected registers
// the writes behind auth and rate limiting.
func (h *EntryHandler) RegisterCategoryRoutes(rg, protected *gin.RouterGroup) {
	rg.GET("/:entry_id", h.Get)

	protected.POST("/", h.Create)
	protected.PATCH("/:entry_id", h.Update)
	protected.DELETE("/:entry_id", h.Delete)
}

func (h *EntryHandler) List(c *gin.Context) {
	category, ok := parseCategoryQuery(c)
	if !ok {
		return
	}
	limit := parseLimit(c, 100)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entries, err := h.browse.GetEntries(ctx, category, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromEntries(entries)})
}

func (h *EntryHandler) Search(c *gin.Context) {
	category, ok := parseCategoryQuery(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entries, err := h.browse.SearchEntries(ctx, c.Query("q"), category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromEntries(entries)})
}

// LookupAnyCategory answers GET /entries/:entry_id, where the caller knows
// an id but not which category it belongs to.
func (h *EntryHandler) LookupAnyCategory(c *gin.Context) {
	id, ok := parseID(c, "entry_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	e, err := h.browse.GetEntry(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntry(e))
}

func (h *EntryHandler) Get(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	e, err := h.entries.Get(ctx, ref)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntry(e))
}

func (h *EntryHandler) Create(c *gin.Context) {
	category, ok := parseCategoryFromPath(c)
	if !ok {
		return
	}
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.EntryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	e, err := h.entries.Create(ctx, category, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntry(e))
}

func (h *EntryHandler) Update(c *gin.Context) {
	ref, ok := parseRef(c)
	if !ok {
		return
	}
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.EntryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	e, err := h.entries.Update(ctx, ref, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntry(e))
}

func (h *EntryHandler) Delete(c *gin.Context) {
	ref, ok := parseRef(c)
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

	if err := h.entries.Delete(ctx, ref, userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}
