package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurumx/reward-ledger/internal/domain/catalog"
	"github.com/aurumx/reward-ledger/internal/rewards_api/service"
)

// CatalogHandler handles HTTP requests for the reward catalog
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(logger *slog.Logger, catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// GetCategories handles GET /catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get catalog categories", "error", err)
		RespondInternalError(c)
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, mapCategoryToResponse(cat))
	}
	RespondOK(c, resp)
}

// GetCategory handles GET /catalog/category/{id}, returning the category with
// its items
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid category ID")
		return
	}

	cat, err := h.catalogService.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound{}) {
			RespondNotFound(c, "Category not found")
			return
		}
		h.logger.Error("Failed to get catalog category", "id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	items, err := h.catalogService.GetItemsByCategory(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get category items", "id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, CategoryDetailResponse{
		CategoryResponse: mapCategoryToResponse(cat),
		Items:            mapItemsToResponse(items),
	})
}

// GetItems handles GET /catalog/items with an optional categoryId filter
func (h *CatalogHandler) GetItems(c *gin.Context) {
	categoryParam := c.Query("categoryId")

	if categoryParam == "" {
		items, err := h.catalogService.GetAvailableItems(c.Request.Context())
		if err != nil {
			h.logger.Error("Failed to get catalog items", "error", err)
			RespondInternalError(c)
			return
		}
		RespondOK(c, mapItemsToResponse(items))
		return
	}

	categoryID, err := uuid.Parse(categoryParam)
	if err != nil {
		RespondBadRequest(c, "Invalid category ID")
		return
	}

	items, err := h.catalogService.GetItemsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound{}) {
			RespondNotFound(c, "Category not found")
			return
		}
		h.logger.Error("Failed to get catalog items", "category_id", categoryParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapItemsToResponse(items))
}
