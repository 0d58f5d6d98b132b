package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aurumx/reward-ledger/internal/domain/catalog"
)

// CatalogServiceImpl implements the CatalogService interface
type CatalogServiceImpl struct {
	catalogRepo catalog.Repository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo catalog.Repository) CatalogService {
	return &CatalogServiceImpl{
		catalogRepo: catalogRepo,
	}
}

// GetCategories returns all reward categories
func (s *CatalogServiceImpl) GetCategories(ctx context.Context) ([]*catalog.Category, error) {
	return s.catalogRepo.GetCategories(ctx)
}

// GetCategoryByID returns a single reward category
func (s *CatalogServiceImpl) GetCategoryByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return s.catalogRepo.GetCategoryByID(ctx, id)
}

// GetAvailableItems returns every item currently open for redemption
func (s *CatalogServiceImpl) GetAvailableItems(ctx context.Context) ([]*catalog.Item, error) {
	return s.catalogRepo.GetAvailableItems(ctx)
}

// GetItemsByCategory returns the items in a category
func (s *CatalogServiceImpl) GetItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Item, error) {
	return s.catalogRepo.GetItemsByCategory(ctx, categoryID)
}

// GetItemByID returns a single reward item
func (s *CatalogServiceImpl) GetItemByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	return s.catalogRepo.GetItemByID(ctx, id)
}
