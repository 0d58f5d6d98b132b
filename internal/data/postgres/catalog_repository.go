package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aurumx/reward-ledger/internal/domain/catalog"
	"github.com/aurumx/reward-ledger/internal/platform/persistence"
)

// CatalogRepository implements the catalog.Repository interface for PostgreSQL
type CatalogRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCatalogRepository creates a new PostgreSQL reward catalog repository
func NewCatalogRepository(logger *slog.Logger, db *persistence.PostgresDB) catalog.Repository {
	return &CatalogRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// GetCategories retrieves all reward categories ordered by name
func (r *CatalogRepository) GetCategories(ctx context.Context) ([]*catalog.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM reward_categories
		ORDER BY name ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get reward categories", "error", err)
		return nil, fmt.Errorf("failed to get reward categories: %w", err)
	}
	defer rows.Close()

	var categories []*catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			r.logger.Error("Failed to scan reward category", "error", err)
			return nil, fmt.Errorf("failed to scan reward category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over reward categories", "error", err)
		return nil, fmt.Errorf("error iterating over reward categories: %w", err)
	}

	return categories, nil
}

// GetCategoryByID retrieves a reward category by ID
func (r *CatalogRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM reward_categories
		WHERE id = $1
	`

	var c catalog.Category
	err := r.querier.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrCategoryNotFound{CategoryID: id}
		}
		r.logger.Error("Failed to get reward category", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get reward category: %w", err)
	}

	return &c, nil
}

// GetAvailableItems retrieves every currently redeemable item ordered by point cost
func (r *CatalogRepository) GetAvailableItems(ctx context.Context) ([]*catalog.Item, error) {
	query := `
		SELECT id, category_id, name, description, points_cost, available, created_at
		FROM reward_items
		WHERE available = true
		ORDER BY points_cost ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get available reward items", "error", err)
		return nil, fmt.Errorf("failed to get available reward items: %w", err)
	}
	defer rows.Close()

	var items []*catalog.Item
	for rows.Next() {
		var it catalog.Item
		err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.PointsCost, &it.Available, &it.CreatedAt)
		if err != nil {
			r.logger.Error("Failed to scan reward item", "error", err)
			return nil, fmt.Errorf("failed to scan reward item: %w", err)
		}
		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over reward items", "error", err)
		return nil, fmt.Errorf("error iterating over reward items: %w", err)
	}

	return items, nil
}

// GetItemsByCategory retrieves all items in a category ordered by point cost.
// Returns ErrCategoryNotFound when the category itself does not exist.
func (r *CatalogRepository) GetItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Item, error) {
	if _, err := r.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category_id, name, description, points_cost, available, created_at
		FROM reward_items
		WHERE category_id = $1
		ORDER BY points_cost ASC
	`

	rows, err := r.querier.Query(ctx, query, categoryID)
	if err != nil {
		r.logger.Error("Failed to get reward items", "category_id", categoryID.String(), "error", err)
		return nil, fmt.Errorf("failed to get reward items: %w", err)
	}
	defer rows.Close()

	var items []*catalog.Item
	for rows.Next() {
		var it catalog.Item
		err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.PointsCost, &it.Available, &it.CreatedAt)
		if err != nil {
			r.logger.Error("Failed to scan reward item", "error", err)
			return nil, fmt.Errorf("failed to scan reward item: %w", err)
		}
		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over reward items", "error", err)
		return nil, fmt.Errorf("error iterating over reward items: %w", err)
	}

	return items, nil
}

// GetItemByID retrieves a reward item by ID
func (r *CatalogRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	query := `
		SELECT id, category_id, name, description, points_cost, available, created_at
		FROM reward_items
		WHERE id = $1
	`

	var it catalog.Item
	err := r.querier.QueryRow(ctx, query, id).Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.PointsCost, &it.Available, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrItemNotFound{ItemID: id}
		}
		r.logger.Error("Failed to get reward item", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get reward item: %w", err)
	}

	return &it, nil
}
