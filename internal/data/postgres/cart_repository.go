package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aurumx/reward-ledger/internal/domain/cart"
	"github.com/aurumx/reward-ledger/internal/platform/persistence"
)

// CartRepository implements the cart.Repository interface for PostgreSQL
type CartRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCartRepository creates a new PostgreSQL cart repository
func NewCartRepository(logger *slog.Logger, db *persistence.PostgresDB) cart.Repository {
	return &CartRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so cart clearing can commit
// atomically with the redemption itself
func (r *CartRepository) WithTx(tx pgx.Tx) cart.Repository {
	return &CartRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// GetByCustomer retrieves the customer's cart lines in insertion order
func (r *CartRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]*cart.Item, error) {
	query := `
		SELECT id, customer_id, reward_item_id, item_name, points_cost, quantity, added_at
		FROM cart_items
		WHERE customer_id = $1
		ORDER BY added_at ASC
	`

	rows, err := r.querier.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error("Failed to get cart items", "customer_id", customerID.String(), "error", err)
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	var items []*cart.Item
	for rows.Next() {
		var it cart.Item
		err := rows.Scan(&it.ID, &it.CustomerID, &it.RewardItemID, &it.ItemName, &it.PointsCost, &it.Quantity, &it.AddedAt)
		if err != nil {
			r.logger.Error("Failed to scan cart item", "error", err)
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over cart items", "error", err)
		return nil, fmt.Errorf("error iterating over cart items: %w", err)
	}

	return items, nil
}

// GetItem retrieves a single cart line by ID
func (r *CartRepository) GetItem(ctx context.Context, cartItemID uuid.UUID) (*cart.Item, error) {
	query := `
		SELECT id, customer_id, reward_item_id, item_name, points_cost, quantity, added_at
		FROM cart_items
		WHERE id = $1
	`

	var it cart.Item
	err := r.querier.QueryRow(ctx, query, cartItemID).Scan(
		&it.ID,
		&it.CustomerID,
		&it.RewardItemID,
		&it.ItemName,
		&it.PointsCost,
		&it.Quantity,
		&it.AddedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrCartItemNotFound{CartItemID: cartItemID}
		}
		r.logger.Error("Failed to get cart item", "id", cartItemID.String(), "error", err)
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	return &it, nil
}

// Upsert inserts the cart line or increments quantity when the customer
// already has the same reward item in the cart. The unique constraint on
// (customer_id, reward_item_id) drives the conflict resolution.
func (r *CartRepository) Upsert(ctx context.Context, item *cart.Item) (*cart.Item, error) {
	query := `
		INSERT INTO cart_items (id, customer_id, reward_item_id, item_name, points_cost, quantity, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (customer_id, reward_item_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, customer_id, reward_item_id, item_name, points_cost, quantity, added_at
	`

	var saved cart.Item
	err := r.querier.QueryRow(ctx, query,
		item.ID,
		item.CustomerID,
		item.RewardItemID,
		item.ItemName,
		item.PointsCost,
		item.Quantity,
		item.AddedAt,
	).Scan(
		&saved.ID,
		&saved.CustomerID,
		&saved.RewardItemID,
		&saved.ItemName,
		&saved.PointsCost,
		&saved.Quantity,
		&saved.AddedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert cart item", "customer_id", item.CustomerID.String(), "error", err)
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return &saved, nil
}

// UpdateQuantity sets the quantity of a cart line
func (r *CartRepository) UpdateQuantity(ctx context.Context, cartItemID uuid.UUID, quantity int) (*cart.Item, error) {
	query := `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2
		RETURNING id, customer_id, reward_item_id, item_name, points_cost, quantity, added_at
	`

	var it cart.Item
	err := r.querier.QueryRow(ctx, query, quantity, cartItemID).Scan(
		&it.ID,
		&it.CustomerID,
		&it.RewardItemID,
		&it.ItemName,
		&it.PointsCost,
		&it.Quantity,
		&it.AddedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrCartItemNotFound{CartItemID: cartItemID}
		}
		r.logger.Error("Failed to update cart item quantity", "id", cartItemID.String(), "error", err)
		return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	return &it, nil
}

// Delete removes a single cart line
func (r *CartRepository) Delete(ctx context.Context, cartItemID uuid.UUID) error {
	query := `
		DELETE FROM cart_items
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, cartItemID)
	if err != nil {
		r.logger.Error("Failed to delete cart item", "id", cartItemID.String(), "error", err)
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return cart.ErrCartItemNotFound{CartItemID: cartItemID}
	}

	return nil
}

// DeleteByCustomer clears the customer's cart and reports how many lines
// were removed
func (r *CartRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	query := `
		DELETE FROM cart_items
		WHERE customer_id = $1
	`

	result, err := r.querier.Exec(ctx, query, customerID)
	if err != nil {
		r.logger.Error("Failed to clear cart", "customer_id", customerID.String(), "error", err)
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	return int(result.RowsAffected()), nil
}
