package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aurumx/reward-ledger/internal/domain/redemption"
	"github.com/aurumx/reward-ledger/internal/platform/persistence"
)

// RedemptionRepository implements the redemption.Repository interface for PostgreSQL
type RedemptionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewRedemptionRepository creates a new PostgreSQL redemption repository
func NewRedemptionRepository(logger *slog.Logger, db *persistence.PostgresDB) redemption.Repository {
	return &RedemptionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so the record commits
// atomically with the balance debit and cart clear
func (r *RedemptionRepository) WithTx(tx pgx.Tx) redemption.Repository {
	return &RedemptionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create persists the redemption record and its item snapshots
func (r *RedemptionRepository) Create(ctx context.Context, rec *redemption.Record) error {
	recordQuery := `
		INSERT INTO redemptions (id, customer_id, card_id, total_points, correlation_id, redeemed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, recordQuery,
		rec.ID,
		rec.CustomerID,
		rec.CardID,
		rec.TotalPoints,
		rec.CorrelationID,
		rec.RedeemedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create redemption", "id", rec.ID.String(), "error", err)
		return fmt.Errorf("failed to create redemption: %w", err)
	}

	itemQuery := `
		INSERT INTO redemption_items (id, redemption_id, reward_item_id, item_name, points_cost, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, it := range rec.Items {
		_, err := r.querier.Exec(ctx, itemQuery,
			it.ID,
			it.RedemptionID,
			it.RewardItemID,
			it.ItemName,
			it.PointsCost,
			it.Quantity,
		)
		if err != nil {
			r.logger.Error("Failed to create redemption item", "redemption_id", rec.ID.String(), "error", err)
			return fmt.Errorf("failed to create redemption item: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a redemption record with its item snapshots
func (r *RedemptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*redemption.Record, error) {
	query := `
		SELECT id, customer_id, card_id, total_points, correlation_id, redeemed_at
		FROM redemptions
		WHERE id = $1
	`

	var rec redemption.Record
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.CustomerID,
		&rec.CardID,
		&rec.TotalPoints,
		&rec.CorrelationID,
		&rec.RedeemedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, redemption.ErrRedemptionNotFound{RedemptionID: id}
		}
		r.logger.Error("Failed to get redemption", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get redemption: %w", err)
	}

	items, err := r.getItems(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Items = items

	return &rec, nil
}

// GetByCustomer retrieves a page of the customer's redemption history,
// newest first, with the total count for pagination metadata
func (r *RedemptionRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*redemption.Record, int, error) {
	countQuery := `SELECT COUNT(*) FROM redemptions WHERE customer_id = $1`

	var total int
	if err := r.querier.QueryRow(ctx, countQuery, customerID).Scan(&total); err != nil {
		r.logger.Error("Failed to count redemptions", "customer_id", customerID.String(), "error", err)
		return nil, 0, fmt.Errorf("failed to count redemptions: %w", err)
	}

	query := `
		SELECT id, customer_id, card_id, total_points, correlation_id, redeemed_at
		FROM redemptions
		WHERE customer_id = $1
		ORDER BY redeemed_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to get redemptions", "customer_id", customerID.String(), "error", err)
		return nil, 0, fmt.Errorf("failed to get redemptions: %w", err)
	}
	defer rows.Close()

	var records []*redemption.Record
	for rows.Next() {
		var rec redemption.Record
		err := rows.Scan(&rec.ID, &rec.CustomerID, &rec.CardID, &rec.TotalPoints, &rec.CorrelationID, &rec.RedeemedAt)
		if err != nil {
			r.logger.Error("Failed to scan redemption", "error", err)
			return nil, 0, fmt.Errorf("failed to scan redemption: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over redemptions", "error", err)
		return nil, 0, fmt.Errorf("error iterating over redemptions: %w", err)
	}

	for _, rec := range records {
		items, err := r.getItems(ctx, rec.ID)
		if err != nil {
			return nil, 0, err
		}
		rec.Items = items
	}

	return records, total, nil
}

func (r *RedemptionRepository) getItems(ctx context.Context, redemptionID uuid.UUID) ([]*redemption.Item, error) {
	query := `
		SELECT id, redemption_id, reward_item_id, item_name, points_cost, quantity
		FROM redemption_items
		WHERE redemption_id = $1
	`

	rows, err := r.querier.Query(ctx, query, redemptionID)
	if err != nil {
		r.logger.Error("Failed to get redemption items", "redemption_id", redemptionID.String(), "error", err)
		return nil, fmt.Errorf("failed to get redemption items: %w", err)
	}
	defer rows.Close()

	var items []*redemption.Item
	for rows.Next() {
		var it redemption.Item
		err := rows.Scan(&it.ID, &it.RedemptionID, &it.RewardItemID, &it.ItemName, &it.PointsCost, &it.Quantity)
		if err != nil {
			r.logger.Error("Failed to scan redemption item", "error", err)
			return nil, fmt.Errorf("failed to scan redemption item: %w", err)
		}
		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over redemption items", "error", err)
		return nil, fmt.Errorf("error iterating over redemption items: %w", err)
	}

	return items, nil
}
