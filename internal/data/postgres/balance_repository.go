package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/platform/persistence"
)

// BalanceRepository implements the balance.Repository interface for PostgreSQL
type BalanceRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewBalanceRepository creates a new PostgreSQL card balance repository
func NewBalanceRepository(logger *slog.Logger, db *persistence.PostgresDB) balance.Repository {
	return &BalanceRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic operations
// across multiple repository calls
func (r *BalanceRepository) WithTx(tx pgx.Tx) balance.Repository {
	return &BalanceRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// GetByCard retrieves the balance row for a credit card
func (r *BalanceRepository) GetByCard(ctx context.Context, cardID uuid.UUID) (*balance.CardBalance, error) {
	query := `
		SELECT card_id, customer_id, points_balance, lifetime_earned, version, updated_at
		FROM card_balances
		WHERE card_id = $1
	`

	var b balance.CardBalance
	err := r.querier.QueryRow(ctx, query, cardID).Scan(
		&b.CardID,
		&b.CustomerID,
		&b.PointsBalance,
		&b.LifetimeEarned,
		&b.Version,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, balance.ErrBalanceNotFound{CardID: cardID}
		}
		r.logger.Error("Failed to get card balance", "card_id", cardID.String(), "error", err)
		return nil, fmt.Errorf("failed to get card balance: %w", err)
	}

	return &b, nil
}

// GetByCustomer retrieves all balance rows for a customer's cards
func (r *BalanceRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]*balance.CardBalance, error) {
	query := `
		SELECT card_id, customer_id, points_balance, lifetime_earned, version, updated_at
		FROM card_balances
		WHERE customer_id = $1
		ORDER BY card_id ASC
	`

	rows, err := r.querier.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error("Failed to get card balances", "customer_id", customerID.String(), "error", err)
		return nil, fmt.Errorf("failed to get card balances: %w", err)
	}
	defer rows.Close()

	var balances []*balance.CardBalance
	for rows.Next() {
		var b balance.CardBalance
		err := rows.Scan(
			&b.CardID,
			&b.CustomerID,
			&b.PointsBalance,
			&b.LifetimeEarned,
			&b.Version,
			&b.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan card balance", "error", err)
			return nil, fmt.Errorf("failed to scan card balance: %w", err)
		}
		balances = append(balances, &b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over card balances", "error", err)
		return nil, fmt.Errorf("error iterating over card balances: %w", err)
	}

	return balances, nil
}

// ApplyCredit atomically increments the balance and lifetime totals, creating
// the row on first accrual for the card
func (r *BalanceRepository) ApplyCredit(ctx context.Context, cardID, customerID uuid.UUID, points decimal.Decimal) error {
	query := `
		INSERT INTO card_balances (card_id, customer_id, points_balance, lifetime_earned, version, updated_at)
		VALUES ($1, $2, $3, $3, 1, NOW())
		ON CONFLICT (card_id) DO UPDATE
		SET points_balance = card_balances.points_balance + EXCLUDED.points_balance,
		    lifetime_earned = card_balances.lifetime_earned + EXCLUDED.lifetime_earned,
		    version = card_balances.version + 1,
		    updated_at = NOW()
	`

	_, err := r.querier.Exec(ctx, query, cardID, customerID, points)
	if err != nil {
		r.logger.Error("Failed to apply credit to card balance", "card_id", cardID.String(), "error", err)
		return fmt.Errorf("failed to apply credit to card balance: %w", err)
	}

	return nil
}

// Update persists a mutated balance using optimistic locking.
// Returns ErrConcurrentModification if the row was modified between read and update.
func (r *BalanceRepository) Update(ctx context.Context, bal *balance.CardBalance) error {
	query := `
		UPDATE card_balances
		SET points_balance = $1, lifetime_earned = $2, version = $3, updated_at = $4
		WHERE card_id = $5 AND version = $6
	`

	result, err := r.querier.Exec(ctx, query,
		bal.PointsBalance,
		bal.LifetimeEarned,
		bal.Version,
		bal.UpdatedAt,
		bal.CardID,
		bal.Version-1, // Check previous version for optimistic locking
	)
	if err != nil {
		r.logger.Error("Failed to update card balance", "card_id", bal.CardID.String(), "error", err)
		return fmt.Errorf("failed to update card balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return balance.ErrConcurrentModification{CardID: bal.CardID}
	}

	return nil
}

// LockForUpdate obtains a pessimistic lock on the balance row and returns its
// current state. This should be used within a transaction when strong
// consistency is required.
func (r *BalanceRepository) LockForUpdate(ctx context.Context, cardID uuid.UUID) (*balance.CardBalance, error) {
	query := `
		SELECT card_id, customer_id, points_balance, lifetime_earned, version, updated_at
		FROM card_balances
		WHERE card_id = $1
		FOR UPDATE
	`

	var b balance.CardBalance
	err := r.querier.QueryRow(ctx, query, cardID).Scan(
		&b.CardID,
		&b.CustomerID,
		&b.PointsBalance,
		&b.LifetimeEarned,
		&b.Version,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, balance.ErrBalanceNotFound{CardID: cardID}
		}
		r.logger.Error("Failed to lock card balance for update", "card_id", cardID.String(), "error", err)
		return nil, fmt.Errorf("failed to lock card balance for update: %w", err)
	}

	return &b, nil
}
