package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/platform/persistence"
)

// CardRepository implements the card.Repository interface for PostgreSQL
type CardRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCardRepository creates a new PostgreSQL credit card repository
func NewCardRepository(logger *slog.Logger, db *persistence.PostgresDB) card.Repository {
	return &CardRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// GetByID retrieves a credit card by ID, treating soft-deleted rows as absent
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*card.CreditCard, error) {
	query := `
		SELECT id, customer_id, card_number, card_holder_name, expiry_date, deleted, created_at
		FROM credit_cards
		WHERE id = $1 AND deleted = false
	`

	var c card.CreditCard
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.CustomerID,
		&c.CardNumber,
		&c.CardHolderName,
		&c.ExpiryDate,
		&c.Deleted,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrCardNotFound{CardID: id}
		}
		r.logger.Error("Failed to get credit card", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}

	return &c, nil
}

// GetByCustomerID retrieves all active credit cards for a customer
func (r *CardRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*card.CreditCard, error) {
	query := `
		SELECT id, customer_id, card_number, card_holder_name, expiry_date, deleted, created_at
		FROM credit_cards
		WHERE customer_id = $1 AND deleted = false
		ORDER BY created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error("Failed to get credit cards", "customer_id", customerID.String(), "error", err)
		return nil, fmt.Errorf("failed to get credit cards: %w", err)
	}
	defer rows.Close()

	var cards []*card.CreditCard
	for rows.Next() {
		var c card.CreditCard
		err := rows.Scan(
			&c.ID,
			&c.CustomerID,
			&c.CardNumber,
			&c.CardHolderName,
			&c.ExpiryDate,
			&c.Deleted,
			&c.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan credit card", "error", err)
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		cards = append(cards, &c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over credit cards", "error", err)
		return nil, fmt.Errorf("error iterating over credit cards: %w", err)
	}

	return cards, nil
}
