package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aurumx/reward-ledger/internal/domain/transaction"
	"github.com/aurumx/reward-ledger/internal/platform/persistence"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *TransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// CreateBatch inserts generated transactions. Callers run it inside a
// transaction via WithTx so a failed batch leaves nothing behind.
func (r *TransactionRepository) CreateBatch(ctx context.Context, txns []*transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, card_id, amount, merchant_name, transaction_date, processed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, t := range txns {
		_, err := r.querier.Exec(ctx, query,
			t.ID,
			t.CardID,
			t.Amount,
			t.MerchantName,
			t.TransactionDate,
			t.Processed,
			t.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert transaction", "id", t.ID.String(), "error", err)
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, card_id, amount, merchant_name, transaction_date, processed, reward_points, created_at
		FROM transactions
		WHERE id = $1
	`

	var t transaction.Transaction
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.CardID,
		&t.Amount,
		&t.MerchantName,
		&t.TransactionDate,
		&t.Processed,
		&t.RewardPoints,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &t, nil
}

// GetByCard retrieves a page of transactions for a card, newest first,
// along with the total count for pagination metadata
func (r *TransactionRepository) GetByCard(ctx context.Context, cardID uuid.UUID, limit, offset int) ([]*transaction.Transaction, int, error) {
	countQuery := `SELECT COUNT(*) FROM transactions WHERE card_id = $1`

	var total int
	if err := r.querier.QueryRow(ctx, countQuery, cardID).Scan(&total); err != nil {
		r.logger.Error("Failed to count transactions", "card_id", cardID.String(), "error", err)
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `
		SELECT id, card_id, amount, merchant_name, transaction_date, processed, reward_points, created_at
		FROM transactions
		WHERE card_id = $1
		ORDER BY transaction_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, cardID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to get transactions", "card_id", cardID.String(), "error", err)
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	txns, err := r.scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}

// GetUnprocessedByCard retrieves unprocessed transactions for a card ordered
// by transaction date so accrual is deterministic
func (r *TransactionRepository) GetUnprocessedByCard(ctx context.Context, cardID uuid.UUID) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, card_id, amount, merchant_name, transaction_date, processed, reward_points, created_at
		FROM transactions
		WHERE card_id = $1 AND processed = false
		ORDER BY transaction_date ASC
	`

	rows, err := r.querier.Query(ctx, query, cardID)
	if err != nil {
		r.logger.Error("Failed to get unprocessed transactions", "card_id", cardID.String(), "error", err)
		return nil, fmt.Errorf("failed to get unprocessed transactions: %w", err)
	}
	defer rows.Close()

	return r.scanTransactions(rows)
}

// MarkProcessed flips the processed flag and records the awarded points.
// The processed = false guard makes accrual exactly-once: a second attempt
// matches zero rows and gets ErrAlreadyProcessed.
func (r *TransactionRepository) MarkProcessed(ctx context.Context, id uuid.UUID, points decimal.Decimal) error {
	query := `
		UPDATE transactions
		SET processed = true, reward_points = $1
		WHERE id = $2 AND processed = false
	`

	result, err := r.querier.Exec(ctx, query, points, id)
	if err != nil {
		r.logger.Error("Failed to mark transaction processed", "id", id.String(), "error", err)
		return fmt.Errorf("failed to mark transaction processed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrAlreadyProcessed{TransactionID: id}
	}

	return nil
}

func (r *TransactionRepository) scanTransactions(rows pgx.Rows) ([]*transaction.Transaction, error) {
	var txns []*transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		err := rows.Scan(
			&t.ID,
			&t.CardID,
			&t.Amount,
			&t.MerchantName,
			&t.TransactionDate,
			&t.Processed,
			&t.RewardPoints,
			&t.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan transaction", "error", err)
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, &t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over transactions", "error", err)
		return nil, fmt.Errorf("error iterating over transactions: %w", err)
	}

	return txns, nil
}
