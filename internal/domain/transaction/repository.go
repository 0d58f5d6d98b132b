package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Repository defines transaction persistence operations
type Repository interface {
	// CreateBatch inserts generated transactions in one round trip
	CreateBatch(ctx context.Context, txns []*Transaction) error

	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// GetByCard returns a page of transactions for a card, newest first
	GetByCard(ctx context.Context, cardID uuid.UUID, limit, offset int) ([]*Transaction, int, error)

	// GetUnprocessedByCard returns unprocessed transactions ordered by
	// transaction date so accrual is deterministic
	GetUnprocessedByCard(ctx context.Context, cardID uuid.UUID) ([]*Transaction, error)

	// MarkProcessed flips the processed flag and records the awarded points.
	// It returns ErrAlreadyProcessed when the flag was already set, which
	// callers treat as a signal to skip, not as a failure.
	MarkProcessed(ctx context.Context, id uuid.UUID, points decimal.Decimal) error

	WithTx(tx pgx.Tx) Repository
}

// ErrTransactionNotFound indicates missing transaction
type ErrTransactionNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrTransactionNotFound
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}

// ErrAlreadyProcessed indicates the transaction has already accrued points
type ErrAlreadyProcessed struct {
	TransactionID uuid.UUID
}

func (e ErrAlreadyProcessed) Error() string {
	return "transaction already processed: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrAlreadyProcessed
func (e ErrAlreadyProcessed) Is(target error) bool {
	t, ok := target.(ErrAlreadyProcessed)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}
