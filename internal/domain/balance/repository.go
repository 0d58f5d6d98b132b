package balance

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Repository defines card balance persistence operations
type Repository interface {
	GetByCard(ctx context.Context, cardID uuid.UUID) (*CardBalance, error)

	// GetByCustomer returns all balance rows for a customer's cards in a
	// single query so the aggregate is computed from one consistent snapshot
	GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]*CardBalance, error)

	// ApplyCredit atomically increments both the balance and the lifetime
	// total, creating the row on first accrual for the card
	ApplyCredit(ctx context.Context, cardID, customerID uuid.UUID, points decimal.Decimal) error

	// Update persists a mutated balance using optimistic locking
	Update(ctx context.Context, bal *CardBalance) error

	// LockForUpdate acquires a pessimistic lock for redemption processing
	LockForUpdate(ctx context.Context, cardID uuid.UUID) (*CardBalance, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrBalanceNotFound indicates the card has no balance row yet
type ErrBalanceNotFound struct {
	CardID uuid.UUID
}

func (e ErrBalanceNotFound) Error() string {
	return "card balance not found: " + e.CardID.String()
}

// Is implements the errors.Is interface for ErrBalanceNotFound
func (e ErrBalanceNotFound) Is(target error) bool {
	t, ok := target.(ErrBalanceNotFound)
	if !ok {
		return false
	}
	if t.CardID == uuid.Nil {
		return true
	}
	return e.CardID == t.CardID
}

// ErrConcurrentModification indicates optimistic lock failure
type ErrConcurrentModification struct {
	CardID uuid.UUID
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for card balance: " + e.CardID.String()
}

// Is implements the errors.Is interface for ErrConcurrentModification
func (e ErrConcurrentModification) Is(target error) bool {
	t, ok := target.(ErrConcurrentModification)
	if !ok {
		return false
	}
	if t.CardID == uuid.Nil {
		return true
	}
	return e.CardID == t.CardID
}
