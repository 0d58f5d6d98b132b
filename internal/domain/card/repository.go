package card

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to credit cards
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CreditCard, error)
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*CreditCard, error)
}

// ErrCardNotFound indicates missing credit card
type ErrCardNotFound struct {
	CardID uuid.UUID
}

func (e ErrCardNotFound) Error() string {
	return "credit card not found: " + e.CardID.String()
}

// Is implements the errors.Is interface for ErrCardNotFound
func (e ErrCardNotFound) Is(target error) bool {
	t, ok := target.(ErrCardNotFound)
	if !ok {
		return false
	}
	if t.CardID == uuid.Nil {
		return true
	}
	return e.CardID == t.CardID
}
