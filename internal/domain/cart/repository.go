package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Common errors
var ErrEmptyCart = errors.New("cart is empty")

// Repository defines cart persistence operations
type Repository interface {
	GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Item, error)
	GetItem(ctx context.Context, cartItemID uuid.UUID) (*Item, error)

	// Upsert inserts the item or, when the customer already has the same
	// reward item in the cart, increments its quantity instead
	Upsert(ctx context.Context, item *Item) (*Item, error)

	UpdateQuantity(ctx context.Context, cartItemID uuid.UUID, quantity int) (*Item, error)
	Delete(ctx context.Context, cartItemID uuid.UUID) error

	// DeleteByCustomer clears the customer's cart, returning the number of
	// removed lines
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) (int, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrCartItemNotFound indicates missing cart line
type ErrCartItemNotFound struct {
	CartItemID uuid.UUID
}

func (e ErrCartItemNotFound) Error() string {
	return "cart item not found: " + e.CartItemID.String()
}

// Is implements the errors.Is interface for ErrCartItemNotFound
func (e ErrCartItemNotFound) Is(target error) bool {
	t, ok := target.(ErrCartItemNotFound)
	if !ok {
		return false
	}
	if t.CartItemID == uuid.Nil {
		return true
	}
	return e.CartItemID == t.CartItemID
}
