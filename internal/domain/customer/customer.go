package customer

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies a customer for accrual rate purposes
type Type string

const (
	TypeRegular Type = "REGULAR"
	TypePremium Type = "PREMIUM"
)

// Customer is the owning entity for credit cards and carts. Customer CRUD
// lives in the admin surface; the reward engine only ever reads these rows.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CustomerType Type      `json:"customer_type"`
	Deleted      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ErrCustomerNotFound indicates missing (or soft-deleted) customer
type ErrCustomerNotFound struct {
	CustomerID uuid.UUID
}

func (e ErrCustomerNotFound) Error() string {
	return "customer not found: " + e.CustomerID.String()
}

// Is implements the errors.Is interface for ErrCustomerNotFound
func (e ErrCustomerNotFound) Is(target error) bool {
	t, ok := target.(ErrCustomerNotFound)
	if !ok {
		return false
	}
	if t.CustomerID == uuid.Nil {
		return true
	}
	return e.CustomerID == t.CustomerID
}
