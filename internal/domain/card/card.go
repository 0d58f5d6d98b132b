package card

import (
	"time"

	"github.com/google/uuid"
)

// CreditCard represents a customer's registered credit card. Cards are
// immutable after creation except for soft-delete; card CRUD is owned by
// the admin surface and the reward engine only reads them.
type CreditCard struct {
	ID             uuid.UUID `json:"id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	CardNumber     string    `json:"-"`
	CardHolderName string    `json:"card_holder_name"`
	ExpiryDate     time.Time `json:"expiry_date"`
	Deleted        bool      `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// MaskedNumber returns the card number with all but the last four digits hidden
func (c *CreditCard) MaskedNumber() string {
	if len(c.CardNumber) < 4 {
		return "****"
	}
	return "**** **** **** " + c.CardNumber[len(c.CardNumber)-4:]
}

// BelongsTo reports whether the card is owned by the given customer
func (c *CreditCard) BelongsTo(customerID uuid.UUID) bool {
	return c.CustomerID == customerID
}
