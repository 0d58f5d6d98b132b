package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one line of a customer's cart. Item name and point cost are
// denormalized at add time so the cart keeps rendering even if the catalog
// entry changes underneath it; availability is re-checked at redemption.
type Item struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	RewardItemID uuid.UUID       `json:"reward_item_id"`
	ItemName     string          `json:"item_name"`
	PointsCost   decimal.Decimal `json:"points_cost"`
	Quantity     int             `json:"quantity"`
	AddedAt      time.Time       `json:"added_at"`
}

// Subtotal is the item's point cost times quantity
func (i *Item) Subtotal() decimal.Decimal {
	return i.PointsCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is a customer's current cart. TotalPoints is always computed from
// the items, never stored.
type Cart struct {
	CustomerID  uuid.UUID       `json:"customer_id"`
	Items       []*Item         `json:"items"`
	TotalPoints decimal.Decimal `json:"total_points"`
}

// NewCart assembles a cart view from its items
func NewCart(customerID uuid.UUID, items []*Item) *Cart {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return &Cart{
		CustomerID:  customerID,
		Items:       items,
		TotalPoints: total,
	}
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
