package redemption

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurumx/reward-ledger/internal/domain/cart"
)

// Item is a snapshot of one redeemed cart line. Name and cost are copied
// at redemption time so the record stays stable if the catalog changes.
type Item struct {
	ID           uuid.UUID       `json:"id"`
	RedemptionID uuid.UUID       `json:"redemption_id"`
	RewardItemID uuid.UUID       `json:"reward_item_id"`
	ItemName     string          `json:"item_name"`
	PointsCost   decimal.Decimal `json:"points_cost"`
	Quantity     int             `json:"quantity"`
}

// Record is a completed redemption. Records are append-only; once written
// they are never updated or deleted.
type Record struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CardID        uuid.UUID       `json:"card_id"`
	TotalPoints   decimal.Decimal `json:"total_points"`
	Items         []*Item         `json:"items"`
	CorrelationID string          `json:"-"`
	RedeemedAt    time.Time       `json:"redeemed_at"`
}

// NewRecord builds a redemption record from the customer's cart, snapshotting
// every line
func NewRecord(customerID, cardID uuid.UUID, c *cart.Cart, correlationID string) *Record {
	rec := &Record{
		ID:            uuid.New(),
		CustomerID:    customerID,
		CardID:        cardID,
		TotalPoints:   c.TotalPoints,
		CorrelationID: correlationID,
		RedeemedAt:    time.Now(),
	}
	for _, line := range c.Items {
		rec.Items = append(rec.Items, &Item{
			ID:           uuid.New(),
			RedemptionID: rec.ID,
			RewardItemID: line.RewardItemID,
			ItemName:     line.ItemName,
			PointsCost:   line.PointsCost,
			Quantity:     line.Quantity,
		})
	}
	return rec
}
