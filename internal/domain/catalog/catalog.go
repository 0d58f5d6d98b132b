package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups redeemable items in the reward catalog
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item is a redeemable reward priced in points
type Item struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PointsCost  decimal.Decimal `json:"points_cost"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
}
