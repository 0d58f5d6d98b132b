package pointsledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurumx/reward-ledger/internal/domain/shared"
)

// Entry is one point movement in the audit ledger. ACCRUAL entries
// reference the transaction that earned the points and REDEMPTION entries
// reference the redemption record that spent them.
type Entry struct {
	EntryID       uuid.UUID        `bson:"entry_id" json:"entry_id"`
	CardID        uuid.UUID        `bson:"card_id" json:"card_id"`
	CustomerID    uuid.UUID        `bson:"customer_id" json:"customer_id"`
	Type          shared.EntryType `bson:"type" json:"type"`
	Points        decimal.Decimal  `bson:"points" json:"points"`
	ReferenceID   uuid.UUID        `bson:"reference_id" json:"reference_id"`
	CorrelationID string           `bson:"correlation_id" json:"correlation_id"`
	CreatedAt     time.Time        `bson:"created_at" json:"created_at"`
	RecordedAt    time.Time        `bson:"recorded_at" json:"recorded_at"`
}

// NewAccrual builds an accrual entry for a processed transaction
func NewAccrual(cardID, customerID, transactionID uuid.UUID, points decimal.Decimal, correlationID string) *Entry {
	return &Entry{
		EntryID:       uuid.New(),
		CardID:        cardID,
		CustomerID:    customerID,
		Type:          shared.EntryTypeAccrual,
		Points:        points,
		ReferenceID:   transactionID,
		CorrelationID: correlationID,
		CreatedAt:     time.Now(),
	}
}

// NewRedemption builds a redemption entry for a completed redemption
func NewRedemption(cardID, customerID, redemptionID uuid.UUID, points decimal.Decimal, correlationID string) *Entry {
	return &Entry{
		EntryID:       uuid.New(),
		CardID:        cardID,
		CustomerID:    customerID,
		Type:          shared.EntryTypeRedemption,
		Points:        points,
		ReferenceID:   redemptionID,
		CorrelationID: correlationID,
		CreatedAt:     time.Now(),
	}
}
