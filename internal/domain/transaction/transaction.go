package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a purchase made with a credit card. Transactions arrive
// unprocessed and are marked processed exactly once when reward points are
// accrued for them.
type Transaction struct {
	ID              uuid.UUID        `json:"id"`
	CardID          uuid.UUID        `json:"card_id"`
	Amount          decimal.Decimal  `json:"amount"`
	MerchantName    string           `json:"merchant_name"`
	TransactionDate time.Time        `json:"transaction_date"`
	Processed       bool             `json:"processed"`
	RewardPoints    *decimal.Decimal `json:"reward_points,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// New creates an unprocessed transaction
func New(cardID uuid.UUID, amount decimal.Decimal, merchantName string, date time.Time) *Transaction {
	return &Transaction{
		ID:              uuid.New(),
		CardID:          cardID,
		Amount:          amount,
		MerchantName:    merchantName,
		TransactionDate: date,
		Processed:       false,
		CreatedAt:       time.Now(),
	}
}
