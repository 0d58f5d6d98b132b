package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/domain/cart"
	"github.com/aurumx/reward-ledger/internal/domain/catalog"
	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
	"github.com/aurumx/reward-ledger/internal/domain/redemption"
	"github.com/aurumx/reward-ledger/internal/domain/shared"
	"github.com/aurumx/reward-ledger/internal/domain/transaction"
)

// TxRunner runs a function within a database transaction
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// SummaryCache caches customer balance summaries. Implementations must treat
// a miss as (nil, nil) so callers can fall through to the database.
type SummaryCache interface {
	Get(ctx context.Context, customerID uuid.UUID) (*balance.Summary, error)
	Set(ctx context.Context, summary *balance.Summary) error
	Invalidate(ctx context.Context, customerID uuid.UUID) error
}

// CardAccrualResult reports the accrual outcome for one credit card
type CardAccrualResult struct {
	CardID        uuid.UUID       `json:"card_id"`
	Processed     int             `json:"processed"`
	Skipped       int             `json:"skipped"`
	Failed        int             `json:"failed"`
	PointsAwarded decimal.Decimal `json:"points_awarded"`
}

// AccrualResult reports the accrual outcome across one or more cards
type AccrualResult struct {
	CustomerID    uuid.UUID           `json:"customer_id"`
	Cards         []CardAccrualResult `json:"cards"`
	Processed     int                 `json:"processed"`
	Skipped       int                 `json:"skipped"`
	Failed        int                 `json:"failed"`
	PointsAwarded decimal.Decimal     `json:"points_awarded"`
}

// BalanceService defines balance and ledger query operations
type BalanceService interface {
	// GetCustomerSummary aggregates point balances across all the customer's
	// cards. Results are served from cache when fresh.
	GetCustomerSummary(ctx context.Context, customerID uuid.UUID) (*balance.Summary, error)

	// GetCardBalance returns the balance row for one card. Cards that have
	// never accrued points report a zero balance.
	GetCardBalance(ctx context.Context, cardID uuid.UUID) (*balance.CardBalance, error)

	// GetCardLedger returns the card's point movement history, newest first
	GetCardLedger(ctx context.Context, cardID uuid.UUID, page, perPage int) ([]*pointsledger.Entry, int, error)
}

// AccrualService defines reward point accrual operations
type AccrualService interface {
	// ProcessCustomer accrues points for all unprocessed transactions across
	// every card the customer owns
	ProcessCustomer(ctx context.Context, customerID uuid.UUID, correlationID string) (*AccrualResult, error)

	// ProcessCard accrues points for all unprocessed transactions on one card
	ProcessCard(ctx context.Context, cardID uuid.UUID, correlationID string) (*AccrualResult, error)
}

// CartService defines cart operations
type CartService interface {
	// AddItem puts a catalog item in the customer's cart, incrementing
	// quantity when the item is already there.
	// Returns ErrItemUnavailable when the item cannot currently be redeemed.
	AddItem(ctx context.Context, customerID, rewardItemID uuid.UUID, quantity int) (*cart.Item, error)

	GetCart(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error)

	// UpdateItemQuantity sets a cart line's quantity. A quantity of zero or
	// less removes the line and returns a nil item.
	UpdateItemQuantity(ctx context.Context, cartItemID uuid.UUID, quantity int) (*cart.Item, error)

	RemoveItem(ctx context.Context, cartItemID uuid.UUID) error

	// ClearCart empties the cart and reports how many lines were removed
	ClearCart(ctx context.Context, customerID uuid.UUID) (int, error)
}

// RedemptionService defines redemption operations
type RedemptionService interface {
	// Redeem spends points from the chosen card to redeem the customer's
	// entire cart, all or nothing.
	// Returns balance.ErrInsufficientBalance when the card cannot cover the
	// cart total and cart.ErrEmptyCart when there is nothing to redeem.
	Redeem(ctx context.Context, customerID, cardID uuid.UUID, correlationID string) (*redemption.Record, error)

	// GetHistory returns the customer's past redemptions, newest first
	GetHistory(ctx context.Context, customerID uuid.UUID, page, perPage int) ([]*redemption.Record, int, error)
}

// CatalogService defines reward catalog queries
type CatalogService interface {
	GetCategories(ctx context.Context) ([]*catalog.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error)
	GetAvailableItems(ctx context.Context) ([]*catalog.Item, error)
	GetItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Item, error)
	GetItemByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error)
}

// TransactionService defines transaction queries and generation requests
type TransactionService interface {
	// RequestGeneration asks the worker to create simulated transactions for
	// a card. The request is published to Kafka and processed asynchronously.
	RequestGeneration(ctx context.Context, cardID uuid.UUID, count int, correlationID string) (*shared.GenerationRequest, error)

	// GetByCard returns a page of the card's transactions, newest first
	GetByCard(ctx context.Context, cardID uuid.UUID, page, perPage int) ([]*transaction.Transaction, int, error)
}
