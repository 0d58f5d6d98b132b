package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/cart"
	"github.com/aurumx/reward-ledger/internal/domain/catalog"
	"github.com/aurumx/reward-ledger/internal/domain/customer"
	"github.com/aurumx/reward-ledger/internal/domain/outbox"
	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
	"github.com/aurumx/reward-ledger/internal/domain/redemption"
)

// ErrCardNotOwned indicates the card does not belong to the redeeming customer
var ErrCardNotOwned = errors.New("credit card does not belong to customer")

// RedemptionServiceImpl implements the RedemptionService interface
type RedemptionServiceImpl struct {
	db             TxRunner
	customerRepo   customer.Repository
	cardRepo       card.Repository
	catalogRepo    catalog.Repository
	cartRepo       cart.Repository
	balanceRepo    balance.Repository
	redemptionRepo redemption.Repository
	outboxRepo     outbox.Repository
	cache          SummaryCache
	logger         *slog.Logger
}

// NewRedemptionService creates a new redemption service
func NewRedemptionService(
	logger *slog.Logger,
	db TxRunner,
	customerRepo customer.Repository,
	cardRepo card.Repository,
	catalogRepo catalog.Repository,
	cartRepo cart.Repository,
	balanceRepo balance.Repository,
	redemptionRepo redemption.Repository,
	outboxRepo outbox.Repository,
	cache SummaryCache,
) RedemptionService {
	return &RedemptionServiceImpl{
		db:             db,
		customerRepo:   customerRepo,
		cardRepo:       cardRepo,
		catalogRepo:    catalogRepo,
		cartRepo:       cartRepo,
		balanceRepo:    balanceRepo,
		redemptionRepo: redemptionRepo,
		outboxRepo:     outboxRepo,
		cache:          cache,
		logger:         logger,
	}
}

// Redeem spends points from the chosen card to redeem the entire cart.
// The debit, the redemption record, the cart clear, and the outbox entry all
// commit in one database transaction, so the operation is all or nothing.
func (s *RedemptionServiceImpl) Redeem(ctx context.Context, customerID, cardID uuid.UUID, correlationID string) (*redemption.Record, error) {
	cust, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	c, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if !c.BelongsTo(cust.ID) {
		return nil, ErrCardNotOwned
	}

	items, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	currentCart := cart.NewCart(customerID, items)
	if currentCart.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	// Availability is re-checked at redemption time; the cart's denormalized
	// snapshot only protects rendering, not redemption
	for _, line := range currentCart.Items {
		item, err := s.catalogRepo.GetItemByID(ctx, line.RewardItemID)
		if err != nil {
			if errors.Is(err, catalog.ErrItemNotFound{}) {
				return nil, catalog.ErrItemUnavailable{ItemID: line.RewardItemID}
			}
			return nil, err
		}
		if !item.Available {
			return nil, catalog.ErrItemUnavailable{ItemID: item.ID}
		}
	}

	rec := redemption.NewRecord(cust.ID, c.ID, currentCart, correlationID)

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		bal, err := s.balanceRepo.WithTx(tx).LockForUpdate(ctx, c.ID)
		if err != nil {
			// A card that never accrued has no balance row and cannot cover
			// a non-empty cart
			if errors.Is(err, balance.ErrBalanceNotFound{}) {
				return balance.ErrInsufficientBalance
			}
			return err
		}

		if err := bal.Debit(rec.TotalPoints); err != nil {
			return err
		}

		if err := s.balanceRepo.WithTx(tx).Update(ctx, bal); err != nil {
			return err
		}

		if err := s.redemptionRepo.WithTx(tx).Create(ctx, rec); err != nil {
			return err
		}

		if _, err := s.cartRepo.WithTx(tx).DeleteByCustomer(ctx, cust.ID); err != nil {
			return err
		}

		entry := pointsledger.NewRedemption(c.ID, cust.ID, rec.ID, rec.TotalPoints, correlationID)
		msg, err := outbox.NewMessage(entry)
		if err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, cust.ID); err != nil {
		s.logger.Warn("Failed to invalidate balance summary cache", "customer_id", cust.ID.String(), "error", err)
	}

	s.logger.Info("Redemption completed",
		"redemption_id", rec.ID.String(),
		"customer_id", cust.ID.String(),
		"card_id", c.ID.String(),
		"total_points", rec.TotalPoints.String(),
		"items", len(rec.Items),
	)

	return rec, nil
}

// GetHistory returns the customer's past redemptions, newest first
func (s *RedemptionServiceImpl) GetHistory(ctx context.Context, customerID uuid.UUID, page, perPage int) ([]*redemption.Record, int, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	return s.redemptionRepo.GetByCustomer(ctx, customerID, perPage, offset)
}
