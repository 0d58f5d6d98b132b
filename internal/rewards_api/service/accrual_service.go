package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aurumx/reward-ledger/internal/config"
	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/customer"
	"github.com/aurumx/reward-ledger/internal/domain/outbox"
	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
	"github.com/aurumx/reward-ledger/internal/domain/transaction"
)

var oneHundred = decimal.NewFromInt(100)

// AccrualServiceImpl implements the AccrualService interface
type AccrualServiceImpl struct {
	db           TxRunner
	customerRepo customer.Repository
	cardRepo     card.Repository
	txnRepo      transaction.Repository
	balanceRepo  balance.Repository
	outboxRepo   outbox.Repository
	cache        SummaryCache
	rewardsCfg   *config.RewardsConfig
	logger       *slog.Logger
}

// NewAccrualService creates a new accrual service
func NewAccrualService(
	logger *slog.Logger,
	db TxRunner,
	customerRepo customer.Repository,
	cardRepo card.Repository,
	txnRepo transaction.Repository,
	balanceRepo balance.Repository,
	outboxRepo outbox.Repository,
	cache SummaryCache,
	rewardsCfg *config.RewardsConfig,
) AccrualService {
	return &AccrualServiceImpl{
		db:           db,
		customerRepo: customerRepo,
		cardRepo:     cardRepo,
		txnRepo:      txnRepo,
		balanceRepo:  balanceRepo,
		outboxRepo:   outboxRepo,
		cache:        cache,
		rewardsCfg:   rewardsCfg,
		logger:       logger,
	}
}

// accrualPercentage returns the percentage of the transaction amount earned
// as points for the given customer classification
func (s *AccrualServiceImpl) accrualPercentage(custType customer.Type) decimal.Decimal {
	pct := s.rewardsCfg.RegularPercentage
	if custType == customer.TypePremium {
		pct = s.rewardsCfg.PremiumPercentage
	}
	return decimal.NewFromInt(int64(pct))
}

// pointsFor computes the points earned by one transaction: the configured
// percentage of the amount, rounded down to a whole point
func (s *AccrualServiceImpl) pointsFor(amount decimal.Decimal, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(oneHundred).Floor()
}

// ProcessCustomer accrues points for every card the customer owns
func (s *AccrualServiceImpl) ProcessCustomer(ctx context.Context, customerID uuid.UUID, correlationID string) (*AccrualResult, error) {
	cust, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	result := &AccrualResult{
		CustomerID:    cust.ID,
		PointsAwarded: decimal.Zero,
	}
	pct := s.accrualPercentage(cust.CustomerType)

	for _, c := range cards {
		cardResult, err := s.processCard(ctx, c, cust, pct, correlationID)
		if err != nil {
			return nil, err
		}
		result.Cards = append(result.Cards, *cardResult)
		result.Processed += cardResult.Processed
		result.Skipped += cardResult.Skipped
		result.Failed += cardResult.Failed
		result.PointsAwarded = result.PointsAwarded.Add(cardResult.PointsAwarded)
	}

	if result.Processed > 0 {
		if err := s.cache.Invalidate(ctx, cust.ID); err != nil {
			s.logger.Warn("Failed to invalidate balance summary cache", "customer_id", cust.ID.String(), "error", err)
		}
	}

	return result, nil
}

// ProcessCard accrues points for all unprocessed transactions on one card
func (s *AccrualServiceImpl) ProcessCard(ctx context.Context, cardID uuid.UUID, correlationID string) (*AccrualResult, error) {
	c, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	cust, err := s.customerRepo.GetByID(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}

	pct := s.accrualPercentage(cust.CustomerType)
	cardResult, err := s.processCard(ctx, c, cust, pct, correlationID)
	if err != nil {
		return nil, err
	}

	result := &AccrualResult{
		CustomerID:    cust.ID,
		Cards:         []CardAccrualResult{*cardResult},
		Processed:     cardResult.Processed,
		Skipped:       cardResult.Skipped,
		Failed:        cardResult.Failed,
		PointsAwarded: cardResult.PointsAwarded,
	}

	if result.Processed > 0 {
		if err := s.cache.Invalidate(ctx, cust.ID); err != nil {
			s.logger.Warn("Failed to invalidate balance summary cache", "customer_id", cust.ID.String(), "error", err)
		}
	}

	return result, nil
}

// processCard runs accrual for one card. Each transaction accrues in its own
// database transaction so a failure affects only that transaction; the
// processed flag guard makes retries exactly-once.
func (s *AccrualServiceImpl) processCard(ctx context.Context, c *card.CreditCard, cust *customer.Customer, pct decimal.Decimal, correlationID string) (*CardAccrualResult, error) {
	txns, err := s.txnRepo.GetUnprocessedByCard(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	result := &CardAccrualResult{
		CardID:        c.ID,
		PointsAwarded: decimal.Zero,
	}

	for _, txn := range txns {
		points := s.pointsFor(txn.Amount, pct)

		err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
			if err := s.txnRepo.WithTx(tx).MarkProcessed(ctx, txn.ID, points); err != nil {
				return err
			}

			if points.IsPositive() {
				if err := s.balanceRepo.WithTx(tx).ApplyCredit(ctx, c.ID, cust.ID, points); err != nil {
					return err
				}
			}

			entry := pointsledger.NewAccrual(c.ID, cust.ID, txn.ID, points, correlationID)
			msg, err := outbox.NewMessage(entry)
			if err != nil {
				return err
			}
			return s.outboxRepo.WithTx(tx).Create(ctx, msg)
		})

		switch {
		case err == nil:
			result.Processed++
			result.PointsAwarded = result.PointsAwarded.Add(points)
		case errors.Is(err, transaction.ErrAlreadyProcessed{}):
			// Another accrual run got there first; nothing to do
			result.Skipped++
		default:
			s.logger.Error("Failed to accrue points for transaction",
				"transaction_id", txn.ID.String(),
				"card_id", c.ID.String(),
				"error", err,
			)
			result.Failed++
		}
	}

	s.logger.Info("Accrual run completed",
		"card_id", c.ID.String(),
		"customer_id", cust.ID.String(),
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"points_awarded", result.PointsAwarded.String(),
	)

	return result, nil
}
