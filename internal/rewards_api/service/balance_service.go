package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/customer"
	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
)

// BalanceServiceImpl implements the BalanceService interface
type BalanceServiceImpl struct {
	customerRepo customer.Repository
	cardRepo     card.Repository
	balanceRepo  balance.Repository
	ledgerRepo   pointsledger.Repository
	cache        SummaryCache
	logger       *slog.Logger
}

// NewBalanceService creates a new balance service
func NewBalanceService(
	logger *slog.Logger,
	customerRepo customer.Repository,
	cardRepo card.Repository,
	balanceRepo balance.Repository,
	ledgerRepo pointsledger.Repository,
	cache SummaryCache,
) BalanceService {
	return &BalanceServiceImpl{
		customerRepo: customerRepo,
		cardRepo:     cardRepo,
		balanceRepo:  balanceRepo,
		ledgerRepo:   ledgerRepo,
		cache:        cache,
		logger:       logger,
	}
}

// GetCustomerSummary aggregates point balances across all the customer's cards.
// The summary is cached; a cache error degrades to a database read.
func (s *BalanceServiceImpl) GetCustomerSummary(ctx context.Context, customerID uuid.UUID) (*balance.Summary, error) {
	if cached, err := s.cache.Get(ctx, customerID); err == nil && cached != nil {
		s.logger.Debug("Balance summary served from cache", "customer_id", customerID.String())
		return cached, nil
	}

	cust, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	byCard := make(map[uuid.UUID]*balance.CardBalance, len(balances))
	for _, b := range balances {
		byCard[b.CardID] = b
	}

	summary := &balance.Summary{
		CustomerID:     cust.ID,
		CustomerName:   cust.Name,
		TotalPoints:    decimal.Zero,
		LifetimeEarned: decimal.Zero,
		Cards:          make([]balance.CardSummary, 0, len(cards)),
	}

	// Cards that never accrued points still appear, with zero balances
	for _, c := range cards {
		cardSummary := balance.CardSummary{
			CardID:         c.ID,
			MaskedNumber:   c.MaskedNumber(),
			PointsBalance:  decimal.Zero,
			LifetimeEarned: decimal.Zero,
		}
		if b, ok := byCard[c.ID]; ok {
			cardSummary.PointsBalance = b.PointsBalance
			cardSummary.LifetimeEarned = b.LifetimeEarned
		}
		summary.TotalPoints = summary.TotalPoints.Add(cardSummary.PointsBalance)
		summary.LifetimeEarned = summary.LifetimeEarned.Add(cardSummary.LifetimeEarned)
		summary.Cards = append(summary.Cards, cardSummary)
	}

	if err := s.cache.Set(ctx, summary); err != nil {
		s.logger.Warn("Failed to cache balance summary", "customer_id", customerID.String(), "error", err)
	}

	return summary, nil
}

// GetCardBalance returns the balance for one card. A card that has never
// accrued points reports a zero balance instead of an error.
func (s *BalanceServiceImpl) GetCardBalance(ctx context.Context, cardID uuid.UUID) (*balance.CardBalance, error) {
	c, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	b, err := s.balanceRepo.GetByCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, balance.ErrBalanceNotFound{}) {
			return balance.NewCardBalance(c.ID, c.CustomerID), nil
		}
		return nil, err
	}

	return b, nil
}

// GetCardLedger returns the card's point movement history from the audit ledger
func (s *BalanceServiceImpl) GetCardLedger(ctx context.Context, cardID uuid.UUID, page, perPage int) ([]*pointsledger.Entry, int, error) {
	if _, err := s.cardRepo.GetByID(ctx, cardID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	return s.ledgerRepo.GetByCard(ctx, cardID, perPage, offset)
}
