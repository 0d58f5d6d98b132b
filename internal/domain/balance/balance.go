package balance

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrInsufficientBalance = errors.New("insufficient point balance for debit")
	ErrInvalidPoints       = errors.New("points must be positive")
)

// CardBalance is the authoritative point ledger row for one credit card.
// PointsBalance never goes negative and LifetimeEarned never decreases;
// every mutation goes through Credit or Debit and bumps Version.
type CardBalance struct {
	CardID         uuid.UUID       `json:"card_id"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	PointsBalance  decimal.Decimal `json:"points_balance"`
	LifetimeEarned decimal.Decimal `json:"lifetime_earned"`
	Version        int             `json:"version"` // For optimistic locking
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewCardBalance creates a zeroed balance row for a card
func NewCardBalance(cardID, customerID uuid.UUID) *CardBalance {
	return &CardBalance{
		CardID:         cardID,
		CustomerID:     customerID,
		PointsBalance:  decimal.Zero,
		LifetimeEarned: decimal.Zero,
		Version:        1,
		UpdatedAt:      time.Now(),
	}
}

// Credit adds earned points to the balance and to the lifetime total
func (b *CardBalance) Credit(points decimal.Decimal) error {
	if points.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPoints
	}

	b.PointsBalance = b.PointsBalance.Add(points)
	b.LifetimeEarned = b.LifetimeEarned.Add(points)
	b.UpdatedAt = time.Now()
	b.Version++
	return nil
}

// Debit spends points from the balance. The lifetime total is unaffected.
func (b *CardBalance) Debit(points decimal.Decimal) error {
	if points.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPoints
	}

	if b.PointsBalance.LessThan(points) {
		return ErrInsufficientBalance
	}

	b.PointsBalance = b.PointsBalance.Sub(points)
	b.UpdatedAt = time.Now()
	b.Version++
	return nil
}

// CanDebit checks if the balance covers the given debit
func (b *CardBalance) CanDebit(points decimal.Decimal) bool {
	return b.PointsBalance.GreaterThanOrEqual(points)
}

// CardSummary is one card's slice of a customer balance summary
type CardSummary struct {
	CardID         uuid.UUID       `json:"card_id"`
	MaskedNumber   string          `json:"card_number"`
	PointsBalance  decimal.Decimal `json:"points_balance"`
	LifetimeEarned decimal.Decimal `json:"lifetime_earned"`
}

// Summary aggregates a customer's balances across all of their cards.
// It is always derived from CardBalance rows, never stored.
type Summary struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	TotalPoints    decimal.Decimal `json:"total_points"`
	LifetimeEarned decimal.Decimal `json:"lifetime_earned"`
	Cards          []CardSummary   `json:"cards"`
}
