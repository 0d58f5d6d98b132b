package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aurumx/reward-ledger/internal/config"
	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/shared"
	"github.com/aurumx/reward-ledger/internal/domain/transaction"
)

// merchants is the fixed pool the generator draws from
var merchants = []string{
	"Amazon",
	"Walmart",
	"Target",
	"Best Buy",
	"Starbucks",
	"Shell",
	"Whole Foods",
	"Home Depot",
	"Netflix",
	"Uber",
	"Delta Airlines",
	"Marriott",
}

// GenerationServiceImpl implements the GenerationService interface
type GenerationServiceImpl struct {
	db       TxRunner
	cardRepo card.Repository
	txnRepo  transaction.Repository
	genCfg   *config.GenerationConfig
	logger   *slog.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	logger *slog.Logger,
	db TxRunner,
	cardRepo card.Repository,
	txnRepo transaction.Repository,
	genCfg *config.GenerationConfig,
) GenerationService {
	return &GenerationServiceImpl{
		db:       db,
		cardRepo: cardRepo,
		txnRepo:  txnRepo,
		genCfg:   genCfg,
		logger:   logger,
	}
}

// GenerateTransactions creates a batch of unprocessed transactions for the
// requested card, with random merchants, amounts within the configured range,
// and dates spread over the last thirty days. The whole batch commits in one
// database transaction.
func (s *GenerationServiceImpl) GenerateTransactions(ctx context.Context, request *shared.GenerationRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	c, err := s.cardRepo.GetByID(ctx, request.CardID)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound{}) {
			// The card disappeared between the API accepting the request and
			// the worker picking it up; acknowledge and move on
			logger.Warn("Skipping generation request for unknown card",
				"request_id", request.RequestID.String(),
				"card_id", request.CardID.String(),
			)
			return nil
		}
		return fmt.Errorf("failed to load card %s: %w", request.CardID.String(), err)
	}

	count := request.Count
	if count <= 0 {
		count = s.genCfg.Count
	}

	txns := make([]*transaction.Transaction, 0, count)
	for i := 0; i < count; i++ {
		txns = append(txns, transaction.New(
			c.ID,
			s.randomAmount(),
			merchants[rand.Intn(len(merchants))],
			s.randomDate(),
		))
	}

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		return s.txnRepo.WithTx(tx).CreateBatch(ctx, txns)
	})
	if err != nil {
		logger.Error("Failed to persist generated transactions",
			"request_id", request.RequestID.String(),
			"card_id", c.ID.String(),
			"count", count,
			"error", err,
		)
		return fmt.Errorf("failed to persist generated transactions for card %s: %w", c.ID.String(), err)
	}

	logger.Info("Generated transactions",
		"request_id", request.RequestID.String(),
		"card_id", c.ID.String(),
		"count", count,
	)
	return nil
}

// randomAmount picks an amount with cent precision within the configured range
func (s *GenerationServiceImpl) randomAmount() decimal.Decimal {
	minCents := int64(s.genCfg.MinAmount) * 100
	maxCents := int64(s.genCfg.MaxAmount) * 100
	cents := minCents + rand.Int63n(maxCents-minCents+1)
	return decimal.New(cents, -2)
}

// randomDate picks a moment within the last thirty days
func (s *GenerationServiceImpl) randomDate() time.Time {
	offset := time.Duration(rand.Int63n(int64(30 * 24 * time.Hour)))
	return time.Now().Add(-offset)
}
