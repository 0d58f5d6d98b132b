package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/shared"
	"github.com/aurumx/reward-ledger/internal/domain/transaction"
	"github.com/aurumx/reward-ledger/internal/platform/messaging/producers"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	cardRepo card.Repository
	txnRepo  transaction.Repository
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	logger *slog.Logger,
	cardRepo card.Repository,
	txnRepo transaction.Repository,
	producer producers.MessagePublisher,
) TransactionService {
	return &TransactionServiceImpl{
		cardRepo: cardRepo,
		txnRepo:  txnRepo,
		producer: producer,
		logger:   logger,
	}
}

// RequestGeneration publishes a transaction generation request for the worker.
// A count of zero lets the worker fall back to its configured default.
func (s *TransactionServiceImpl) RequestGeneration(ctx context.Context, cardID uuid.UUID, count int, correlationID string) (*shared.GenerationRequest, error) {
	c, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	request := &shared.GenerationRequest{
		RequestID:     uuid.New(),
		CardID:        c.ID,
		Count:         count,
		CorrelationID: correlationID,
		Timestamp:     time.Now(),
	}

	if err := s.producer.Publish(ctx, c.ID.String(), request); err != nil {
		s.logger.Error("Failed to publish generation request",
			"card_id", c.ID.String(),
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("Generation request published",
		"request_id", request.RequestID.String(),
		"card_id", c.ID.String(),
		"count", count,
	)

	return request, nil
}

// GetByCard returns a page of the card's transactions, newest first
func (s *TransactionServiceImpl) GetByCard(ctx context.Context, cardID uuid.UUID, page, perPage int) ([]*transaction.Transaction, int, error) {
	if _, err := s.cardRepo.GetByID(ctx, cardID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	return s.txnRepo.GetByCard(ctx, cardID, perPage, offset)
}
