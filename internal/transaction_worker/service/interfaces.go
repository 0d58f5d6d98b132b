package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aurumx/reward-ledger/internal/domain/shared"
)

// TxRunner runs a function within a database transaction
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// GenerationService creates simulated card transactions from a generation
// request
type GenerationService interface {
	GenerateTransactions(ctx context.Context, request *shared.GenerationRequest) error
}
