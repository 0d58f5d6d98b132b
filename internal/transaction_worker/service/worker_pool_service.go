package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/aurumx/reward-ledger/internal/domain/shared"
)

// WorkerPoolGenerationService fans generation requests out to a bounded
// worker pool while keeping the consumer's per-message error semantics
type WorkerPoolGenerationService struct {
	baseService GenerationService
	pool        *ants.Pool
	logger      *slog.Logger
	mu          sync.Mutex
	results     map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolGenerationService(
	baseService GenerationService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolGenerationService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolGenerationService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// GenerateTransactions submits a generation request to the worker pool and
// waits for its outcome so the Kafka offset only commits on success
func (s *WorkerPoolGenerationService) GenerateTransactions(ctx context.Context, request *shared.GenerationRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Submitting generation request to worker pool",
		"request_id", request.RequestID.String(),
		"card_id", request.CardID.String(),
	)

	resultChan := make(chan error, 1)

	requestID := request.RequestID.String()
	s.mu.Lock()
	s.results[requestID] = resultChan
	s.mu.Unlock()

	// Copy the request to avoid data races with the submitting goroutine
	requestCopy := *request

	err := s.pool.Submit(func() {
		err := s.baseService.GenerateTransactions(ctx, &requestCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, requestID)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		s.mu.Lock()
		delete(s.results, requestID)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit generation request to worker pool",
			"request_id", request.RequestID.String(),
			"error", err,
		)
		return err
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolGenerationService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolGenerationService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolGenerationService) Capacity() int {
	return s.pool.Cap()
}
