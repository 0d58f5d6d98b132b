package outbox_poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aurumx/reward-ledger/internal/config"
	"github.com/aurumx/reward-ledger/internal/domain/outbox"
	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
	"github.com/aurumx/reward-ledger/internal/domain/shared"
)

// MockLedgerPublisher for testing
type MockLedgerPublisher struct {
	mock.Mock
}

func (m *MockLedgerPublisher) PublishToLedger(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func TestPoller_ProcessPendingMessages(t *testing.T) {
	logger := slog.Default()

	cfg := &config.OutboxConfig{
		PollingInterval:  time.Second,
		BatchSize:        10,
		MaxRetryAttempts: 3,
	}

	entry := pointsledger.NewRedemption(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(500), "corr1")

	message1 := newPendingMessage(t, entry, 1)
	message2 := newPendingMessage(t, entry, 2)

	tests := []struct {
		name          string
		setupMocks    func(outboxRepo *MockOutboxRepo, publisher *MockLedgerPublisher)
		expectedError error
	}{
		{
			name: "successful processing of pending messages",
			setupMocks: func(outboxRepo *MockOutboxRepo, publisher *MockLedgerPublisher) {
				outboxRepo.On("GetPending", mock.Anything, 10).Return([]*outbox.Message{message1, message2}, nil).Once()

				publisher.On("PublishToLedger", mock.Anything, message1).Return(nil).Once()
				publisher.On("PublishToLedger", mock.Anything, message2).Return(nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "error getting pending messages",
			setupMocks: func(outboxRepo *MockOutboxRepo, publisher *MockLedgerPublisher) {
				outboxRepo.On("GetPending", mock.Anything, 10).Return(nil, errors.New("db error")).Once()
			},
			expectedError: errors.New("failed to get pending outbox messages"),
		},
		{
			name: "no pending messages",
			setupMocks: func(outboxRepo *MockOutboxRepo, publisher *MockLedgerPublisher) {
				outboxRepo.On("GetPending", mock.Anything, 10).Return([]*outbox.Message{}, nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "error publishing one message",
			setupMocks: func(outboxRepo *MockOutboxRepo, publisher *MockLedgerPublisher) {
				outboxRepo.On("GetPending", mock.Anything, 10).Return([]*outbox.Message{message1, message2}, nil).Once()

				publisher.On("PublishToLedger", mock.Anything, message1).Return(errors.New("publish error")).Once()

				outboxRepo.On("IncrementAttempts", mock.Anything, int64(1)).Return(nil).Once()

				publisher.On("PublishToLedger", mock.Anything, message2).Return(nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "max retry attempts reached",
			setupMocks: func(outboxRepo *MockOutboxRepo, publisher *MockLedgerPublisher) {
				maxAttemptsMessage := newPendingMessage(t, entry, 3)
				maxAttemptsMessage.Attempts = 2

				outboxRepo.On("GetPending", mock.Anything, 10).Return([]*outbox.Message{maxAttemptsMessage}, nil).Once()

				publisher.On("PublishToLedger", mock.Anything, maxAttemptsMessage).Return(errors.New("publish error")).Once()

				outboxRepo.On("IncrementAttempts", mock.Anything, int64(3)).Return(nil).Once()

				outboxRepo.On("UpdateStatus", mock.Anything, int64(3), shared.OutboxStatusFailedToPublish).Return(nil).Once()
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOutboxRepo := &MockOutboxRepo{}
			mockLedgerPublisher := &MockLedgerPublisher{}
			poller := NewPoller(cfg, mockOutboxRepo, mockLedgerPublisher, logger)

			tt.setupMocks(mockOutboxRepo, mockLedgerPublisher)
			ctx := context.Background()

			err := poller.processPendingMessages(ctx)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockOutboxRepo.AssertExpectations(t)
			mockLedgerPublisher.AssertExpectations(t)
		})
	}
}

func TestPoller_Start(t *testing.T) {
	mockOutboxRepo := &MockOutboxRepo{}
	mockLedgerPublisher := &MockLedgerPublisher{}
	logger := slog.Default()

	cfg := &config.OutboxConfig{
		PollingInterval:  10 * time.Millisecond,
		BatchSize:        10,
		MaxRetryAttempts: 3,
	}

	poller := NewPoller(cfg, mockOutboxRepo, mockLedgerPublisher, logger)

	mockOutboxRepo.On("GetPending", mock.Anything, 10).Return([]*outbox.Message{}, nil).Maybe()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}
