package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aurumx/reward-ledger/internal/domain/shared"
)

// MockGenerationService for testing
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateTransactions(ctx context.Context, request *shared.GenerationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// MockDeadLetterPublisher for testing
type MockDeadLetterPublisher struct {
	mock.Mock
}

func (m *MockDeadLetterPublisher) PublishToDLQ(ctx context.Context, key string, value []byte, reason string) error {
	args := m.Called(ctx, key, value, reason)
	return args.Error(0)
}

func (m *MockDeadLetterPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestHandleMessage(t *testing.T) {
	logger := slog.Default()

	validRequest := &shared.GenerationRequest{
		RequestID:     uuid.New(),
		CardID:        uuid.New(),
		Count:         25,
		CorrelationID: "corr1",
		Timestamp:     time.Now(),
	}

	validJSON, err := json.Marshal(validRequest)
	assert.NoError(t, err)

	tests := []struct {
		name          string
		key           []byte
		value         []byte
		setupMocks    func(svc *MockGenerationService, dlq *MockDeadLetterPublisher)
		expectedError error
	}{
		{
			name:  "successful generation",
			key:   []byte("test-key"),
			value: validJSON,
			setupMocks: func(svc *MockGenerationService, dlq *MockDeadLetterPublisher) {
				svc.On("GenerateTransactions", mock.Anything, mock.MatchedBy(func(req *shared.GenerationRequest) bool {
					return req.RequestID == validRequest.RequestID && req.Count == 25
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "generation error",
			key:   []byte("test-key"),
			value: validJSON,
			setupMocks: func(svc *MockGenerationService, dlq *MockDeadLetterPublisher) {
				svc.On("GenerateTransactions", mock.Anything, mock.Anything).Return(errors.New("generation error"))
			},
			expectedError: errors.New("generation request"),
		},
		{
			name:  "unmarshal error with successful DLQ publish",
			key:   []byte("test-key"),
			value: []byte("invalid json"),
			setupMocks: func(svc *MockGenerationService, dlq *MockDeadLetterPublisher) {
				dlq.On("PublishToDLQ", mock.Anything, "test-key", []byte("invalid json"), mock.Anything).Return(nil)
			},
			expectedError: nil, // No error because message was successfully sent to DLQ
		},
		{
			name:  "unmarshal error with DLQ publish failure",
			key:   []byte("test-key"),
			value: []byte("invalid json"),
			setupMocks: func(svc *MockGenerationService, dlq *MockDeadLetterPublisher) {
				dlq.On("PublishToDLQ", mock.Anything, "test-key", []byte("invalid json"), mock.Anything).Return(errors.New("dlq error"))
			},
			expectedError: errors.New("failed to unmarshal"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGenerationService := &MockGenerationService{}
			mockDLQPublisher := &MockDeadLetterPublisher{}
			mockDLQPublisher.On("Close").Return(nil).Maybe()

			handler := NewGenerationEventHandler(logger, mockGenerationService, mockDLQPublisher)

			tt.setupMocks(mockGenerationService, mockDLQPublisher)
			ctx := context.Background()

			err := handler.HandleMessage(ctx, tt.key, tt.value)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockGenerationService.AssertExpectations(t)
			mockDLQPublisher.AssertExpectations(t)
		})
	}
}
