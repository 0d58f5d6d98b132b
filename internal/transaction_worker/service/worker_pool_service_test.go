package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aurumx/reward-ledger/internal/domain/shared"
)

// MockGenerationService mocks the GenerationService interface
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateTransactions(ctx context.Context, request *shared.GenerationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func TestWorkerPoolGenerationService_GenerateTransactions(t *testing.T) {
	logger := slog.Default()

	request := &shared.GenerationRequest{
		RequestID:     uuid.New(),
		CardID:        uuid.New(),
		Count:         10,
		CorrelationID: "corr1",
	}

	tests := []struct {
		name          string
		setupMocks    func(m *MockGenerationService)
		expectedError error
	}{
		{
			name: "successful generation",
			setupMocks: func(m *MockGenerationService) {
				m.On("GenerateTransactions", mock.Anything, mock.MatchedBy(func(r *shared.GenerationRequest) bool {
					return r.RequestID == request.RequestID
				})).Return(nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "generation error",
			setupMocks: func(m *MockGenerationService) {
				m.On("GenerateTransactions", mock.Anything, mock.Anything).Return(errors.New("generation error")).Once()
			},
			expectedError: errors.New("generation error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBaseService := &MockGenerationService{}

			workerPoolService, err := NewWorkerPoolGenerationService(
				mockBaseService,
				WorkerPoolConfig{Size: 2},
				logger,
			)
			assert.NoError(t, err)
			defer workerPoolService.Shutdown()

			tt.setupMocks(mockBaseService)
			ctx := context.Background()

			err = workerPoolService.GenerateTransactions(ctx, request)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockBaseService.AssertExpectations(t)
		})
	}
}

func TestWorkerPoolGenerationService_Concurrency(t *testing.T) {
	mockBaseService := &MockGenerationService{}
	logger := slog.Default()

	workerPoolService, err := NewWorkerPoolGenerationService(
		mockBaseService,
		WorkerPoolConfig{Size: 5},
		logger,
	)
	assert.NoError(t, err)
	defer workerPoolService.Shutdown()

	var mu sync.Mutex
	counter := 0

	mockBaseService.On("GenerateTransactions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		counter++
		mu.Unlock()
	}).Return(nil)

	numRequests := 10
	var wg sync.WaitGroup
	wg.Add(numRequests)

	for i := 0; i < numRequests; i++ {
		go func() {
			defer wg.Done()

			request := &shared.GenerationRequest{
				RequestID:     uuid.New(),
				CardID:        uuid.New(),
				Count:         5,
				CorrelationID: uuid.NewString(),
			}

			ctx := context.Background()
			err := workerPoolService.GenerateTransactions(ctx, request)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, numRequests, counter)
	assert.True(t, workerPoolService.Running() > 0)
	assert.Equal(t, 5, workerPoolService.Capacity())
}
