package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/shared"
	"github.com/aurumx/reward-ledger/internal/domain/transaction"
	"github.com/aurumx/reward-ledger/internal/rewards_api/service"
)

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) RequestGeneration(ctx context.Context, cardID uuid.UUID, count int, correlationID string) (*shared.GenerationRequest, error) {
	args := m.Called(ctx, cardID, count, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.GenerationRequest), args.Error(1)
}

func (m *MockTransactionService) GetByCard(ctx context.Context, cardID uuid.UUID, page, perPage int) ([]*transaction.Transaction, int, error) {
	args := m.Called(ctx, cardID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*transaction.Transaction), args.Int(1), args.Error(2)
}

func newTransactionTestHandler() (*TransactionHandler, *MockTransactionService) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	svc := new(MockTransactionService)
	return NewTransactionHandler(logger, svc), svc
}

func TestTransactionHandler_Generate(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		h, svc := newTransactionTestHandler()

		cardID := uuid.New()
		request := &shared.GenerationRequest{
			RequestID: uuid.New(),
			CardID:    cardID,
			Count:     25,
			Timestamp: time.Now(),
		}
		svc.On("RequestGeneration", mock.Anything, cardID, 25, mock.Anything).Return(request, nil)

		router := setupTestRouter()
		router.POST("/transactions/generate", h.Generate)

		jsonBody, _ := json.Marshal(GenerateTransactionsRequest{
			CreditCardID: cardID.String(),
			Count:        25,
		})
		req, _ := http.NewRequest(http.MethodPost, "/transactions/generate", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)

		var body GenerationAcceptedResponse
		decodeData(t, rr.Body.Bytes(), &body)
		assert.Equal(t, request.RequestID.String(), body.RequestID)
		assert.Equal(t, "PENDING", body.Status)

		svc.AssertExpectations(t)
	})

	t.Run("CardNotFound", func(t *testing.T) {
		h, svc := newTransactionTestHandler()

		cardID := uuid.New()
		svc.On("RequestGeneration", mock.Anything, cardID, 0, mock.Anything).
			Return(nil, card.ErrCardNotFound{CardID: cardID})

		router := setupTestRouter()
		router.POST("/transactions/generate", h.Generate)

		jsonBody, _ := json.Marshal(GenerateTransactionsRequest{CreditCardID: cardID.String()})
		req, _ := http.NewRequest(http.MethodPost, "/transactions/generate", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("MissingCardID", func(t *testing.T) {
		h, svc := newTransactionTestHandler()

		router := setupTestRouter()
		router.POST("/transactions/generate", h.Generate)

		req, _ := http.NewRequest(http.MethodPost, "/transactions/generate", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertExpectations(t)
	})
}

func TestTransactionHandler_GetByCard(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, svc := newTransactionTestHandler()

		cardID := uuid.New()
		points := decimal.NewFromInt(64)
		txns := []*transaction.Transaction{
			{
				ID:              uuid.New(),
				CardID:          cardID,
				Amount:          decimal.NewFromFloat(1299.99),
				MerchantName:    "Acme Books",
				TransactionDate: time.Now(),
				Processed:       true,
				RewardPoints:    &points,
			},
			{
				ID:              uuid.New(),
				CardID:          cardID,
				Amount:          decimal.NewFromInt(75),
				MerchantName:    "Acme Coffee",
				TransactionDate: time.Now(),
			},
		}
		svc.On("GetByCard", mock.Anything, cardID, 1, 20).Return(txns, 2, nil)

		router := setupTestRouter()
		router.GET("/transactions/card/:cardId", h.GetByCard)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/card/"+cardID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body []TransactionResponse
		decodeData(t, rr.Body.Bytes(), &body)
		require.Len(t, body, 2)
		assert.Equal(t, "64", body[0].RewardPoints)
		assert.True(t, body[0].Processed)
		assert.Empty(t, body[1].RewardPoints)
	})

	t.Run("Pagination", func(t *testing.T) {
		h, svc := newTransactionTestHandler()

		cardID := uuid.New()
		svc.On("GetByCard", mock.Anything, cardID, 3, 10).Return([]*transaction.Transaction{}, 42, nil)

		router := setupTestRouter()
		router.GET("/transactions/card/:cardId", h.GetByCard)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/card/"+cardID.String()+"?page=3&per_page=10", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 3, resp.Meta.Page)
		assert.Equal(t, 42, resp.Meta.TotalItems)
		assert.Equal(t, 5, resp.Meta.TotalPages)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		h, svc := newTransactionTestHandler()

		router := setupTestRouter()
		router.GET("/transactions/card/:cardId", h.GetByCard)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/card/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertExpectations(t)
	})
}

var _ service.TransactionService = (*MockTransactionService)(nil)
