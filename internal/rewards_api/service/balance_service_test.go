package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/customer"
)

func newBalanceService(
	customerRepo *MockCustomerRepo,
	cardRepo *MockCardRepo,
	balanceRepo *MockBalanceRepo,
	ledgerRepo *MockLedgerRepo,
	cache *MockSummaryCache,
) BalanceService {
	return NewBalanceService(newTestLogger(), customerRepo, cardRepo, balanceRepo, ledgerRepo, cache)
}

func TestBalanceService_GetCustomerSummary_CacheHit(t *testing.T) {
	customerRepo := new(MockCustomerRepo)
	cardRepo := new(MockCardRepo)
	balanceRepo := new(MockBalanceRepo)
	ledgerRepo := new(MockLedgerRepo)
	cache := new(MockSummaryCache)

	customerID := uuid.New()
	cached := &balance.Summary{CustomerID: customerID, TotalPoints: decimal.NewFromInt(400)}
	cache.On("Get", mock.Anything, customerID).Return(cached, nil)

	svc := newBalanceService(customerRepo, cardRepo, balanceRepo, ledgerRepo, cache)
	summary, err := svc.GetCustomerSummary(context.Background(), customerID)

	require.NoError(t, err)
	assert.Equal(t, cached, summary)
	customerRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	balanceRepo.AssertNotCalled(t, "GetByCustomer", mock.Anything, mock.Anything)
}

func TestBalanceService_GetCustomerSummary_CacheMiss(t *testing.T) {
	customerRepo := new(MockCustomerRepo)
	cardRepo := new(MockCardRepo)
	balanceRepo := new(MockBalanceRepo)
	ledgerRepo := new(MockLedgerRepo)
	cache := new(MockSummaryCache)

	cust := &customer.Customer{ID: uuid.New(), Name: "Fay"}
	card1 := &card.CreditCard{ID: uuid.New(), CustomerID: cust.ID, CardNumber: "4111111111111111"}
	card2 := &card.CreditCard{ID: uuid.New(), CustomerID: cust.ID, CardNumber: "5555555555554444"}

	cache.On("Get", mock.Anything, cust.ID).Return(nil, nil)
	customerRepo.On("GetByID", mock.Anything, cust.ID).Return(cust, nil)
	cardRepo.On("GetByCustomerID", mock.Anything, cust.ID).Return([]*card.CreditCard{card1, card2}, nil)

	// Only card1 has ever accrued; card2 must still appear with zero balances
	balanceRepo.On("GetByCustomer", mock.Anything, cust.ID).Return([]*balance.CardBalance{
		{
			CardID:         card1.ID,
			CustomerID:     cust.ID,
			PointsBalance:  decimal.NewFromInt(250),
			LifetimeEarned: decimal.NewFromInt(700),
			Version:        9,
		},
	}, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	svc := newBalanceService(customerRepo, cardRepo, balanceRepo, ledgerRepo, cache)
	summary, err := svc.GetCustomerSummary(context.Background(), cust.ID)

	require.NoError(t, err)
	assert.Equal(t, cust.ID, summary.CustomerID)
	assert.Equal(t, "Fay", summary.CustomerName)
	require.Len(t, summary.Cards, 2)

	assert.Equal(t, "**** **** **** 1111", summary.Cards[0].MaskedNumber)
	assert.True(t, summary.Cards[0].PointsBalance.Equal(decimal.NewFromInt(250)))
	assert.True(t, summary.Cards[1].PointsBalance.IsZero())
	assert.True(t, summary.Cards[1].LifetimeEarned.IsZero())

	assert.True(t, summary.TotalPoints.Equal(decimal.NewFromInt(250)))
	assert.True(t, summary.LifetimeEarned.Equal(decimal.NewFromInt(700)))
	cache.AssertExpectations(t)
}

func TestBalanceService_GetCustomerSummary_CacheErrorFallsThrough(t *testing.T) {
	customerRepo := new(MockCustomerRepo)
	cardRepo := new(MockCardRepo)
	balanceRepo := new(MockBalanceRepo)
	ledgerRepo := new(MockLedgerRepo)
	cache := new(MockSummaryCache)

	cust := &customer.Customer{ID: uuid.New(), Name: "Gil"}

	cache.On("Get", mock.Anything, cust.ID).Return(nil, errors.New("connection refused"))
	customerRepo.On("GetByID", mock.Anything, cust.ID).Return(cust, nil)
	cardRepo.On("GetByCustomerID", mock.Anything, cust.ID).Return([]*card.CreditCard{}, nil)
	balanceRepo.On("GetByCustomer", mock.Anything, cust.ID).Return([]*balance.CardBalance{}, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	svc := newBalanceService(customerRepo, cardRepo, balanceRepo, ledgerRepo, cache)
	summary, err := svc.GetCustomerSummary(context.Background(), cust.ID)

	require.NoError(t, err)
	assert.True(t, summary.TotalPoints.IsZero())
}

func TestBalanceService_GetCardBalance_NoRowReportsZero(t *testing.T) {
	customerRepo := new(MockCustomerRepo)
	cardRepo := new(MockCardRepo)
	balanceRepo := new(MockBalanceRepo)
	ledgerRepo := new(MockLedgerRepo)
	cache := new(MockSummaryCache)

	c := &card.CreditCard{ID: uuid.New(), CustomerID: uuid.New(), CardNumber: "4242424242424242"}
	cardRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	balanceRepo.On("GetByCard", mock.Anything, c.ID).Return(nil, balance.ErrBalanceNotFound{CardID: c.ID})

	svc := newBalanceService(customerRepo, cardRepo, balanceRepo, ledgerRepo, cache)
	bal, err := svc.GetCardBalance(context.Background(), c.ID)

	require.NoError(t, err)
	assert.Equal(t, c.ID, bal.CardID)
	assert.Equal(t, c.CustomerID, bal.CustomerID)
	assert.True(t, bal.PointsBalance.IsZero())
	assert.True(t, bal.LifetimeEarned.IsZero())
}

func TestBalanceService_GetCardBalance_CardNotFound(t *testing.T) {
	customerRepo := new(MockCustomerRepo)
	cardRepo := new(MockCardRepo)
	balanceRepo := new(MockBalanceRepo)
	ledgerRepo := new(MockLedgerRepo)
	cache := new(MockSummaryCache)

	cardID := uuid.New()
	cardRepo.On("GetByID", mock.Anything, cardID).Return(nil, card.ErrCardNotFound{CardID: cardID})

	svc := newBalanceService(customerRepo, cardRepo, balanceRepo, ledgerRepo, cache)
	bal, err := svc.GetCardBalance(context.Background(), cardID)

	assert.Nil(t, bal)
	assert.ErrorIs(t, err, card.ErrCardNotFound{})
	balanceRepo.AssertNotCalled(t, "GetByCard", mock.Anything, mock.Anything)
}
