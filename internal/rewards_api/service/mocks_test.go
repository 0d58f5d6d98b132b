package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/cart"
	"github.com/aurumx/reward-ledger/internal/domain/catalog"
	"github.com/aurumx/reward-ledger/internal/domain/customer"
	"github.com/aurumx/reward-ledger/internal/domain/outbox"
	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
	"github.com/aurumx/reward-ledger/internal/domain/redemption"
	"github.com/aurumx/reward-ledger/internal/domain/shared"
	"github.com/aurumx/reward-ledger/internal/domain/transaction"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// fakeTxRunner runs the callback immediately with a nil transaction
type fakeTxRunner struct {
	err error
}

func (f *fakeTxRunner) ExecuteTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockCardRepo struct {
	mock.Mock
}

func (m *MockCardRepo) GetByID(ctx context.Context, id uuid.UUID) (*card.CreditCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.CreditCard), args.Error(1)
}

func (m *MockCardRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*card.CreditCard, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.CreditCard), args.Error(1)
}

type MockBalanceRepo struct {
	mock.Mock
}

func (m *MockBalanceRepo) GetByCard(ctx context.Context, cardID uuid.UUID) (*balance.CardBalance, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*balance.CardBalance), args.Error(1)
}

func (m *MockBalanceRepo) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]*balance.CardBalance, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*balance.CardBalance), args.Error(1)
}

func (m *MockBalanceRepo) ApplyCredit(ctx context.Context, cardID, customerID uuid.UUID, points decimal.Decimal) error {
	args := m.Called(ctx, cardID, customerID, points)
	return args.Error(0)
}

func (m *MockBalanceRepo) Update(ctx context.Context, bal *balance.CardBalance) error {
	args := m.Called(ctx, bal)
	return args.Error(0)
}

func (m *MockBalanceRepo) LockForUpdate(ctx context.Context, cardID uuid.UUID) (*balance.CardBalance, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*balance.CardBalance), args.Error(1)
}

func (m *MockBalanceRepo) WithTx(tx pgx.Tx) balance.Repository {
	return m
}

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) CreateBatch(ctx context.Context, txns []*transaction.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetByCard(ctx context.Context, cardID uuid.UUID, limit, offset int) ([]*transaction.Transaction, int, error) {
	args := m.Called(ctx, cardID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*transaction.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepo) GetUnprocessedByCard(ctx context.Context, cardID uuid.UUID) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) MarkProcessed(ctx context.Context, id uuid.UUID, points decimal.Decimal) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

func (m *MockTransactionRepo) WithTx(tx pgx.Tx) transaction.Repository {
	return m
}

type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) GetCategories(ctx context.Context) ([]*catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Category), args.Error(1)
}

func (m *MockCatalogRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCatalogRepo) GetAvailableItems(ctx context.Context) ([]*catalog.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *MockCatalogRepo) GetItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *MockCatalogRepo) GetItemByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]*cart.Item, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.Item), args.Error(1)
}

func (m *MockCartRepo) GetItem(ctx context.Context, cartItemID uuid.UUID) (*cart.Item, error) {
	args := m.Called(ctx, cartItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepo) Upsert(ctx context.Context, item *cart.Item) (*cart.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepo) UpdateQuantity(ctx context.Context, cartItemID uuid.UUID, quantity int) (*cart.Item, error) {
	args := m.Called(ctx, cartItemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepo) Delete(ctx context.Context, cartItemID uuid.UUID) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *MockCartRepo) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

func (m *MockCartRepo) WithTx(tx pgx.Tx) cart.Repository {
	return m
}

type MockRedemptionRepo struct {
	mock.Mock
}

func (m *MockRedemptionRepo) Create(ctx context.Context, rec *redemption.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRedemptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*redemption.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redemption.Record), args.Error(1)
}

func (m *MockRedemptionRepo) GetByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*redemption.Record, int, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*redemption.Record), args.Int(1), args.Error(2)
}

func (m *MockRedemptionRepo) WithTx(tx pgx.Tx) redemption.Repository {
	return m
}

type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Create(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockOutboxRepo) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepo) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepo) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepo) WithTx(tx pgx.Tx) outbox.Repository {
	return m
}

type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Record(ctx context.Context, entry *pointsledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepo) GetByCard(ctx context.Context, cardID uuid.UUID, limit, offset int) ([]*pointsledger.Entry, int, error) {
	args := m.Called(ctx, cardID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*pointsledger.Entry), args.Int(1), args.Error(2)
}

func (m *MockLedgerRepo) GetByEntryID(ctx context.Context, entryID uuid.UUID) (*pointsledger.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pointsledger.Entry), args.Error(1)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, customerID uuid.UUID) (*balance.Summary, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*balance.Summary), args.Error(1)
}

func (m *MockSummaryCache) Set(ctx context.Context, summary *balance.Summary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context, customerID uuid.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
