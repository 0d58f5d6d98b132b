package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aurumx/reward-ledger/internal/domain/cart"
	"github.com/aurumx/reward-ledger/internal/domain/catalog"
	"github.com/aurumx/reward-ledger/internal/domain/customer"
)

// CartServiceImpl implements the CartService interface
type CartServiceImpl struct {
	customerRepo customer.Repository
	catalogRepo  catalog.Repository
	cartRepo     cart.Repository
	logger       *slog.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	logger *slog.Logger,
	customerRepo customer.Repository,
	catalogRepo catalog.Repository,
	cartRepo cart.Repository,
) CartService {
	return &CartServiceImpl{
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		cartRepo:     cartRepo,
		logger:       logger,
	}
}

// AddItem puts a catalog item in the customer's cart, denormalizing its name
// and point cost so the cart stays renderable if the catalog entry changes
func (s *CartServiceImpl) AddItem(ctx context.Context, customerID, rewardItemID uuid.UUID, quantity int) (*cart.Item, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	item, err := s.catalogRepo.GetItemByID(ctx, rewardItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, catalog.ErrItemUnavailable{ItemID: item.ID}
	}

	line := &cart.Item{
		ID:           uuid.New(),
		CustomerID:   customerID,
		RewardItemID: item.ID,
		ItemName:     item.Name,
		PointsCost:   item.PointsCost,
		Quantity:     quantity,
		AddedAt:      time.Now(),
	}

	saved, err := s.cartRepo.Upsert(ctx, line)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cart item added",
		"customer_id", customerID.String(),
		"reward_item_id", item.ID.String(),
		"quantity", saved.Quantity,
	)

	return saved, nil
}

// GetCart returns the customer's cart with its computed point total
func (s *CartServiceImpl) GetCart(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return cart.NewCart(customerID, items), nil
}

// UpdateItemQuantity sets a cart line's quantity; zero or less removes the line
func (s *CartServiceImpl) UpdateItemQuantity(ctx context.Context, cartItemID uuid.UUID, quantity int) (*cart.Item, error) {
	if quantity <= 0 {
		if err := s.cartRepo.Delete(ctx, cartItemID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return s.cartRepo.UpdateQuantity(ctx, cartItemID, quantity)
}

// RemoveItem deletes a cart line
func (s *CartServiceImpl) RemoveItem(ctx context.Context, cartItemID uuid.UUID) error {
	return s.cartRepo.Delete(ctx, cartItemID)
}

// ClearCart empties the customer's cart
func (s *CartServiceImpl) ClearCart(ctx context.Context, customerID uuid.UUID) (int, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return 0, err
	}

	return s.cartRepo.DeleteByCustomer(ctx, customerID)
}
