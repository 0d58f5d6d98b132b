package handler

import (
	"time"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/domain/cart"
	"github.com/aurumx/reward-ledger/internal/domain/catalog"
	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
	"github.com/aurumx/reward-ledger/internal/domain/redemption"
	"github.com/aurumx/reward-ledger/internal/domain/transaction"
	"github.com/aurumx/reward-ledger/internal/rewards_api/service"
)

// AddCartItemRequest represents a request to put a catalog item in a cart
type AddCartItemRequest struct {
	CustomerID   string `json:"customer_id" binding:"required,uuid"`
	RewardItemID string `json:"reward_item_id" binding:"required,uuid"`
	Quantity     int    `json:"quantity" binding:"required,min=1,max=100"`
}

// UpdateCartItemRequest represents a request to change a cart line's quantity.
// A quantity of zero removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0,max=100"`
}

// RedeemRequest selects the credit card whose points pay for the cart
type RedeemRequest struct {
	CreditCardID string `json:"credit_card_id" binding:"required,uuid"`
}

// GenerateTransactionsRequest represents a request to generate simulated
// transactions for a card. Count zero means the worker's configured default.
type GenerateTransactionsRequest struct {
	CreditCardID string `json:"credit_card_id" binding:"required,uuid"`
	Count        int    `json:"count" binding:"omitempty,min=1,max=1000"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=20" binding:"min=1,max=100"`
}

// CardSummaryResponse represents one card's balance in a customer summary
type CardSummaryResponse struct {
	CardID         string `json:"card_id"`
	CardNumber     string `json:"card_number"`
	PointsBalance  string `json:"points_balance"`
	LifetimeEarned string `json:"lifetime_earned"`
}

// BalanceSummaryResponse represents a customer's aggregated point balances
type BalanceSummaryResponse struct {
	CustomerID     string                `json:"customer_id"`
	CustomerName   string                `json:"customer_name"`
	TotalPoints    string                `json:"total_points"`
	LifetimeEarned string                `json:"lifetime_earned"`
	Cards          []CardSummaryResponse `json:"cards"`
}

// CardBalanceResponse represents a single card's point balance
type CardBalanceResponse struct {
	CardID         string `json:"card_id"`
	CustomerID     string `json:"customer_id"`
	PointsBalance  string `json:"points_balance"`
	LifetimeEarned string `json:"lifetime_earned"`
	UpdatedAt      string `json:"updated_at"`
}

// CardAccrualResponse represents the accrual outcome for one card
type CardAccrualResponse struct {
	CardID        string `json:"card_id"`
	Processed     int    `json:"processed"`
	Skipped       int    `json:"skipped"`
	Failed        int    `json:"failed"`
	PointsAwarded string `json:"points_awarded"`
}

// AccrualResponse represents the outcome of an accrual run
type AccrualResponse struct {
	CustomerID    string                `json:"customer_id"`
	Cards         []CardAccrualResponse `json:"cards"`
	Processed     int                   `json:"processed"`
	Skipped       int                   `json:"skipped"`
	Failed        int                   `json:"failed"`
	PointsAwarded string                `json:"points_awarded"`
}

// CategoryResponse represents a reward category in API responses
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RewardItemResponse represents a catalog item in API responses
type RewardItemResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  string `json:"points_cost"`
	Available   bool   `json:"available"`
}

// CategoryDetailResponse represents a category with its items
type CategoryDetailResponse struct {
	CategoryResponse
	Items []RewardItemResponse `json:"items"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ID           string `json:"id"`
	RewardItemID string `json:"reward_item_id"`
	ItemName     string `json:"item_name"`
	PointsCost   string `json:"points_cost"`
	Quantity     int    `json:"quantity"`
	Subtotal     string `json:"subtotal"`
	AddedAt      string `json:"added_at"`
}

// CartResponse represents a customer's cart in API responses
type CartResponse struct {
	CustomerID  string             `json:"customer_id"`
	Items       []CartItemResponse `json:"items"`
	TotalPoints string             `json:"total_points"`
}

// RedemptionItemResponse represents one redeemed line in API responses
type RedemptionItemResponse struct {
	RewardItemID string `json:"reward_item_id"`
	ItemName     string `json:"item_name"`
	PointsCost   string `json:"points_cost"`
	Quantity     int    `json:"quantity"`
}

// RedemptionResponse represents a completed redemption in API responses
type RedemptionResponse struct {
	ID          string                   `json:"id"`
	CustomerID  string                   `json:"customer_id"`
	CardID      string                   `json:"card_id"`
	TotalPoints string                   `json:"total_points"`
	Items       []RedemptionItemResponse `json:"items"`
	RedeemedAt  string                   `json:"redeemed_at"`
}

// LedgerEntryResponse represents one point movement in API responses
type LedgerEntryResponse struct {
	EntryID     string `json:"entry_id"`
	CardID      string `json:"card_id"`
	Type        string `json:"type"`
	Points      string `json:"points"`
	ReferenceID string `json:"reference_id"`
	CreatedAt   string `json:"created_at"`
}

// TransactionResponse represents a card transaction in API responses
type TransactionResponse struct {
	ID              string `json:"id"`
	CardID          string `json:"card_id"`
	Amount          string `json:"amount"`
	MerchantName    string `json:"merchant_name"`
	TransactionDate string `json:"transaction_date"`
	Processed       bool   `json:"processed"`
	RewardPoints    string `json:"reward_points,omitempty"`
}

// GenerationAcceptedResponse acknowledges an asynchronous generation request
type GenerationAcceptedResponse struct {
	RequestID    string `json:"request_id"`
	CreditCardID string `json:"credit_card_id"`
	Count        int    `json:"count"`
	Status       string `json:"status"`
}

func mapSummaryToResponse(s *balance.Summary) BalanceSummaryResponse {
	resp := BalanceSummaryResponse{
		CustomerID:     s.CustomerID.String(),
		CustomerName:   s.CustomerName,
		TotalPoints:    s.TotalPoints.String(),
		LifetimeEarned: s.LifetimeEarned.String(),
		Cards:          make([]CardSummaryResponse, 0, len(s.Cards)),
	}
	for _, cs := range s.Cards {
		resp.Cards = append(resp.Cards, CardSummaryResponse{
			CardID:         cs.CardID.String(),
			CardNumber:     cs.MaskedNumber,
			PointsBalance:  cs.PointsBalance.String(),
			LifetimeEarned: cs.LifetimeEarned.String(),
		})
	}
	return resp
}

func mapBalanceToResponse(b *balance.CardBalance) CardBalanceResponse {
	return CardBalanceResponse{
		CardID:         b.CardID.String(),
		CustomerID:     b.CustomerID.String(),
		PointsBalance:  b.PointsBalance.String(),
		LifetimeEarned: b.LifetimeEarned.String(),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
}

func mapAccrualToResponse(r *service.AccrualResult) AccrualResponse {
	resp := AccrualResponse{
		CustomerID:    r.CustomerID.String(),
		Cards:         make([]CardAccrualResponse, 0, len(r.Cards)),
		Processed:     r.Processed,
		Skipped:       r.Skipped,
		Failed:        r.Failed,
		PointsAwarded: r.PointsAwarded.String(),
	}
	for _, cr := range r.Cards {
		resp.Cards = append(resp.Cards, CardAccrualResponse{
			CardID:        cr.CardID.String(),
			Processed:     cr.Processed,
			Skipped:       cr.Skipped,
			Failed:        cr.Failed,
			PointsAwarded: cr.PointsAwarded.String(),
		})
	}
	return resp
}

func mapCategoryToResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
	}
}

func mapItemToResponse(it *catalog.Item) RewardItemResponse {
	return RewardItemResponse{
		ID:          it.ID.String(),
		CategoryID:  it.CategoryID.String(),
		Name:        it.Name,
		Description: it.Description,
		PointsCost:  it.PointsCost.String(),
		Available:   it.Available,
	}
}

func mapItemsToResponse(items []*catalog.Item) []RewardItemResponse {
	resp := make([]RewardItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, mapItemToResponse(it))
	}
	return resp
}

func mapCartItemToResponse(it *cart.Item) CartItemResponse {
	return CartItemResponse{
		ID:           it.ID.String(),
		RewardItemID: it.RewardItemID.String(),
		ItemName:     it.ItemName,
		PointsCost:   it.PointsCost.String(),
		Quantity:     it.Quantity,
		Subtotal:     it.Subtotal().String(),
		AddedAt:      it.AddedAt.Format(time.RFC3339),
	}
}

func mapCartToResponse(c *cart.Cart) CartResponse {
	resp := CartResponse{
		CustomerID:  c.CustomerID.String(),
		Items:       make([]CartItemResponse, 0, len(c.Items)),
		TotalPoints: c.TotalPoints.String(),
	}
	for _, it := range c.Items {
		resp.Items = append(resp.Items, mapCartItemToResponse(it))
	}
	return resp
}

func mapRedemptionToResponse(rec *redemption.Record) RedemptionResponse {
	resp := RedemptionResponse{
		ID:          rec.ID.String(),
		CustomerID:  rec.CustomerID.String(),
		CardID:      rec.CardID.String(),
		TotalPoints: rec.TotalPoints.String(),
		Items:       make([]RedemptionItemResponse, 0, len(rec.Items)),
		RedeemedAt:  rec.RedeemedAt.Format(time.RFC3339),
	}
	for _, it := range rec.Items {
		resp.Items = append(resp.Items, RedemptionItemResponse{
			RewardItemID: it.RewardItemID.String(),
			ItemName:     it.ItemName,
			PointsCost:   it.PointsCost.String(),
			Quantity:     it.Quantity,
		})
	}
	return resp
}

func mapLedgerEntryToResponse(e *pointsledger.Entry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:     e.EntryID.String(),
		CardID:      e.CardID.String(),
		Type:        string(e.Type),
		Points:      e.Points.String(),
		ReferenceID: e.ReferenceID.String(),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

func mapTransactionToResponse(t *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID.String(),
		CardID:          t.CardID.String(),
		Amount:          t.Amount.String(),
		MerchantName:    t.MerchantName,
		TransactionDate: t.TransactionDate.Format(time.RFC3339),
		Processed:       t.Processed,
	}
	if t.RewardPoints != nil {
		resp.RewardPoints = t.RewardPoints.String()
	}
	return resp
}
