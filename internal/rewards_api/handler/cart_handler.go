package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/cart"
	"github.com/aurumx/reward-ledger/internal/domain/catalog"
	"github.com/aurumx/reward-ledger/internal/domain/customer"
	"github.com/aurumx/reward-ledger/internal/rewards_api/middleware"
	"github.com/aurumx/reward-ledger/internal/rewards_api/service"
)

// CartHandler handles HTTP requests for cart operations and redemption
type CartHandler struct {
	cartService       service.CartService
	redemptionService service.RedemptionService
	logger            *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	logger *slog.Logger,
	cartService service.CartService,
	redemptionService service.RedemptionService,
) *CartHandler {
	return &CartHandler{
		cartService:       cartService,
		redemptionService: redemptionService,
		logger:            logger,
	}
}

// Post dispatches POST /cart/add and POST /cart/{customerId}/redeem. Both
// live under one wildcard because gin rejects a static segment next to a
// path parameter.
func (h *CartHandler) Post(c *gin.Context) {
	segments := splitTarget(c.Param("action"))

	switch {
	case len(segments) == 1 && segments[0] == "add":
		h.addItem(c)
	case len(segments) == 2 && segments[1] == "redeem":
		h.redeem(c, segments[0])
	default:
		RespondNotFound(c, "")
	}
}

func (h *CartHandler) addItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, _ := uuid.Parse(req.CustomerID)
	rewardItemID, _ := uuid.Parse(req.RewardItemID)

	item, err := h.cartService.AddItem(c.Request.Context(), customerID, rewardItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrCustomerNotFound{}):
			RespondNotFound(c, "Customer not found")
		case errors.Is(err, catalog.ErrItemNotFound{}):
			RespondNotFound(c, "Reward item not found")
		case errors.Is(err, catalog.ErrItemUnavailable{}):
			RespondWithError(c, http.StatusBadRequest, "ITEM_UNAVAILABLE", "Reward item is not available for redemption")
		default:
			h.logger.Error("Failed to add cart item", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapCartItemToResponse(item))
}

func (h *CartHandler) redeem(c *gin.Context, customerIDParam string) {
	customerID, err := uuid.Parse(customerIDParam)
	if err != nil {
		RespondBadRequest(c, "Invalid customer ID")
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cardID, _ := uuid.Parse(req.CreditCardID)

	rec, err := h.redemptionService.Redeem(c.Request.Context(), customerID, cardID, middleware.GetCorrelationID(c))
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrCustomerNotFound{}):
			RespondNotFound(c, "Customer not found")
		case errors.Is(err, card.ErrCardNotFound{}):
			RespondNotFound(c, "Credit card not found")
		case errors.Is(err, service.ErrCardNotOwned):
			RespondBadRequest(c, "Credit card does not belong to customer")
		case errors.Is(err, cart.ErrEmptyCart):
			RespondWithError(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty, nothing to redeem")
		case errors.Is(err, catalog.ErrItemUnavailable{}):
			RespondWithError(c, http.StatusBadRequest, "ITEM_UNAVAILABLE", "A cart item is no longer available for redemption")
		case errors.Is(err, balance.ErrInsufficientBalance):
			RespondConflict(c, "INSUFFICIENT_BALANCE", "Card balance does not cover the cart total")
		case errors.Is(err, balance.ErrConcurrentModification{}):
			RespondConflict(c, "", "Balance was modified concurrently, retry the redemption")
		default:
			h.logger.Error("Redemption failed", "customer_id", customerIDParam, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapRedemptionToResponse(rec))
}

// GetCart handles GET /cart/{customerId}
func (h *CartHandler) GetCart(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		RespondBadRequest(c, "Invalid customer ID")
		return
	}

	currentCart, err := h.cartService.GetCart(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound{}) {
			RespondNotFound(c, "Customer not found")
			return
		}
		h.logger.Error("Failed to get cart", "customer_id", customerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapCartToResponse(currentCart))
}

// UpdateItem handles PUT /cart/item/{cartItemId}. A quantity of zero removes
// the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartItemID, err := uuid.Parse(c.Param("cartItemId"))
	if err != nil {
		RespondBadRequest(c, "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.cartService.UpdateItemQuantity(c.Request.Context(), cartItemID, *req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrCartItemNotFound{}) {
			RespondNotFound(c, "Cart item not found")
			return
		}
		h.logger.Error("Failed to update cart item", "cart_item_id", cartItemID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	if item == nil {
		RespondNoContent(c)
		return
	}
	RespondOK(c, mapCartItemToResponse(item))
}

// RemoveItem handles DELETE /cart/item/{cartItemId}
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartItemID, err := uuid.Parse(c.Param("cartItemId"))
	if err != nil {
		RespondBadRequest(c, "Invalid cart item ID")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), cartItemID); err != nil {
		if errors.Is(err, cart.ErrCartItemNotFound{}) {
			RespondNotFound(c, "Cart item not found")
			return
		}
		h.logger.Error("Failed to remove cart item", "cart_item_id", cartItemID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}
