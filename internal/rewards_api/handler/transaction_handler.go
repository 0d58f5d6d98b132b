package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/rewards_api/middleware"
	"github.com/aurumx/reward-ledger/internal/rewards_api/service"
)

// TransactionHandler handles HTTP requests for card transactions
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Generate handles POST /transactions/generate. The request is published for
// the worker and acknowledged with 202 before any transaction exists.
func (h *TransactionHandler) Generate(c *gin.Context) {
	var req GenerateTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cardID, _ := uuid.Parse(req.CreditCardID)

	request, err := h.transactionService.RequestGeneration(c.Request.Context(), cardID, req.Count, middleware.GetCorrelationID(c))
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound{}) {
			RespondNotFound(c, "Credit card not found")
			return
		}
		h.logger.Error("Failed to request transaction generation", "card_id", req.CreditCardID, "error", err)
		RespondInternalError(c)
		return
	}

	RespondAccepted(c, GenerationAcceptedResponse{
		RequestID:    request.RequestID.String(),
		CreditCardID: request.CardID.String(),
		Count:        request.Count,
		Status:       "PENDING",
	})
}

// GetByCard handles GET /transactions/card/{cardId}, paginated, newest first
func (h *TransactionHandler) GetByCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("cardId"))
	if err != nil {
		RespondBadRequest(c, "Invalid card ID")
		return
	}

	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	txns, total, err := h.transactionService.GetByCard(c.Request.Context(), cardID, params.Page, params.PerPage)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound{}) {
			RespondNotFound(c, "Credit card not found")
			return
		}
		h.logger.Error("Failed to get transactions", "card_id", cardID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	resp := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		resp = append(resp, mapTransactionToResponse(t))
	}
	RespondWithPaginatedData(c, http.StatusOK, resp, params.Page, params.PerPage, total)
}
