package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurumx/reward-ledger/internal/domain/card"
	"github.com/aurumx/reward-ledger/internal/domain/customer"
	"github.com/aurumx/reward-ledger/internal/rewards_api/middleware"
	"github.com/aurumx/reward-ledger/internal/rewards_api/service"
)

// RewardsHandler handles HTTP requests for balances, accrual, ledger history
// and redemption history
type RewardsHandler struct {
	balanceService    service.BalanceService
	accrualService    service.AccrualService
	redemptionService service.RedemptionService
	logger            *slog.Logger
}

// NewRewardsHandler creates a new rewards handler
func NewRewardsHandler(
	logger *slog.Logger,
	balanceService service.BalanceService,
	accrualService service.AccrualService,
	redemptionService service.RedemptionService,
) *RewardsHandler {
	return &RewardsHandler{
		balanceService:    balanceService,
		accrualService:    accrualService,
		redemptionService: redemptionService,
		logger:            logger,
	}
}

// splitTarget breaks a gin wildcard parameter into its path segments
func splitTarget(target string) []string {
	return strings.Split(strings.Trim(target, "/"), "/")
}

// GetBalance dispatches /balance/{customerId} and /balance/card/{cardId}.
// Both live under one wildcard because gin rejects a static segment next to
// a path parameter.
func (h *RewardsHandler) GetBalance(c *gin.Context) {
	segments := splitTarget(c.Param("target"))

	switch {
	case len(segments) == 1:
		h.getCustomerSummary(c, segments[0])
	case len(segments) == 2 && segments[0] == "card":
		h.getCardBalance(c, segments[1])
	default:
		RespondNotFound(c, "")
	}
}

func (h *RewardsHandler) getCustomerSummary(c *gin.Context, idParam string) {
	customerID, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid customer ID")
		return
	}

	summary, err := h.balanceService.GetCustomerSummary(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound{}) {
			RespondNotFound(c, "Customer not found")
			return
		}
		h.logger.Error("Failed to get balance summary", "customer_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapSummaryToResponse(summary))
}

func (h *RewardsHandler) getCardBalance(c *gin.Context, idParam string) {
	cardID, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid card ID")
		return
	}

	bal, err := h.balanceService.GetCardBalance(c.Request.Context(), cardID)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound{}) {
			RespondNotFound(c, "Credit card not found")
			return
		}
		h.logger.Error("Failed to get card balance", "card_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBalanceToResponse(bal))
}

// Process dispatches /process/{customerId} and /process/card/{cardId} to the
// accrual service
func (h *RewardsHandler) Process(c *gin.Context) {
	segments := splitTarget(c.Param("target"))
	correlationID := middleware.GetCorrelationID(c)

	switch {
	case len(segments) == 1:
		customerID, err := uuid.Parse(segments[0])
		if err != nil {
			RespondBadRequest(c, "Invalid customer ID")
			return
		}
		result, err := h.accrualService.ProcessCustomer(c.Request.Context(), customerID, correlationID)
		h.respondAccrual(c, result, err)
	case len(segments) == 2 && segments[0] == "card":
		cardID, err := uuid.Parse(segments[1])
		if err != nil {
			RespondBadRequest(c, "Invalid card ID")
			return
		}
		result, err := h.accrualService.ProcessCard(c.Request.Context(), cardID, correlationID)
		h.respondAccrual(c, result, err)
	default:
		RespondNotFound(c, "")
	}
}

func (h *RewardsHandler) respondAccrual(c *gin.Context, result *service.AccrualResult, err error) {
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrCustomerNotFound{}):
			RespondNotFound(c, "Customer not found")
		case errors.Is(err, card.ErrCardNotFound{}):
			RespondNotFound(c, "Credit card not found")
		default:
			h.logger.Error("Accrual run failed", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapAccrualToResponse(result))
}

// GetLedger handles GET /ledger/{cardId}, returning the card's point movement
// history from the audit ledger
func (h *RewardsHandler) GetLedger(c *gin.Context) {
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

	entries, total, err := h.balanceService.GetCardLedger(c.Request.Context(), cardID, params.Page, params.PerPage)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound{}) {
			RespondNotFound(c, "Credit card not found")
			return
		}
		h.logger.Error("Failed to get points ledger", "card_id", cardID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	resp := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, mapLedgerEntryToResponse(e))
	}
	RespondWithPaginatedData(c, http.StatusOK, resp, params.Page, params.PerPage, total)
}

// GetHistory handles GET /history/{customerId}, returning past redemptions
func (h *RewardsHandler) GetHistory(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		RespondBadRequest(c, "Invalid customer ID")
		return
	}

	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	recs, total, err := h.redemptionService.GetHistory(c.Request.Context(), customerID, params.Page, params.PerPage)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound{}) {
			RespondNotFound(c, "Customer not found")
			return
		}
		h.logger.Error("Failed to get redemption history", "customer_id", customerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	resp := make([]RedemptionResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, mapRedemptionToResponse(rec))
	}
	RespondWithPaginatedData(c, http.StatusOK, resp, params.Page, params.PerPage, total)
}
