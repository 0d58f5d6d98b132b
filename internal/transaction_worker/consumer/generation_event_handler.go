package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aurumx/reward-ledger/internal/domain/shared"
	"github.com/aurumx/reward-ledger/internal/platform/messaging/producers"
	"github.com/aurumx/reward-ledger/internal/transaction_worker/service"
)

// GenerationEventHandler handles incoming generation request messages from Kafka
type GenerationEventHandler struct {
	generationService service.GenerationService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewGenerationEventHandler creates a new handler
func NewGenerationEventHandler(
	logger *slog.Logger,
	generationService service.GenerationService,
	producer producers.DeadLetterPublisher,
) *GenerationEventHandler {
	return &GenerationEventHandler{
		generationService: generationService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages
func (h *GenerationEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.GenerationRequest
	if err := json.Unmarshal(value, &request); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal generation request from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if request.CorrelationID != "" {
		logger = h.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Received generation request",
		"request_id", request.RequestID.String(),
		"card_id", request.CardID.String(),
		"count", request.Count,
	)

	if err := h.generationService.GenerateTransactions(ctx, &request); err != nil {
		logger.Error("Failed to generate transactions",
			"request_id", request.RequestID.String(),
			"card_id", request.CardID.String(),
			"error", err,
		)
		return fmt.Errorf("generation request %s failed: %w", request.RequestID.String(), err)
	}

	logger.Info("Generation request completed", "request_id", request.RequestID.String())
	return nil // Success, commit offset
}
