package shared

import (
	"time"

	"github.com/google/uuid"
)

// GenerationRequest defines a Kafka message asking the worker to create
// simulated transactions for a credit card
type GenerationRequest struct {
	RequestID     uuid.UUID `json:"request_id"`
	CardID        uuid.UUID `json:"card_id"`
	Count         int       `json:"count,omitempty"` // 0 means use the configured default
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}
