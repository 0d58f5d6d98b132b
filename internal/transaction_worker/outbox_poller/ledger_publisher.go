package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurumx/reward-ledger/internal/domain/outbox"
	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
	"github.com/aurumx/reward-ledger/internal/domain/shared"
)

// LedgerPublisher projects outbox messages into the points ledger
type LedgerPublisher interface {
	PublishToLedger(ctx context.Context, message *outbox.Message) error
}

// LedgerPublisherImpl implements LedgerPublisher
type LedgerPublisherImpl struct {
	outboxRepo outbox.Repository
	ledgerRepo pointsledger.Repository
	logger     *slog.Logger
}

// NewLedgerPublisher creates a new publisher
func NewLedgerPublisher(
	outboxRepo outbox.Repository,
	ledgerRepo pointsledger.Repository,
	logger *slog.Logger,
) LedgerPublisher {
	return &LedgerPublisherImpl{
		outboxRepo: outboxRepo,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// PublishToLedger writes one outbox message's ledger entry to the audit
// store and marks the message processed. Recording is idempotent by entry
// ID, so a crash between the write and the status update only causes a
// harmless replay.
func (p *LedgerPublisherImpl) PublishToLedger(ctx context.Context, message *outbox.Message) error {
	entry, err := message.Entry()
	if err != nil {
		p.logger.Error("Failed to unmarshal ledger entry from outbox payload",
			"outbox_id", message.ID, "entry_id", message.EntryID.String(), "error", err,
		)
		// A corrupt payload never becomes publishable; park it immediately
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if entry.CorrelationID != "" {
		logger = p.logger.With("correlation_id", entry.CorrelationID)
	}

	logger.Info("Publishing outbox message to points ledger",
		"outbox_id", message.ID, "entry_id", entry.EntryID.String(), "type", string(entry.Type),
	)

	entry.RecordedAt = time.Now().UTC()

	if err := p.ledgerRepo.Record(ctx, entry); err != nil {
		logger.Error("Failed to record points ledger entry",
			"outbox_id", message.ID, "entry_id", entry.EntryID.String(), "error", err,
		)
		return fmt.Errorf("failed to record ledger entry %s: %w", entry.EntryID.String(), err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "entry_id", entry.EntryID.String(), "error", err,
		)
		return fmt.Errorf("ledger write for %s OK, but failed to mark outbox %d as PROCESSED: %w", entry.EntryID.String(), message.ID, err)
	}

	logger.Info("Outbox message processed", "outbox_id", message.ID, "entry_id", entry.EntryID.String())
	return nil
}
