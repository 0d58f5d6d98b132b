package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
	"github.com/aurumx/reward-ledger/internal/domain/shared"
)

// Message is a pending ledger entry awaiting projection into the audit
// store. The entry is serialized at write time, inside the same database
// transaction that mutated the balance, so the poller can publish it
// without rereading relational state.
type Message struct {
	ID            int64
	EntryID       uuid.UUID
	CardID        uuid.UUID
	Payload       []byte
	Status        shared.OutboxStatus
	Attempts      int
	CreatedAt     time.Time
	LastAttemptAt *time.Time
}

// NewMessage serializes a ledger entry into an outbox message
func NewMessage(entry *pointsledger.Entry) (*Message, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return &Message{
		EntryID:   entry.EntryID,
		CardID:    entry.CardID,
		Payload:   payload,
		Status:    shared.OutboxStatusPending,
		CreatedAt: time.Now(),
	}, nil
}

// Entry deserializes the message payload back into a ledger entry
func (m *Message) Entry() (*pointsledger.Entry, error) {
	var entry pointsledger.Entry
	if err := json.Unmarshal(m.Payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
