package pointsledger

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the point movement audit ledger. Writes are idempotent
// on EntryID so the outbox poller can retry publishes safely.
type Repository interface {
	Record(ctx context.Context, entry *Entry) error
	GetByCard(ctx context.Context, cardID uuid.UUID, limit, offset int) ([]*Entry, int, error)
	GetByEntryID(ctx context.Context, entryID uuid.UUID) (*Entry, error)
}

// ErrEntryNotFound indicates missing ledger entry
type ErrEntryNotFound struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "ledger entry not found: " + e.EntryID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}
