package redemption

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines redemption record persistence operations
type Repository interface {
	// Create persists the record and its item snapshots
	Create(ctx context.Context, rec *Record) error

	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*Record, int, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrRedemptionNotFound indicates missing redemption record
type ErrRedemptionNotFound struct {
	RedemptionID uuid.UUID
}

func (e ErrRedemptionNotFound) Error() string {
	return "redemption not found: " + e.RedemptionID.String()
}

// Is implements the errors.Is interface for ErrRedemptionNotFound
func (e ErrRedemptionNotFound) Is(target error) bool {
	t, ok := target.(ErrRedemptionNotFound)
	if !ok {
		return false
	}
	if t.RedemptionID == uuid.Nil {
		return true
	}
	return e.RedemptionID == t.RedemptionID
}
