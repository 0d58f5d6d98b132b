package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to customers. Soft-deleted customers are
// treated as absent.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
}
