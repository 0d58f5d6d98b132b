package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to the reward catalog. The catalog is
// maintained by seed data and the admin surface; the reward engine only
// reads it.
type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// GetAvailableItems returns every item currently redeemable
	GetAvailableItems(ctx context.Context) ([]*Item, error)
	GetItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Item, error)
	GetItemByID(ctx context.Context, id uuid.UUID) (*Item, error)
}

// ErrCategoryNotFound indicates missing catalog category
type ErrCategoryNotFound struct {
	CategoryID uuid.UUID
}

func (e ErrCategoryNotFound) Error() string {
	return "reward category not found: " + e.CategoryID.String()
}

// Is implements the errors.Is interface for ErrCategoryNotFound
func (e ErrCategoryNotFound) Is(target error) bool {
	t, ok := target.(ErrCategoryNotFound)
	if !ok {
		return false
	}
	if t.CategoryID == uuid.Nil {
		return true
	}
	return e.CategoryID == t.CategoryID
}

// ErrItemNotFound indicates missing catalog item
type ErrItemNotFound struct {
	ItemID uuid.UUID
}

func (e ErrItemNotFound) Error() string {
	return "reward item not found: " + e.ItemID.String()
}

// Is implements the errors.Is interface for ErrItemNotFound
func (e ErrItemNotFound) Is(target error) bool {
	t, ok := target.(ErrItemNotFound)
	if !ok {
		return false
	}
	if t.ItemID == uuid.Nil {
		return true
	}
	return e.ItemID == t.ItemID
}

// ErrItemUnavailable indicates the item exists but cannot be redeemed
type ErrItemUnavailable struct {
	ItemID uuid.UUID
}

func (e ErrItemUnavailable) Error() string {
	return "reward item unavailable: " + e.ItemID.String()
}

// Is implements the errors.Is interface for ErrItemUnavailable
func (e ErrItemUnavailable) Is(target error) bool {
	t, ok := target.(ErrItemUnavailable)
	if !ok {
		return false
	}
	if t.ItemID == uuid.Nil {
		return true
	}
	return e.ItemID == t.ItemID
}
