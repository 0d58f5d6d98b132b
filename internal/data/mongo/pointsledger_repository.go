package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aurumx/reward-ledger/internal/domain/pointsledger"
)

const (
	// LedgerCollectionName is the name of the points ledger collection in MongoDB
	LedgerCollectionName = "points_ledger"
)

// PointsLedgerRepository implements the pointsledger.Repository interface for MongoDB
type PointsLedgerRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewPointsLedgerRepository creates a new MongoDB points ledger repository
func NewPointsLedgerRepository(logger *slog.Logger, db *mongo.Database) pointsledger.Repository {
	return &PointsLedgerRepository{
		db:     db,
		logger: logger,
	}
}

// Record stores a ledger entry. The write is idempotent on entry ID so the
// outbox poller can retry a publish that failed after the insert landed.
func (r *PointsLedgerRepository) Record(ctx context.Context, entry *pointsledger.Entry) error {
	collection := r.db.Collection(LedgerCollectionName)

	existing, err := r.GetByEntryID(ctx, entry.EntryID)
	if err != nil && !errors.Is(err, pointsledger.ErrEntryNotFound{}) {
		r.logger.Error("Failed to check for existing ledger entry",
			"entry_id", entry.EntryID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing ledger entry: %w", err)
	}

	if existing != nil {
		return nil // Entry already recorded
	}

	_, err = collection.InsertOne(ctx, entry)
	if err != nil {
		r.logger.Error("Failed to record ledger entry",
			"entry_id", entry.EntryID.String(),
			"error", err)
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return nil
}

// GetByEntryID retrieves a ledger entry by its entry ID.
// Returns ErrEntryNotFound if no entry exists.
func (r *PointsLedgerRepository) GetByEntryID(ctx context.Context, entryID uuid.UUID) (*pointsledger.Entry, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"entry_id": entryID}
	var entry pointsledger.Entry
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pointsledger.ErrEntryNotFound{EntryID: entryID}
		}
		r.logger.Error("Failed to get ledger entry",
			"entry_id", entryID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return &entry, nil
}

// GetByCard retrieves paginated ledger entries for a card along with the
// total count. Results are sorted by creation time in descending order.
func (r *PointsLedgerRepository) GetByCard(ctx context.Context, cardID uuid.UUID, limit, offset int) ([]*pointsledger.Entry, int, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"card_id": cardID}

	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count ledger entries",
			"card_id", cardID.String(),
			"error", err)
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get ledger entries",
			"card_id", cardID.String(),
			"error", err)
		return nil, 0, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*pointsledger.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode ledger entries",
			"card_id", cardID.String(),
			"error", err)
		return nil, 0, fmt.Errorf("failed to decode ledger entries: %w", err)
	}

	return entries, int(count), nil
}
