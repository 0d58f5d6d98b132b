// Package redis provides the Redis-backed cache for customer balance
// summaries. The cache is read-through: services populate it after a miss
// and invalidate it whenever a balance mutates.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aurumx/reward-ledger/internal/domain/balance"
)

const summaryKeyPrefix = "balance:summary:"

// BalanceCache caches customer balance summaries with a TTL. A cache failure
// is never fatal; callers fall back to the database.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewBalanceCache creates a Redis-backed balance summary cache
func NewBalanceCache(logger *slog.Logger, client *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func summaryKey(customerID uuid.UUID) string {
	return summaryKeyPrefix + customerID.String()
}

// Get returns the cached summary for a customer, or (nil, nil) on a miss
func (c *BalanceCache) Get(ctx context.Context, customerID uuid.UUID) (*balance.Summary, error) {
	data, err := c.client.Get(ctx, summaryKey(customerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Warn("Failed to read balance summary from cache", "customer_id", customerID.String(), "error", err)
		return nil, fmt.Errorf("failed to read balance summary from cache: %w", err)
	}

	var summary balance.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		// A corrupt entry is treated as a miss and dropped
		c.logger.Warn("Failed to decode cached balance summary", "customer_id", customerID.String(), "error", err)
		c.client.Del(ctx, summaryKey(customerID))
		return nil, nil
	}

	return &summary, nil
}

// Set stores the summary under the configured TTL
func (c *BalanceCache) Set(ctx context.Context, summary *balance.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode balance summary: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey(summary.CustomerID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache balance summary", "customer_id", summary.CustomerID.String(), "error", err)
		return fmt.Errorf("failed to cache balance summary: %w", err)
	}

	return nil
}

// Invalidate drops the cached summary for a customer after a balance mutation
func (c *BalanceCache) Invalidate(ctx context.Context, customerID uuid.UUID) error {
	if err := c.client.Del(ctx, summaryKey(customerID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate balance summary", "customer_id", customerID.String(), "error", err)
		return fmt.Errorf("failed to invalidate balance summary: %w", err)
	}
	return nil
}
