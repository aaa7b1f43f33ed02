// Package cache provides the advisory TTL cache the read paths memoize
// through. Cached entries are derived, time-bounded copies; the store stays
// authoritative and correctness-sensitive reads must tolerate staleness up
// to the TTL minus any explicit invalidation.
package cache

import (
	"context"
	"time"
)

// DefaultTTL applies when callers pass a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// TTLs for the query-shaped keys. Shorter than DefaultTTL because the
// underlying lists churn on every recorded call.
const (
	CustomersByAgentTTL        = 2 * time.Minute
	InteractionsByAgentTTL     = time.Minute
	InteractionsWithDetailsTTL = time.Minute
)

// Cache is the advisory key/value store. Get unmarshals the cached value
// into dest and reports whether a live entry existed. Implementations are
// best-effort: encoding or backend failures degrade to a miss, never an
// error surfaced to the caller.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Clear(ctx context.Context)
}

// CustomersByAgentKey shapes the cache key for an agent's customer list.
func CustomersByAgentKey(agentID string) string {
	return "customers_agent_" + agentID
}

// InteractionsByAgentKey shapes the cache key for an agent's interaction list.
func InteractionsByAgentKey(agentID string) string {
	return "interactions_agent_" + agentID
}

// InteractionsWithDetailsKey caches the denormalized supervisor view.
const InteractionsWithDetailsKey = "interactions_with_details"
