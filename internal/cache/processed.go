// Package cache holds the durable per-game processed-play-ID set in Redis.
// The set is the idempotency boundary across poll cycles: a play id that is
// already present is never scored again, even under feed re-delivery.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Processed tracks which play ids have been visited per game. Entries expire
// after a TTL to bound growth once a game is over.
type Processed struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProcessed creates a processed-set accessor. ttl bounds how long a
// game's set survives after its last write (24h by default).
func NewProcessed(client *redis.Client, ttl time.Duration) *Processed {
	return &Processed{client: client, ttl: ttl}
}

func key(gameID uuid.UUID) string {
	return fmt.Sprintf("live:processed:%s", gameID)
}

// Load returns the full processed set for a game. A missing key reads as an
// empty set.
func (p *Processed) Load(ctx context.Context, gameID uuid.UUID) (map[string]bool, error) {
	members, err := p.client.SMembers(ctx, key(gameID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load processed set: %w", err)
	}
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	return set, nil
}

// Save appends newly visited play ids and refreshes the expiry. Existing
// members are untouched, so the set only grows within the TTL window.
func (p *Processed) Save(ctx context.Context, gameID uuid.UUID, playIDs []string) error {
	if len(playIDs) == 0 {
		return nil
	}
	members := make([]interface{}, len(playIDs))
	for i, id := range playIDs {
		members[i] = id
	}

	pipe := p.client.Pipeline()
	pipe.SAdd(ctx, key(gameID), members...)
	pipe.Expire(ctx, key(gameID), p.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save processed set: %w", err)
	}
	return nil
}

// Clear drops a game's processed set. Used by the CLI when re-monitoring a
// game from scratch.
func (p *Processed) Clear(ctx context.Context, gameID uuid.UUID) error {
	if err := p.client.Del(ctx, key(gameID)).Err(); err != nil {
		return fmt.Errorf("clear processed set: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection for health checks.
func (p *Processed) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
