package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopping-assistant-be/pkg/memory"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "session:"

// SessionCache stores memory snapshots in Redis so several API instances see
// the same recent conversation.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ memory.SessionCache = (*SessionCache)(nil)

func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

func key(userID string) string {
	return keyPrefix + userID
}

func (c *SessionCache) Get(ctx context.Context, userID string) (*memory.Snapshot, error) {
	data, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var snapshot memory.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &snapshot, nil
}

func (c *SessionCache) Set(ctx context.Context, snapshot *memory.Snapshot) error {
	if snapshot == nil {
		return nil
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return c.client.Set(ctx, key(snapshot.UserID), data, c.ttl).Err()
}

func (c *SessionCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, key(userID)).Err()
}

func (c *SessionCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
