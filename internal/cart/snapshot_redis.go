package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/verdantly/verdantly-backend/pkg/redis"
)

// RedisSnapshotStore keeps cart snapshots in Redis with a TTL matching the
// cart's maximum age, so abandoned carts expire server-side without a
// cleanup job.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore builds the store. TTL zero means keys never expire.
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) (*RedisSnapshotStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisSnapshotStore{client: client, ttl: ttl}, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	return s.client.Set(ctx, s.client.CartSnapshotKey(sessionID), payload, s.ttl)
}

func (s *RedisSnapshotStore) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	payload, err := s.client.GetBytes(ctx, s.client.CartSnapshotKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading cart snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		// Corrupt payloads are treated as absent; the cart starts fresh.
		return nil, nil
	}
	return &snap, nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.CartSnapshotKey(sessionID))
}
