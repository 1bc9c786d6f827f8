package redisstore

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"fatiguelens/internal/models"
)

const snapshotKey = "predictions:latest"

// Store mirrors the last prediction snapshot into redis so the read-only
// fallback survives a process restart. Writes are best-effort; callers log and
// move on.
type Store struct {
	client *redis.Client
}

// NewStore returns a redis-backed snapshot mirror.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save overwrites the mirrored snapshot.
func (s *Store) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKey, data, 0).Err()
}

// Get returns the mirrored snapshot. redis.Nil means nothing was ever saved.
func (s *Store) Get(ctx context.Context) (*models.Snapshot, error) {
	result, err := s.client.Get(ctx, snapshotKey).Result()
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(result), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
