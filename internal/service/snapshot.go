package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"github.com/redis/go-redis/v9"
)

const snapshotTTL = 24 * time.Hour

// RedisSnapshotStore keeps the last generation input of each user in Redis.
type RedisSnapshotStore struct {
	redis *redis.Client
	ttl   time.Duration
}

var _ SnapshotStore = (*RedisSnapshotStore)(nil)

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{redis: client, ttl: snapshotTTL}
}

func snapshotKey(userID uuid.UUID) string {
	return fmt.Sprintf("mealplan:inputs:%s", userID)
}

func (s *RedisSnapshotStore) Save(ctx context.Context, req *types.GenerationRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal generation input: %w", err)
	}
	if err := s.redis.Set(ctx, snapshotKey(req.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save generation input to Redis: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Latest(ctx context.Context, userID uuid.UUID) (*types.GenerationRequest, error) {
	data, err := s.redis.Get(ctx, snapshotKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("generation input for user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation input from Redis: %w", err)
	}

	var req types.GenerationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation input: %w", err)
	}
	return &req, nil
}
