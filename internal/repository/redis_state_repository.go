package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/codereg/internal/models"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
)

const stateKeyPrefix = "codereg:workspace:"

// RedisStateRepository stores workspace snapshots as JSON values that expire with the session.
type RedisStateRepository struct {
	client *redis.Client
}

// NewRedisStateRepository constructs a Redis backed store.
func NewRedisStateRepository(client *redis.Client) *RedisStateRepository {
	return &RedisStateRepository{client: client}
}

// StateKey returns the Redis key holding the workspace of a session.
func StateKey(sessionID string) string {
	return stateKeyPrefix + sessionID
}

// Load retrieves and unmarshals the workspace state.
func (r *RedisStateRepository) Load(ctx context.Context, sessionID string) (*models.AppState, error) {
	if r.client == nil {
		return nil, appErrors.ErrStateMiss
	}

	key := StateKey(sessionID)
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrStateMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	state := models.NewAppState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("unmarshal workspace %s: %w", key, err)
	}
	return state, nil
}

// Save marshals the state and stores it with the given TTL.
func (r *RedisStateRepository) Save(ctx context.Context, sessionID string, state *models.AppState, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis state store not configured")
	}

	key := StateKey(sessionID)
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal workspace %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisStateRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
