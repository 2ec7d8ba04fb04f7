package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	// Short enough that a crashed request does not lock its key for long.
	DefaultInProgressTTL = 30 * time.Second
	DefaultCompletedTTL  = 24 * time.Hour

	keyPrefix = "idem:create-order:"
)

type redisCommander interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisIdempotencyStore tracks client Idempotency-Key headers.
//
// A key moves IN_PROGRESS -> COMPLETED on success, or is deleted on failure so the
// client can retry with the same key. Values are JSON encoded entities.IdempotencyRecord;
// a COMPLETED record carries the order it produced.
type RedisIdempotencyStore struct {
	client        redisCommander
	inProgressTTL time.Duration
	completedTTL  time.Duration
}

var _ interfaces.IIdempotencyStore = (*RedisIdempotencyStore)(nil)

func NewRedisIdempotencyStore(client *redis.Client, completedTTL time.Duration) *RedisIdempotencyStore {
	return newRedisIdempotencyStore(client, completedTTL)
}

func newRedisIdempotencyStore(client redisCommander, completedTTL time.Duration) *RedisIdempotencyStore {
	if completedTTL <= 0 {
		completedTTL = DefaultCompletedTTL
	}
	return &RedisIdempotencyStore{
		client:        client,
		inProgressTTL: DefaultInProgressTTL,
		completedTTL:  completedTTL,
	}
}

// Acquire returns false and the stored record when the key is already IN_PROGRESS or COMPLETED.
func (s *RedisIdempotencyStore) Acquire(ctx context.Context, key string) (bool, entities.IdempotencyRecord, error) {
	inProgress := entities.IdempotencyRecord{Status: entities.IdempotencyInProgress}
	value, err := encodeRecord(inProgress)
	if err != nil {
		return false, entities.IdempotencyRecord{}, err
	}

	set, err := s.client.SetNX(ctx, keyPrefix+key, value, s.inProgressTTL).Result()
	if err != nil {
		return false, entities.IdempotencyRecord{}, fmt.Errorf("redis SETNX error: %w", err)
	}
	if set {
		return true, inProgress, nil
	}

	raw, err := s.client.Get(ctx, keyPrefix+key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// Expired between SETNX and GET; the holder is still running or just gave up.
		return false, inProgress, nil
	case err != nil:
		return false, entities.IdempotencyRecord{}, fmt.Errorf("redis GET error: %w", err)
	}

	var existing entities.IdempotencyRecord
	if err := json.Unmarshal([]byte(raw), &existing); err != nil {
		// Unreadable records never replay.
		return false, inProgress, nil
	}
	return false, existing, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, order entities.OrderResult) error {
	value, err := encodeRecord(entities.IdempotencyRecord{Status: entities.IdempotencyCompleted, Order: &order})
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+key, value, s.completedTTL).Err(); err != nil {
		return fmt.Errorf("redis SET error: %w", err)
	}
	return nil
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis DEL error: %w", err)
	}
	return nil
}

func encodeRecord(r entities.IdempotencyRecord) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode idempotency record: %w", err)
	}
	return string(b), nil
}
