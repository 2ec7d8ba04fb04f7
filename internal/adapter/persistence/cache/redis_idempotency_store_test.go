package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"square_gateway/internal/domain/entities"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	ttl    map[string]time.Duration
	err    error
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	f.ttl[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = value.(string)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func decodeStored(t *testing.T, rdb *fakeRedis, key string) entities.IdempotencyRecord {
	t.Helper()
	var r entities.IdempotencyRecord
	require.NoError(t, json.Unmarshal([]byte(rdb.data[keyPrefix+key]), &r))
	return r
}

func TestRedisIdempotencyStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := newRedisIdempotencyStore(rdb, time.Hour)

	ok, _, err := s.Acquire(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entities.IdempotencyInProgress, decodeStored(t, rdb, "k1").Status)
	assert.Equal(t, DefaultInProgressTTL, rdb.ttl[keyPrefix+"k1"])

	ok, existing, err := s.Acquire(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok, "in-progress key must not be acquired twice")
	assert.False(t, existing.Replayable())

	order := entities.OrderResult{ID: "o-1", LocationID: "L1", State: "OPEN", TotalMoney: entities.Money{Amount: 500, Currency: "USD"}, IdempotencyKey: "sq-1"}
	require.NoError(t, s.Complete(ctx, "k1", order))
	stored := decodeStored(t, rdb, "k1")
	assert.Equal(t, entities.IdempotencyCompleted, stored.Status)
	assert.Equal(t, time.Hour, rdb.ttl[keyPrefix+"k1"])

	ok, existing, err = s.Acquire(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok, "completed key must not be acquired again")
	require.True(t, existing.Replayable())
	assert.Equal(t, order, *existing.Order)
}

func TestRedisIdempotencyStore_AcquireEdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("unreadable record counts as in progress", func(t *testing.T) {
		rdb := newFakeRedis()
		rdb.data[keyPrefix+"k"] = "COMPLETED"
		s := newRedisIdempotencyStore(rdb, time.Hour)

		ok, existing, err := s.Acquire(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, entities.IdempotencyInProgress, existing.Status)
	})

	t.Run("lookup failure after lost race", func(t *testing.T) {
		rdb := newFakeRedis()
		rdb.data[keyPrefix+"k"] = `{"status":"IN_PROGRESS"}`
		rdb.getErr = errors.New("i/o timeout")
		s := newRedisIdempotencyStore(rdb, time.Hour)

		ok, _, err := s.Acquire(ctx, "k")
		assert.False(t, ok)
		assert.ErrorContains(t, err, "redis GET error")
		assert.ErrorIs(t, err, rdb.getErr)
	})
}

func TestRedisIdempotencyStore_ReleaseAllowsRetry(t *testing.T) {
	ctx := context.Background()
	s := newRedisIdempotencyStore(newFakeRedis(), 0)
	assert.Equal(t, DefaultCompletedTTL, s.completedTTL)

	ok, _, err := s.Acquire(ctx, "k2")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Release(ctx, "k2"))

	ok, _, err = s.Acquire(ctx, "k2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisIdempotencyStore_Errors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")
	s := newRedisIdempotencyStore(rdb, time.Hour)

	_, _, err := s.Acquire(ctx, "k")
	assert.ErrorContains(t, err, "redis SETNX error")
	assert.ErrorIs(t, err, rdb.err)
	assert.ErrorContains(t, s.Complete(ctx, "k", entities.OrderResult{ID: "o-1"}), "redis SET error")
	assert.ErrorContains(t, s.Release(ctx, "k"), "redis DEL error")
}
