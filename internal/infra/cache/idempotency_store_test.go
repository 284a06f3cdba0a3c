//go:build unit

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"tour-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis keeps values in a map and ignores expirations.
type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.values[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", f.err)
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, f.err)
}

func TestIdempotencyStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	store := NewIdempotencyStore(rdb)

	rec, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, rec)

	processing := shared.IdempotencyRecord{Status: shared.IdempotencyProcessing, RequestHash: "h"}
	ok, err := store.Reserve(ctx, "k", processing, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, rdb.ttls["k"])

	ok, err = store.Reserve(ctx, "k", processing, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	done := shared.IdempotencyRecord{
		Status:       shared.IdempotencyCompleted,
		RequestHash:  "h",
		ResponseCode: 201,
		ResponseBody: []byte(`{"success":true}`),
	}
	require.NoError(t, store.Save(ctx, "k", done, 24*time.Hour))

	rec, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, &done, rec)

	require.NoError(t, store.Release(ctx, "k"))
	rec, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestIdempotencyStore_Errors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	store := NewIdempotencyStore(rdb)

	rdb.values["corrupt"] = "{not json"
	_, err := store.Get(ctx, "corrupt")
	require.Error(t, err)

	rdb.err = errors.New("connection refused")
	_, err = store.Get(ctx, "k")
	require.Error(t, err)
	_, err = store.Reserve(ctx, "k", shared.IdempotencyRecord{}, time.Minute)
	require.Error(t, err)
}
