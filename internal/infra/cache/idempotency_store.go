package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// RedisCmdable is the subset of the redis client the store uses.
type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type IdempotencyStore struct {
	rdb RedisCmdable
}

func NewIdempotencyStore(rdb RedisCmdable) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

var _ shared.IdempotencyStore = (*IdempotencyStore)(nil)

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*shared.IdempotencyRecord, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "redis get")
	}

	var rec shared.IdempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errs.Wrap(err, "decode idempotency record")
	}
	return &rec, nil
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string, rec shared.IdempotencyRecord, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return false, errs.Wrap(err, "encode idempotency record")
	}
	ok, err := s.rdb.SetNX(ctx, key, raw, ttl).Result()
	if err != nil {
		return false, errs.Wrap(err, "redis setnx")
	}
	return ok, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, rec shared.IdempotencyRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return errs.Wrap(err, "encode idempotency record")
	}
	return errs.Wrap(s.rdb.Set(ctx, key, raw, ttl).Err(), "redis set")
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return errs.Wrap(s.rdb.Del(ctx, key).Err(), "redis del")
}
