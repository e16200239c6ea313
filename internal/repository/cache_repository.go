package repository

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

// CacheRepository is the local key-value store of the reconciliation layer:
// per-user namespaced keys (@<domain>_<userId>) holding JSON blobs. It is the
// fallback when the record store is unreachable, so entries do not expire.
type CacheRepository struct {
	Rdb *redis.Client
}

func NewCacheRepository(rdb *redis.Client) *CacheRepository {
	return &CacheRepository{Rdb: rdb}
}

// ErrCacheMiss is redis.Nil re-exported so callers need not import redis.
var ErrCacheMiss = redis.Nil

func (r *CacheRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.Rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *CacheRepository) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Rdb.Set(ctx, key, data, 0).Err()
}

func (r *CacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.Rdb.Del(ctx, keys...).Err()
}
