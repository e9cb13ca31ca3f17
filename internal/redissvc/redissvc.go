package redissvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisService wraps the shared redis client and implements the cache-aside
// helpers used by the product handlers. Keys live under the "product" and
// "products:list" prefixes so the whole cache can be dropped in one sweep.
type RedisService struct {
	rdb *redis.Client
	ctx context.Context
	ttl time.Duration
}

func NewRedisService(rdb *redis.Client, ctx context.Context, ttl time.Duration) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
		ttl: ttl,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}

func ProductKey(barcode string) string {
	return "product:" + barcode
}

func ListKey(suffix string) string {
	return "products:list:" + suffix
}

// GetJSON reports whether the key was present and, if so, unmarshals it into dest.
func (s *RedisService) GetJSON(key string, dest any) (bool, error) {
	data, err := s.rdb.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisService) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(s.ctx, key, data, s.ttl).Err()
}

// Invalidate drops the given keys plus every cached list. Write paths call
// this so stale quantities never outlive a mutation.
func (s *RedisService) Invalidate(keys ...string) {
	_ = s.rdb.Del(s.ctx, keys...).Err()
	listKeys, err := s.rdb.Keys(s.ctx, ListKey("*")).Result()
	if err == nil && len(listKeys) > 0 {
		_ = s.rdb.Del(s.ctx, listKeys...).Err()
	}
}

// ClearProductCache removes every product-related key and returns how many were dropped.
func (s *RedisService) ClearProductCache() (int, error) {
	keys, err := s.rdb.Keys(s.ctx, "product*").Result()
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := s.rdb.Del(s.ctx, keys...).Err(); err != nil {
		return 0, err
	}
	return len(keys), nil
}

// CachedKeyCount counts the product-related keys currently cached.
func (s *RedisService) CachedKeyCount() (int, error) {
	keys, err := s.rdb.Keys(s.ctx, "product*").Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
