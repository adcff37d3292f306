package utils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const likeCountTTL = 24 * time.Hour

// RedisStatusStore caches per-post like counts so hot posts don't hit the
// database on every render. It is strictly a cache: the likes table stays
// the source of truth and the like service writes fresh counts through on
// every toggle. All methods are nil-receiver safe so the store can be left
// unconfigured (tests, local runs without redis).
type RedisStatusStore struct {
	client *redis.Client
}

func NewRedisStatusStore(client *redis.Client) *RedisStatusStore {
	return &RedisStatusStore{client: client}
}

// NewRedisStatusStoreFromEnv builds a store from REDIS_ADDR, returning nil
// (cache disabled) when the variable is unset.
func NewRedisStatusStoreFromEnv() *RedisStatusStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return NewRedisStatusStore(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
	}))
}

func likeCountKey(postID string) string {
	return fmt.Sprintf("post_like_count/%s", postID)
}

// GetLikeCount returns the cached count for a post. The second return is
// false on a miss or when the cache is disabled.
func (r *RedisStatusStore) GetLikeCount(postID string) (int64, bool) {
	if r == nil || r.client == nil {
		return 0, false
	}
	val, err := r.client.Get(context.Background(), likeCountKey(postID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// SetLikeCount writes a fresh count through. Errors are ignored: losing a
// cache write only costs a database count on the next read.
func (r *RedisStatusStore) SetLikeCount(postID string, count int64) {
	if r == nil || r.client == nil {
		return
	}
	r.client.Set(context.Background(), likeCountKey(postID), count, likeCountTTL)
}

// InvalidateLikeCount drops the cached count, used when a post is deleted.
func (r *RedisStatusStore) InvalidateLikeCount(postID string) {
	if r == nil || r.client == nil {
		return
	}
	r.client.Del(context.Background(), likeCountKey(postID))
}
