package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// acquireScript increments the counter only while it is below ARGV[1] and
// refreshes its expiry. It returns max+1 when the key is full.
var acquireScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current == false then
	current = 0
else
	current = tonumber(current)
end
if current >= tonumber(ARGV[1]) then
	return current + 1
end
local newCount = redis.call('INCR', KEYS[1])
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[2]))
return newCount
`)

// releaseScript decrements the counter and drops it at zero.
var releaseScript = redis.NewScript(`
local count = redis.call('DECR', KEYS[1])
if tonumber(count) <= 0 then
	redis.call('DEL', KEYS[1])
	return 0
end
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
return count
`)

// RedisLimiter shares the counters between every API instance. The TTL
// frees slots leaked by a crashed instance.
type RedisLimiter struct {
	client        *redis.Client
	maxConcurrent int
	keyPrefix     string
	ttl           time.Duration
}

// NewRedisLimiter creates a RedisLimiter.
func NewRedisLimiter(client *redis.Client, maxConcurrent int, keyPrefix string, ttl time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:        client,
		maxConcurrent: maxConcurrent,
		keyPrefix:     keyPrefix,
		ttl:           ttl,
	}
}

// Acquire takes a slot of key atomically.
func (rl *RedisLimiter) Acquire(ctx context.Context, key string) error {
	result, err := acquireScript.Run(ctx, rl.client, []string{rl.keyPrefix + key},
		rl.maxConcurrent, int(rl.ttl.Seconds())).Int64()
	if err != nil {
		return fmt.Errorf("acquire slot: %w", err)
	}
	if int(result) > rl.maxConcurrent {
		return ErrLimitReached
	}
	return nil
}

// Release returns a slot of key.
func (rl *RedisLimiter) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, rl.client, []string{rl.keyPrefix + key}, int(rl.ttl.Seconds())).Err(); err != nil {
		return fmt.Errorf("release slot: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (rl *RedisLimiter) Close() error {
	return rl.client.Close()
}
