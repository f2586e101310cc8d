package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter window per key: the first hit arms the expiry, every later
// hit inside the window increments the same counter.
const redisLimitScript = `
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if hits > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const (
	redisLimitPrefix  = "ratelimit:"
	redisLimitTimeout = 250 * time.Millisecond
)

// RedisLimiter is the cross-instance counterpart of RateLimiter: every
// API instance pointed at the same Redis shares one window per key.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(redisLimitScript),
	}
}

// Allow reports whether key may take another hit inside its window.
// Degenerate inputs and an unreachable Redis never block a request.
func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl == 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimitTimeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{redisLimitPrefix + key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}
