package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type MemoryRateLimiter struct {
	limit    int
	window   time.Duration
	now      func() time.Time
	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	count     int
	resetTime time.Time
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	limit, window = limiterDefaults(limit, window)
	return &MemoryRateLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		visitors: map[string]*visitor{},
	}
}

func (rl *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v := rl.visitors[key]
	if v == nil || now.After(v.resetTime) {
		rl.visitors[key] = &visitor{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true, nil
	}

	if v.count >= rl.limit {
		return false, nil
	}
	v.count++
	return true, nil
}

// RedisRateLimiter shares the window between all API instances.
type RedisRateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

var redisFixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	limit, window = limiterDefaults(limit, window)
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisRateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := redisFixedWindowScript.Run(ctx, rl.rdb, []string{rl.prefix + ":" + key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return false, err
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("неожиданный тип ответа redis %T", res)
	}

	return count <= int64(rl.limit), nil
}

func limiterDefaults(limit int, window time.Duration) (int, time.Duration) {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return limit, window
}

// rateLimitMiddleware keys authenticated requests by user and anonymous ones
// by client address.
func (h *Handler) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if identity, err := getIdentity(c); err == nil {
			key = "user:" + strconv.FormatInt(identity.UserID, 10)
		}

		allowed, err := h.limiter.Allow(c.Request.Context(), "bookings:"+key)
		if err != nil {
			h.logger.Warn("ошибка ограничителя запросов", zap.String("key", key), zap.Error(err))
			if h.config.RateLimit.FailOpen {
				c.Next()
				return
			}
			errorResponse(c, http.StatusServiceUnavailable, "ограничитель запросов недоступен")
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(h.config.RateLimit.Window.Seconds())))
			errorResponse(c, http.StatusTooManyRequests, "слишком много запросов, попробуйте позже")
			return
		}

		c.Next()
	}
}
