package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/site-backend/internal/config"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
)

// Counter counts hits on key within the current window.
type Counter interface {
	Hit(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// NewRedisClient returns nil when no address is configured or the server
// does not answer; rate limiting then lets everything through.
func NewRedisClient(cfg config.RedisConfig, log *slog.Logger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, rate limiting disabled", "addr", cfg.Addr, "err", err)
		_ = client.Close()
		return nil
	}
	return client
}

// RateLimit is a fixed window limiter keyed by client ip and route. Counter
// errors never block a request.
func RateLimit(cfg config.RateLimitConfig, counter Counter, log *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || counter == nil || cfg.Limit <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		t := time.Now()
		window := t.UnixNano() / int64(cfg.Window)
		key := rateKey(cfg.Prefix, c.ClientIP(), c.Request.Method+" "+c.FullPath(), window)

		count, err := counter.Hit(c.Request.Context(), key, cfg.Window)
		if err != nil {
			log.Warn("rate limit counter failed", "key", key, "err", err)
			c.Next()
			return
		}

		remaining := int64(cfg.Limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Limit) {
			resetAt := time.Unix(0, (window+1)*int64(cfg.Window))
			secs := int(resetAt.Sub(t).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.Write(c, http.StatusTooManyRequests, "too_many_requests", "Too many requests, please try again later")
			return
		}

		c.Next()
	}
}

func rateKey(prefix, ip, route string, window int64) string {
	if ip == "" {
		ip = "unknown"
	}
	return strings.Join([]string{prefix, ip, route, fmt.Sprint(window)}, ":")
}
