package middleware

// Distributed token-bucket rate limiting backed by Redis.  The bucket
// state lives in a Redis hash and is refilled atomically by a Lua
// script, so multiple instances share one budget per key.  Without a
// Redis client the limiter disables itself, and Redis errors fail open
// so a cache outage never takes the API down with it.

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/smarotkar/trek-booking/internal/config"
)

var bucketScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])

    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    if interval_ms > 0 and refill_tokens > 0 then
        local elapsed = math.max(0, now_ms - last_refill)
        local intervals = math.floor(elapsed / interval_ms)
        if intervals > 0 then
            tokens = math.min(capacity, tokens + (intervals * refill_tokens))
            last_refill = last_refill + (intervals * interval_ms)
        end
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        local until_next = interval_ms - (now_ms - last_refill)
        if until_next < 0 then until_next = 0 end
        retry_after_ms = until_next
    end

    redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
    redis.call('EXPIRE', key, ttl_seconds)

    return { allowed, tokens, retry_after_ms }
`)

// RateLimit returns the token-bucket middleware.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := rateKey(cfg, c)

            vals, err := bucketScript.Run(c.Request().Context(), rdb, []string{key},
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                int64(cfg.TTL/time.Second),
            ).Result()
            if err != nil {
                return next(c) // fail open
            }

            arr, ok := vals.([]interface{})
            if !ok || len(arr) != 3 {
                return next(c)
            }
            allowed := asInt64(arr[0]) == 1
            remaining := asInt64(arr[1])
            retryMs := asInt64(arr[2])

            c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

            if !allowed {
                secs := int(math.Ceil(float64(retryMs) / 1000.0))
                if secs < 0 {
                    secs = 0
                }
                c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "message":     "Too many requests",
                    "retry_after": secs,
                })
            }
            return next(c)
        }
    }
}

func asInt64(v interface{}) int64 {
    switch t := v.(type) {
    case int64:
        return t
    case int:
        return int64(t)
    case float64:
        return int64(t)
    case string:
        if n, err := strconv.ParseInt(t, 10, 64); err == nil {
            return n
        }
    }
    return 0
}

// rateKey builds the bucket key from the client IP and, when
// authenticated, the user id, so logged-in users do not share a budget
// with everyone behind the same NAT.  The user dimension only sees a
// value when the limiter runs behind JWTAuth; routes without token
// parsing must use the "ip" strategy or everything lands in one
// shared anon bucket.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    uid := "anon"
    if v, ok := c.Get(CtxUserID).(string); ok && v != "" {
        uid = v
    }
    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "user":
        parts = append(parts, "user", uid)
    default: // "ip_user"
        parts = append(parts, "ip", ip, "user", uid)
    }
    return strings.Join(parts, ":")
}
