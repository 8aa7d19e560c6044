package config

import "time"

// RateLimitConfig tunes the Redis token-bucket limiter protecting the
// API.  The bucket refills RefillTokens every RefillInterval up to
// Capacity; TTL bounds how long idle buckets linger in Redis.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
}

// LoadRateLimitConfig reads RATE_LIMIT_* environment variables and
// clamps the result to sane minimums.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       getint("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   getint("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: parseDurDef(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s"), time.Second),
        TTL:            parseDurDef(getenv("RATE_LIMIT_TTL", "10m"), 10*time.Minute),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_user"),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "trekrl"),
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillTokens < 1 {
        cfg.RefillTokens = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    if min := 5 * cfg.RefillInterval; cfg.TTL < min {
        cfg.TTL = min
    }
    return cfg
}

func parseDurDef(s string, def time.Duration) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return def
    }
    return d
}
