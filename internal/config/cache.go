package config

import (
    "strings"
    "time"
)

// CacheConfig tunes the response cache applied to the public browse
// endpoints (event and guide listings, about content).  When Enabled
// is false or no Redis client exists the middleware is a no-op.
// KeyStrategy picks which request parts build the cache key; the
// default includes the query string so ?status= filters cache
// independently.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* environment variables, applying
// defaults suited to short-lived listing responses.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      getenv("CACHE_ENABLED", "true") == "true",
        Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
        TTL:          parseDur(getenv("CACHE_TTL", "30s")),
        KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       getenv("CACHE_PREFIX", "trekcache"),
        MaxBodyBytes: getint("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}

func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return 30 * time.Second
    }
    return d
}
