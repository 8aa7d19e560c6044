package config

// Redis backs the public-listing response cache and the rate limiter.
// Both features are optional: when no Redis server is reachable at
// startup the constructor returns nil and the middleware degrades to a
// pass-through, mirroring how the entity store degrades to memory.

import (
    "context"
    "os"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from environment
// variables (REDIS_ADDR or REDIS_HOST/REDIS_PORT, REDIS_PASSWORD,
// REDIS_DB).  The returned client is nil when the server cannot be
// pinged within a short timeout; callers must treat nil as "caching
// and rate limiting disabled".
func NewRedisClient() *redis.Client {
    addr := os.Getenv("REDIS_ADDR")
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }
    dbNum := 0
    if s := os.Getenv("REDIS_DB"); s != "" {
        if n, err := strconv.Atoi(s); err == nil {
            dbNum = n
        }
    }
    client := redis.NewClient(&redis.Options{
        Addr:     addr,
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       dbNum,
    })
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
