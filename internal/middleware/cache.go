package middleware

// Response caching for the public browse endpoints (event and guide
// listings, about content).  Whole responses — status, headers and
// body — are stored in Redis under a key derived from the route and
// query string, so ?status=approved and the unfiltered listing cache
// independently.  With no Redis client the middleware is a
// pass-through.

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/smarotkar/trek-booking/internal/config"
)

// captureWriter tees the response body into a buffer (up to limit
// bytes) while forwarding it to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 {
        cw.buf.Write(b)
    } else if cw.size < cw.limit {
        remain := cw.limit - cw.size
        if int64(len(b)) <= remain {
            cw.buf.Write(b)
        } else {
            cw.buf.Write(b[:remain])
        }
    }
    cw.size += int64(len(b))
    return cw.ResponseWriter.Write(b)
}

// cacheKey hashes the request parts selected by the key strategy into
// a fixed-length key under the configured prefix.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    var tail string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        tail = c.Path()
    default: // "route_query"
        tail = c.Path() + "?" + c.Request().URL.RawQuery
    }
    sum := sha1.Sum([]byte(tail))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// Cached payload layout: [4 bytes status][4 bytes headerLen][headerJSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8+len(hdrJSON)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    header = make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, header, bs[8+hlen:], true
}

// ResponseCache returns the caching middleware.  Only configured
// methods are considered and only 200 responses are stored.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg, c)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    for k, vals := range hdr {
                        if strings.EqualFold(k, "Content-Length") {
                            continue // Echo recomputes it
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            // Responses truncated by the capture limit are not cached.
            if cw.status == http.StatusOK && (maxBody <= 0 || cw.size <= maxBody) {
                hdr := make(http.Header, len(c.Response().Header()))
                for k, vals := range c.Response().Header() {
                    hdr[k] = append([]string(nil), vals...)
                }
                if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
                    _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
                }
            }
            return nil
        }
    }
}
