package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/olzhasbek/qazcargo/internal/config"
)

// cachedResponse is the envelope stored in Redis. The city and rate
// listings are small JSON bodies, so a JSON envelope is cheap enough.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// captureWriter buffers the response body while forwarding it to the client.
// Once the body exceeds the size cap the buffer is dropped and stays dropped,
// so an oversized response is never cached partially.
type captureWriter struct {
	http.ResponseWriter
	status     int
	buf        bytes.Buffer
	limit      int
	overflowed bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.overflowed {
		if cw.limit > 0 && cw.buf.Len()+len(b) > cw.limit {
			cw.overflowed = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var tail string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		tail = c.Path()
	case "method_route":
		tail = r.Method + ":" + c.Path()
	default: // "route_query"
		tail = c.Path() + "?" + r.URL.RawQuery
	}
	// City names arrive as Cyrillic query parameters; hash keeps keys ASCII.
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum)
}

// NewRedisCache caches successful GET responses for the listing endpoints.
// A nil client or disabled config yields a pass-through middleware.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cr cachedResponse
				if json.Unmarshal(bs, &cr) == nil && cr.Status != 0 {
					h := c.Response().Header()
					if cr.ContentType != "" {
						h.Set(echo.HeaderContentType, cr.ContentType)
					}
					h.Set("X-Cache", "HIT")
					c.Response().WriteHeader(cr.Status)
					_, werr := c.Response().Write(cr.Body)
					return werr
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				cr := cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				}
				if payload, err := json.Marshal(cr); err == nil {
					// Request context may be done once the handler returns.
					_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}
