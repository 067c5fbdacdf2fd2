package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// CachedGeocoder memoises a Geocoder in Redis. Redis failures are logged and
// the call falls through to the wrapped geocoder. Errors are never cached.
type CachedGeocoder struct {
	next Geocoder
	rdb  *redis.Client
	ttl  time.Duration
	log  *slog.Logger
}

// NewCachedGeocoder wraps next with a Redis cache.
func NewCachedGeocoder(next Geocoder, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedGeocoder {
	return &CachedGeocoder{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  logger.With("component", "geocode_cache"),
	}
}

func predictKey(text, country string) string {
	return fmt.Sprintf("geo:predict:%s:%s", strings.ToLower(country), strings.ToLower(strings.TrimSpace(text)))
}

func placeKey(placeID string) string {
	return "geo:place:" + placeID
}

func reverseKey(p Point) string {
	return fmt.Sprintf("geo:reverse:%.5f,%.5f", p.Lat, p.Lng)
}

func (c *CachedGeocoder) Predict(ctx context.Context, text, country string) ([]Suggestion, error) {
	key := predictKey(text, country)
	var cached []Suggestion
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.next.Predict(ctx, text, country)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

func (c *CachedGeocoder) Resolve(ctx context.Context, placeID string) (*Location, error) {
	key := placeKey(placeID)
	var cached Location
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	loc, err := c.next.Resolve(ctx, placeID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, loc)
	return loc, nil
}

func (c *CachedGeocoder) Reverse(ctx context.Context, p Point) (string, error) {
	key := reverseKey(p)
	var cached string
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	addr, err := c.next.Reverse(ctx, p)
	if err != nil {
		return "", err
	}
	c.store(ctx, key, addr)
	return addr, nil
}

func (c *CachedGeocoder) load(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.WarnContext(ctx, "cache entry corrupt", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (c *CachedGeocoder) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
