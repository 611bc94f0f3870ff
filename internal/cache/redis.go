// Package cache stores AI results in Redis. Every operation degrades to a
// cache miss when Redis is unavailable, so callers never depend on it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL applies when neither the caller nor REDIS_TTL sets one.
const DefaultTTL = 600 * time.Second

// JSONCache is the subset of Redis used by the AI components.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Config holds the Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// ConfigFromEnv reads REDIS_HOST, REDIS_PORT, REDIS_PASSWORD and REDIS_TTL.
func ConfigFromEnv() Config {
	host := strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("REDIS_PORT"))
	if port == "" {
		port = "6379"
	}
	return Config{
		Host:     host,
		Port:     port,
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		TTL:      DefaultTTLFromEnv(),
	}
}

// Redis is a JSON cache backed by go-redis. A Redis with a nil client is a
// valid, always-missing cache.
type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis connects and pings. If Redis cannot be reached the returned cache
// bypasses every call.
func NewRedis(cfg Config, logger *log.Logger) *Redis {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{logger: logger, ttl: ttl}
	}

	return &Redis{client: client, logger: logger, ttl: ttl}
}

// Available reports whether the cache is connected.
func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[cache] Redis error, results will not be cached: %v", err)
	}
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

// GetJSON decodes the value at key into out. It reports false on a miss.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value at key. A non-positive ttl uses the configured default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// DeleteByPattern removes every key matching a glob pattern.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if !r.Available() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil && r.logger != nil {
			r.logger.Printf("[cache] Redis delete error key=%s pattern=%s err=%v", k, pattern, err)
		}
	}
	return iter.Err()
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

// DefaultTTLFromEnv parses REDIS_TTL in seconds.
func DefaultTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("REDIS_TTL"))
	if raw == "" {
		return DefaultTTL
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return DefaultTTL
	}
	return time.Duration(v) * time.Second
}
