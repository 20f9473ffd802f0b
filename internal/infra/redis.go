package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrRedisDisabled is returned by every operation when Redis is switched off
// via configuration.
var ErrRedisDisabled = errors.New("redis disabled")

// Redis wraps a go-redis client behind a feature flag. When disabled the
// wrapper never dials and every operation fails fast with ErrRedisDisabled,
// so callers can treat caching as strictly best-effort.
type Redis struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedis constructs the wrapper. With cfg.RedisDisabled set or no URL
// configured, the returned instance is a no-op shell; otherwise a client with
// bounded retry backoff and connection-lifecycle logging is created.
func NewRedis(cfg *Config, logger zerolog.Logger) (*Redis, error) {
	if cfg.RedisDisabled || cfg.RedisURL == "" {
		logger.Info().Msg("redis disabled by configuration")
		return &Redis{logger: logger}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.MaxRetries = 5
	opts.MinRetryBackoff = 100 * time.Millisecond
	opts.MaxRetryBackoff = 2 * time.Second
	opts.DialTimeout = 5 * time.Second
	opts.OnConnect = func(ctx context.Context, cn *redis.Conn) error {
		logger.Info().Str("addr", opts.Addr).Msg("redis connected")
		return nil
	}

	return &Redis{client: redis.NewClient(opts), logger: logger}, nil
}

// Enabled reports whether a real client is backing the wrapper.
func (r *Redis) Enabled() bool {
	return r != nil && r.client != nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	if !r.Enabled() {
		return "", ErrRedisDisabled
	}
	return r.client.Get(ctx, key).Result()
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !r.Enabled() {
		return ErrRedisDisabled
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if !r.Enabled() {
		return ErrRedisDisabled
	}
	return r.client.Del(ctx, keys...).Err()
}

// IsMiss reports whether err is a cache miss rather than a failure.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Health reports "disabled", "ok", or "error" for the health endpoint. A
// disabled wrapper never attempts a connection.
func (r *Redis) Health(ctx context.Context) string {
	if !r.Enabled() {
		return "disabled"
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		r.logger.Error().Err(err).Msg("redis ping failed")
		return "error"
	}
	return "ok"
}

// Close releases the underlying client, if any.
func (r *Redis) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}
