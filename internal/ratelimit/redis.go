package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result reports whether a request is allowed within the current window.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is a fixed-window rate limiter keyed by an arbitrary identifier
// (typically the client IP).
type Limiter interface {
	Allow(ctx context.Context, identifier string) (Result, error)
	Close() error
}

// RedisLimiter implements Limiter on Redis so limits hold across process
// instances.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int
}

// NewRedisLimiter connects to Redis and returns a limiter allowing max
// requests per window.
func NewRedisLimiter(redisURL, prefix string, window time.Duration, max int) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLimiter{
		client: client,
		prefix: prefix + "ratelimit:",
		window: window,
		max:    max,
	}, nil
}

func (r *RedisLimiter) Close() error {
	return r.client.Close()
}

// Allow counts the request against the identifier's current window.
func (r *RedisLimiter) Allow(ctx context.Context, identifier string) (Result, error) {
	key := r.prefix + identifier

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return Result{}, fmt.Errorf("redis incr error: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return Result{}, fmt.Errorf("redis expire error: %w", err)
		}
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return Result{}, fmt.Errorf("redis ttl error: %w", err)
	}

	remaining := r.max - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   int(count) <= r.max,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}
