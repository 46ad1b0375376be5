package api

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"newsdash/types"
)

// DefaultCooldown is how long an identical ingestion request is refused after it ran
const DefaultCooldown = 5 * time.Minute

// Cooldown rate-limits identical ingestion requests. Acquire reports false
// while key is still cooling down; Release ends the cooldown early.
type Cooldown interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisCooldown shares cooldowns between backend replicas through Redis
type RedisCooldown struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCooldownFromEnv creates a RedisCooldown from REDIS_ADDR, REDIS_PASS,
// REDIS_DB and FETCH_COOLDOWN_SECONDS. It returns nil, nil when REDIS_ADDR is unset.
func NewRedisCooldownFromEnv(ctx context.Context) (*RedisCooldown, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		db = n
	}
	ttl := DefaultCooldown
	if v := os.Getenv("FETCH_COOLDOWN_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}
	return NewRedisCooldown(ctx, &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       db,
	}, ttl)
}

// NewRedisCooldown connects to Redis and verifies connectivity
func NewRedisCooldown(ctx context.Context, opts *redis.Options, ttl time.Duration) (*RedisCooldown, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	if ttl <= 0 {
		ttl = DefaultCooldown
	}
	return &RedisCooldown{client: client, prefix: "newsdash:fetch:", ttl: ttl}, nil
}

// Acquire sets key with the cooldown TTL unless it is already set
func (r *RedisCooldown) Acquire(ctx context.Context, key string) (bool, error) {
	return r.client.SetNX(ctx, r.prefix+key, time.Now().Unix(), r.ttl).Result()
}

// Release deletes key so the same request can run again at once
func (r *RedisCooldown) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Close closes the underlying Redis client
func (r *RedisCooldown) Close() error {
	return r.client.Close()
}

// cooldownKey identifies an ingestion request after defaults are applied
func cooldownKey(req types.IngestRequest) string {
	return strings.ToLower(req.Category) + "|" + strings.ToLower(req.Country) + "|" + strings.ToLower(strings.TrimSpace(req.Query))
}
