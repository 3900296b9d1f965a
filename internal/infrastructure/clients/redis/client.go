package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
	"github.com/synergyhealth/hospital-discovery/pkg/config"
	"github.com/synergyhealth/hospital-discovery/pkg/retry"
)

// Client wraps the go-redis client backing the response cache, the cached
// hospital repository and the search analytics bus.
type Client struct {
	client *redis.Client
}

// readinessConfig bounds the startup probe. Redis is optional for this
// service, so the probe gives up quickly instead of holding startup the
// way the database probe does.
func readinessConfig() retry.Config {
	return retry.Config{
		MaxAttempts:     3,
		InitialDelay:    200 * time.Millisecond,
		MaxDelay:        time.Second,
		BackoffFactor:   2.0,
		MaxTotalTimeout: 10 * time.Second,
	}
}

// NewClient connects to Redis and verifies reachability. Callers treat an
// error as "run without cache and analytics".
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	log := observability.GetLogger()
	err := retry.DoWithLog(
		context.Background(),
		readinessConfig(),
		"Redis",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(ctx).Err()
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).Msg("redis connection attempt failed")
		},
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{client: client}, nil
}

// Client returns the underlying go-redis client.
func (c *Client) Client() *redis.Client {
	return c.client
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
