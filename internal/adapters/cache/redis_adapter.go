package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	redisclient "github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/redis"
	apperrors "github.com/synergyhealth/hospital-discovery/pkg/errors"
)

// keyNamespace isolates this service's entries on a shared Redis.
const keyNamespace = "hd:"

// RedisAdapter implements providers.CacheProvider on Redis. A miss comes
// back as a NOT_FOUND AppError so callers can tell it apart from an
// unreachable Redis, though every current caller treats both as a miss.
type RedisAdapter struct {
	client *redisclient.Client
}

var _ providers.CacheProvider = (*RedisAdapter)(nil)

// NewRedisAdapter creates a Redis-backed cache provider.
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return &RedisAdapter{client: client}
}

func namespaced(key string) string {
	return keyNamespace + key
}

// Get retrieves a cached value.
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := a.client.Client().Get(ctx, namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("cache key %q not set", key))
	}
	if err != nil {
		return nil, apperrors.NewUnavailableError(fmt.Sprintf("cache get failed: %v", err))
	}
	return data, nil
}

// Set stores a value with a TTL in seconds.
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	ttl := time.Duration(expirationSeconds) * time.Second
	if err := a.client.Client().Set(ctx, namespaced(key), value, ttl).Err(); err != nil {
		return apperrors.NewUnavailableError(fmt.Sprintf("cache set failed: %v", err))
	}
	return nil
}

// Delete removes a cached value.
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Client().Del(ctx, namespaced(key)).Err(); err != nil {
		return apperrors.NewUnavailableError(fmt.Sprintf("cache delete failed: %v", err))
	}
	return nil
}

// Exists reports whether a key is set.
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	n, err := a.client.Client().Exists(ctx, namespaced(key)).Result()
	if err != nil {
		return false, apperrors.NewUnavailableError(fmt.Sprintf("cache existence check failed: %v", err))
	}
	return n > 0, nil
}
