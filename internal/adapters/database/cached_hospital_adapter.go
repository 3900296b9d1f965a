package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	"github.com/synergyhealth/hospital-discovery/internal/domain/repositories"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
)

const (
	hospitalCacheTTLSeconds = 600
	hospitalListCacheKey    = "hospitals:all"
)

// CachedHospitalAdapter wraps a HospitalRepository with a read-through
// cache. The catalog is immutable at runtime, so a generous TTL is safe.
type CachedHospitalAdapter struct {
	inner repositories.HospitalRepository
	cache providers.CacheProvider
}

var _ repositories.HospitalRepository = (*CachedHospitalAdapter)(nil)

// NewCachedHospitalAdapter creates a caching wrapper around inner
func NewCachedHospitalAdapter(inner repositories.HospitalRepository, cache providers.CacheProvider) *CachedHospitalAdapter {
	return &CachedHospitalAdapter{inner: inner, cache: cache}
}

// GetByID retrieves a hospital, preferring the cache
func (a *CachedHospitalAdapter) GetByID(ctx context.Context, id int) (*entities.Hospital, error) {
	key := fmt.Sprintf("hospital:%d", id)

	if data, err := a.cache.Get(ctx, key); err == nil {
		var hospital entities.Hospital
		if err := json.Unmarshal(data, &hospital); err == nil {
			return &hospital, nil
		}
	}

	hospital, err := a.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.put(ctx, key, hospital)
	return hospital, nil
}

// List retrieves the catalog, preferring the cache
func (a *CachedHospitalAdapter) List(ctx context.Context) ([]entities.Hospital, error) {
	if data, err := a.cache.Get(ctx, hospitalListCacheKey); err == nil {
		var hospitals []entities.Hospital
		if err := json.Unmarshal(data, &hospitals); err == nil {
			return hospitals, nil
		}
	}

	hospitals, err := a.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	a.put(ctx, hospitalListCacheKey, hospitals)
	return hospitals, nil
}

// Upsert writes through and invalidates affected cache entries
func (a *CachedHospitalAdapter) Upsert(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.inner.Upsert(ctx, hospital); err != nil {
		return err
	}
	_ = a.cache.Delete(ctx, fmt.Sprintf("hospital:%d", hospital.ID))
	_ = a.cache.Delete(ctx, hospitalListCacheKey)
	return nil
}

func (a *CachedHospitalAdapter) put(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, hospitalCacheTTLSeconds); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache hospital data")
	}
}
