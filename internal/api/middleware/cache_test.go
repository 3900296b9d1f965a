package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process CacheProvider for middleware tests.
type memoryCache struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	m.sets++
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.entries[key]
	return ok, nil
}

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hospitals":[]}`))
	})
}

func TestCacheMiddleware_SecondRequestServedFromCache(t *testing.T) {
	cache := newMemoryCache()
	m := NewCacheMiddleware(cache, nil)
	calls := 0
	handler := m.Middleware(countingHandler(&calls))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/hospitals/search?organ=Kidney", nil))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/hospitals/search?organ=Kidney", nil))

	assert.Equal(t, 1, calls, "second request must not reach the handler")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCacheMiddleware_DifferentQueriesCacheSeparately(t *testing.T) {
	cache := newMemoryCache()
	m := NewCacheMiddleware(cache, nil)
	calls := 0
	handler := m.Middleware(countingHandler(&calls))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hospitals/search?organ=Kidney", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hospitals/search?organ=Liver", nil))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, cache.sets)
}

func TestCacheMiddleware_PostRequestsBypassCache(t *testing.T) {
	cache := newMemoryCache()
	m := NewCacheMiddleware(cache, nil)
	calls := 0
	handler := m.Middleware(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/hospitals/rank", nil))
	}

	assert.Equal(t, 2, calls)
	assert.Empty(t, cache.entries)
}

func TestCacheMiddleware_UnconfiguredRoutesBypassCache(t *testing.T) {
	cache := newMemoryCache()
	m := NewCacheMiddleware(cache, nil)
	calls := 0
	handler := m.Middleware(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}

	assert.Equal(t, 2, calls)
	assert.Empty(t, cache.entries)
}

func TestCacheMiddleware_ErrorResponsesNotCached(t *testing.T) {
	cache := newMemoryCache()
	m := NewCacheMiddleware(cache, nil)
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hospitals/search", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, cache.entries)
}

func TestCacheMiddleware_PrefixRouteMatches(t *testing.T) {
	cache := newMemoryCache()
	m := NewCacheMiddleware(cache, nil)
	calls := 0
	handler := m.Middleware(countingHandler(&calls))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hospitals/3", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hospitals/3", nil))

	assert.Equal(t, 1, calls)
}
