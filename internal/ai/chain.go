// Package ai implements the resilient structured completion call used by
// every AI-backed operation: try each configured provider in order, strip
// markdown fences, parse and validate, and on total exhaustion resolve with
// a deterministic fallback value. Callers never see an error.
package ai

import (
	"context"
	"strings"
	"time"

	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
)

// DefaultTimeout bounds a single provider attempt so total exhaustion is
// reached in finite time.
const DefaultTimeout = 20 * time.Second

// Call describes one resilient operation of result type T.
type Call[T any] struct {
	// Operation names the call in logs and metrics.
	Operation string

	// Request is the vendor-agnostic prompt; each provider renders it in
	// its own message format.
	Request providers.CompletionRequest

	// Parse turns the fence-stripped provider text into the result.
	// Validation lives here: returning an error advances the chain to the
	// next provider exactly as a transport failure does.
	Parse func(text string) (T, error)

	// Fallback produces the deterministic result when every provider has
	// failed or none is configured.
	Fallback func() T

	// Timeout bounds each provider attempt. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Execute runs the call against the provider chain. It always returns a
// usable result; failures are logged and counted, never propagated.
func Execute[T any](ctx context.Context, chain []providers.CompletionProvider, call Call[T]) T {
	log := observability.LoggerFromContext(ctx)
	timeout := call.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	for _, provider := range chain {
		result, err := attempt(ctx, provider, call, timeout)
		if err == nil {
			return result
		}
		log.Warn().
			Err(err).
			Str("operation", call.Operation).
			Str("provider", provider.Name()).
			Msg("completion provider attempt failed")
	}

	log.Warn().
		Str("operation", call.Operation).
		Int("providers", len(chain)).
		Msg("all completion providers exhausted, using deterministic fallback")
	observability.RecordAIFallback(ctx, call.Operation)
	return call.Fallback()
}

func attempt[T any](ctx context.Context, provider providers.CompletionProvider, call Call[T], timeout time.Duration) (T, error) {
	var zero T

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := provider.Complete(attemptCtx, call.Request)
	observability.RecordAIAttempt(ctx, provider.Name(), call.Operation, time.Since(start), err)
	if err != nil {
		return zero, err
	}

	return call.Parse(StripFences(text))
}

// StripFences removes a markdown code fence wrapping from a model response.
// Providers are told to return bare JSON but routinely wrap it anyway.
func StripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
