package ranking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
)

// stubProvider returns a canned response or error and records how often it
// was called.
type stubProvider struct {
	name     string
	response string
	err      error
	calls    int
	lastReq  providers.CompletionRequest
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(_ context.Context, req providers.CompletionRequest) (string, error) {
	s.calls++
	s.lastReq = req
	return s.response, s.err
}

func candidates() []entities.Hospital {
	return []entities.Hospital{
		{ID: 1, Name: "Alpha Medical", Distance: 12.5, WaitTime: 90, EstimatedCost: 75000},
		{ID: 2, Name: "Beta Care", Distance: 25.1, WaitTime: 120, EstimatedCost: 150000},
	}
}

func TestService_Rank_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "primary", response: `[
		{"id": 2, "reason": "better specialists", "predictedWaitTime": "110 days", "predictedCost": "$148,000", "outcomeScore": 88},
		{"id": 1, "reason": "closer", "predictedWaitTime": "90 days", "predictedCost": "$75,000", "outcomeScore": 82}
	]`}
	secondary := &stubProvider{name: "secondary", response: `[]`}

	service := NewService([]providers.CompletionProvider{primary, secondary}, time.Second)
	analyses := service.Rank(context.Background(), entities.SearchFilters{Urgency: entities.UrgencyStandard}, candidates())

	require.Len(t, analyses, 2)
	assert.Equal(t, 2, analyses[0].HospitalID)
	assert.Equal(t, 88.0, analyses[0].OutcomeScore)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls, "secondary must not be consulted when the primary answers")
}

func TestService_Rank_FencedResponseAccepted(t *testing.T) {
	primary := &stubProvider{name: "primary", response: "```json\n" + `[
		{"id": 1, "reason": "closer", "predictedWaitTime": "90 days", "predictedCost": "$75,000", "outcomeScore": 82},
		{"id": 2, "reason": "specialists", "predictedWaitTime": "110 days", "predictedCost": "$148,000", "outcomeScore": 79}
	]` + "\n```"}

	service := NewService([]providers.CompletionProvider{primary}, time.Second)
	analyses := service.Rank(context.Background(), entities.SearchFilters{}, candidates())

	require.Len(t, analyses, 2)
	assert.Equal(t, 1, analyses[0].HospitalID)
}

func TestService_Rank_MalformedPrimaryFallsToSecondary(t *testing.T) {
	primary := &stubProvider{name: "primary", response: `Sorry, I cannot produce a ranking.`}
	secondary := &stubProvider{name: "secondary", response: `[
		{"id": 1, "reason": "closer", "predictedWaitTime": "90 days", "predictedCost": "$75,000", "outcomeScore": 82},
		{"id": 2, "reason": "specialists", "predictedWaitTime": "110 days", "predictedCost": "$148,000", "outcomeScore": 79}
	]`}

	service := NewService([]providers.CompletionProvider{primary, secondary}, time.Second)
	analyses := service.Rank(context.Background(), entities.SearchFilters{}, candidates())

	require.Len(t, analyses, 2)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
	assert.Equal(t, "closer", analyses[0].Reason)
}

func TestService_Rank_TransportErrorFallsToSecondary(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("503 service unavailable")}
	secondary := &stubProvider{name: "secondary", response: `[
		{"id": 1, "reason": "r", "predictedWaitTime": "90 days", "predictedCost": "$75,000", "outcomeScore": 82},
		{"id": 2, "reason": "r", "predictedWaitTime": "110 days", "predictedCost": "$148,000", "outcomeScore": 79}
	]`}

	service := NewService([]providers.CompletionProvider{primary, secondary}, time.Second)
	analyses := service.Rank(context.Background(), entities.SearchFilters{}, candidates())

	require.Len(t, analyses, 2)
	assert.Equal(t, 1, secondary.calls)
}

func TestService_Rank_AllProvidersFailDegradesDeterministically(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("timeout")}
	secondary := &stubProvider{name: "secondary", response: `not json either`}

	service := NewService([]providers.CompletionProvider{primary, secondary}, time.Second)
	analyses := service.Rank(context.Background(), entities.SearchFilters{}, candidates())

	require.Len(t, analyses, 2)
	assert.Equal(t, 1, analyses[0].HospitalID)
	assert.Equal(t, degradeReason, analyses[0].Reason)
	assert.Equal(t, "90 days", analyses[0].PredictedWaitTime)
	assert.Equal(t, "$75,000", analyses[0].PredictedCost)
	assert.Equal(t, float64(NeutralOutcomeScore), analyses[0].OutcomeScore)
	assert.Equal(t, "$150,000", analyses[1].PredictedCost)
}

func TestService_Rank_EmptyChainDegrades(t *testing.T) {
	service := NewService(nil, time.Second)

	analyses := service.Rank(context.Background(), entities.SearchFilters{}, candidates())

	require.Len(t, analyses, 2)
	assert.Equal(t, degradeReason, analyses[0].Reason)
}

func TestService_Rank_EmptyInputShortCircuits(t *testing.T) {
	primary := &stubProvider{name: "primary", response: `[]`}
	service := NewService([]providers.CompletionProvider{primary}, time.Second)

	analyses := service.Rank(context.Background(), entities.SearchFilters{}, nil)

	assert.NotNil(t, analyses)
	assert.Empty(t, analyses)
	assert.Equal(t, 0, primary.calls, "empty input must not touch any provider")
}

func TestService_Rank_PromptCarriesCandidatesAndUrgency(t *testing.T) {
	primary := &stubProvider{name: "primary", response: `[
		{"id": 1, "reason": "r", "predictedWaitTime": "90 days", "predictedCost": "$75,000", "outcomeScore": 82},
		{"id": 2, "reason": "r", "predictedWaitTime": "110 days", "predictedCost": "$148,000", "outcomeScore": 79}
	]`}
	service := NewService([]providers.CompletionProvider{primary}, time.Second)

	service.Rank(context.Background(), entities.SearchFilters{Urgency: entities.UrgencyCritical}, candidates())

	assert.Contains(t, primary.lastReq.Prompt, "Alpha Medical")
	assert.Contains(t, primary.lastReq.Prompt, "Beta Care")
	assert.Contains(t, primary.lastReq.Prompt, "CRITICAL")
	assert.NotEmpty(t, primary.lastReq.System)
}

func TestDegraded_EchoesHistoricalData(t *testing.T) {
	analyses := Degraded(candidates())

	require.Len(t, analyses, 2)
	for i, a := range analyses {
		assert.Equal(t, candidates()[i].ID, a.HospitalID)
		assert.Equal(t, degradeReason, a.Reason)
		assert.Equal(t, float64(NeutralOutcomeScore), a.OutcomeScore)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$75,000", formatCurrency(75000))
	assert.Equal(t, "$1,250,000", formatCurrency(1250000))
	assert.Equal(t, "$950", formatCurrency(950))
	assert.Equal(t, "$0", formatCurrency(0))
	assert.Equal(t, "$62,001", formatCurrency(62000.5))
	assert.Equal(t, "-$5,000", formatCurrency(-5000))
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "90 days", formatDays(90))
	assert.Equal(t, "0 days", formatDays(0))
}
