package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	"github.com/synergyhealth/hospital-discovery/internal/ranking"
)

// scriptedProvider returns a canned response, optionally running a hook
// before answering.
type scriptedProvider struct {
	response string
	before   func()
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Complete(context.Context, providers.CompletionRequest) (string, error) {
	if s.before != nil {
		s.before()
	}
	return s.response, nil
}

const rankedAll = `[
	{"id": 3, "reason": "shortest wait", "predictedWaitTime": "40-50 days", "predictedCost": "$93,000", "outcomeScore": 90},
	{"id": 1, "reason": "good value", "predictedWaitTime": "85-95 days", "predictedCost": "$59,000", "outcomeScore": 84},
	{"id": 2, "reason": "specialist center", "predictedWaitTime": "115-125 days", "predictedCost": "$148,000", "outcomeScore": 78}
]`

func newRankingHandler(t *testing.T, provider providers.CompletionProvider, tracker *ranking.Tracker) *RankingHandler {
	t.Helper()
	var chain []providers.CompletionProvider
	if provider != nil {
		chain = append(chain, provider)
	}
	return NewRankingHandler(newQueryService(t), ranking.NewService(chain, time.Second), tracker)
}

func postRank(t *testing.T, handler *RankingHandler, body string, session string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/hospitals/rank", strings.NewReader(body))
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	rec := httptest.NewRecorder()
	handler.RankHospitals(rec, req)
	return rec
}

func TestRankHospitals_ReturnsRankedOrder(t *testing.T) {
	handler := newRankingHandler(t, &scriptedProvider{response: rankedAll}, ranking.NewTracker())

	rec := postRank(t, handler, `{"filters": {"organ": "Any"}}`, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hospitals []entities.RankedHospital `json:"hospitals"`
		Count     int                       `json:"count"`
		Stale     bool                      `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Stale)
	require.Equal(t, 3, body.Count)
	assert.Equal(t, 3, body.Hospitals[0].Hospital.ID)
	require.NotNil(t, body.Hospitals[0].Analysis)
	assert.Equal(t, "shortest wait", body.Hospitals[0].Analysis.Reason)
}

func TestRankHospitals_DegradesWithoutProviders(t *testing.T) {
	handler := newRankingHandler(t, nil, ranking.NewTracker())

	rec := postRank(t, handler, `{"filters": {"organ": "Kidney"}}`, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hospitals []entities.RankedHospital `json:"hospitals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Hospitals, 2)
	for _, h := range body.Hospitals {
		require.NotNil(t, h.Analysis)
		assert.Equal(t, float64(ranking.NeutralOutcomeScore), h.Analysis.OutcomeScore)
	}
}

func TestRankHospitals_SupersededRequestFlaggedStale(t *testing.T) {
	tracker := ranking.NewTracker()
	// The provider supersedes the in-flight generation before answering,
	// standing in for a newer request from the same session.
	provider := &scriptedProvider{
		response: rankedAll,
		before:   func() { tracker.Begin("session-1") },
	}
	handler := newRankingHandler(t, provider, tracker)

	rec := postRank(t, handler, `{"filters": {}}`, "session-1")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hospitals []entities.RankedHospital `json:"hospitals"`
		Stale     bool                      `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Stale)
	assert.Empty(t, body.Hospitals)
}

func TestRankHospitals_SessionlessRequestsNeverStale(t *testing.T) {
	tracker := ranking.NewTracker()
	provider := &scriptedProvider{
		response: rankedAll,
		before:   func() { tracker.Begin("") },
	}
	handler := newRankingHandler(t, provider, tracker)

	rec := postRank(t, handler, `{"filters": {}}`, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stale bool `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Stale)
}

func TestRankHospitals_InvalidBody(t *testing.T) {
	handler := newRankingHandler(t, nil, ranking.NewTracker())

	rec := postRank(t, handler, `{not json`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankHospitals_UnknownUrgency(t *testing.T) {
	handler := newRankingHandler(t, nil, ranking.NewTracker())

	rec := postRank(t, handler, `{"filters": {"urgency": "Extreme"}}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankHospitals_EmptyCandidateSet(t *testing.T) {
	handler := newRankingHandler(t, nil, ranking.NewTracker())

	rec := postRank(t, handler, `{"filters": {"location": "nowhere"}}`, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hospitals []entities.RankedHospital `json:"hospitals"`
		Count     int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
	assert.Empty(t, body.Hospitals)
}
