// Package ranking produces an ordered, annotated ranking of a hospital
// candidate set. The ranking operation has an error-free contract: a broken
// AI dependency degrades the answer, it never blocks the browsing flow.
package ranking

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/synergyhealth/hospital-discovery/internal/ai"
	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
)

// NeutralOutcomeScore is the fixed score attached to deterministic degrade
// results, where no personalized outcome estimate exists.
const NeutralOutcomeScore = 70

const degradeReason = "AI analysis is unavailable right now; showing the hospital's historical data instead."

// Service ranks hospitals through an ordered chain of completion providers.
type Service struct {
	chain   []providers.CompletionProvider
	timeout time.Duration
}

// NewService creates a ranking service. The chain is tried in order; an
// empty chain means every request resolves with the deterministic degrade
// result.
func NewService(chain []providers.CompletionProvider, timeout time.Duration) *Service {
	return &Service{chain: chain, timeout: timeout}
}

// Rank returns one analysis per input hospital, in recommended order. It
// never returns an error: provider and schema failures fall through the
// chain and finally to the deterministic degrade result. An empty input
// resolves immediately without touching any provider.
func (s *Service) Rank(ctx context.Context, filters entities.SearchFilters, hospitals []entities.Hospital) []entities.HospitalAnalysis {
	if len(hospitals) == 0 {
		return []entities.HospitalAnalysis{}
	}

	system, prompt := buildRankingRequest(filters, hospitals)

	return ai.Execute(ctx, s.chain, ai.Call[[]entities.HospitalAnalysis]{
		Operation: "rank_hospitals",
		Request: providers.CompletionRequest{
			System: system,
			Prompt: prompt,
		},
		Parse:    parseAnalyses,
		Fallback: func() []entities.HospitalAnalysis { return Degraded(hospitals) },
		Timeout:  s.timeout,
	})
}

// Degraded maps each hospital directly to an analysis echoing its
// historical record, with the neutral outcome score.
func Degraded(hospitals []entities.Hospital) []entities.HospitalAnalysis {
	analyses := make([]entities.HospitalAnalysis, 0, len(hospitals))
	for _, h := range hospitals {
		analyses = append(analyses, entities.HospitalAnalysis{
			HospitalID:        h.ID,
			Reason:            degradeReason,
			PredictedWaitTime: formatDays(h.WaitTime),
			PredictedCost:     formatCurrency(h.EstimatedCost),
			OutcomeScore:      NeutralOutcomeScore,
		})
	}
	return analyses
}

func formatDays(days int) string {
	return fmt.Sprintf("%d days", days)
}

// formatCurrency renders an amount as a dollar string with thousands
// separators, e.g. 75000 -> "$75,000".
func formatCurrency(amount float64) string {
	whole := strconv.FormatInt(int64(math.Round(amount)), 10)

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "$" + strings.Join(groups, ",")
	if negative {
		out = "-" + out
	}
	return out
}
