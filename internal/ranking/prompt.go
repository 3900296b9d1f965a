package ranking

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
)

const systemPrompt = `You are a transplant care advisor for the Synergy healthcare platform. You rank hospitals for a patient and respond with data only. Your response must be ONLY a JSON array, with no surrounding prose, comments, or markdown formatting.`

// promptHospital is the simplified projection of a catalog record embedded
// in the ranking prompt.
type promptHospital struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Distance      float64 `json:"distance"`
	WaitTimeDays  int     `json:"waitTimeDays"`
	EstimatedCost float64 `json:"estimatedCost"`
}

func urgencyGuidance(u entities.Urgency) string {
	switch u {
	case entities.UrgencyCritical:
		return "The case is CRITICAL: weight historical wait time most heavily; a shorter wait dominates every other factor."
	case entities.UrgencyUrgent:
		return "The case is URGENT: balance wait time and distance; cost matters less."
	default:
		return "The case is STANDARD: weight wait time, distance and cost evenly."
	}
}

// buildRankingRequest constructs the natural-language ranking instruction.
// Marshalling the projection cannot fail for these field types, so the
// returned prompt is always complete.
func buildRankingRequest(filters entities.SearchFilters, hospitals []entities.Hospital) (string, string) {
	projected := make([]promptHospital, 0, len(hospitals))
	for _, h := range hospitals {
		projected = append(projected, promptHospital{
			ID:            h.ID,
			Name:          h.Name,
			Distance:      h.Distance,
			WaitTimeDays:  h.WaitTime,
			EstimatedCost: h.EstimatedCost,
		})
	}
	data, _ := json.Marshal(projected)

	organ := filters.Organ
	if organ == "" {
		organ = entities.OrganAny
	}
	location := strings.TrimSpace(filters.Location)
	if location == "" {
		location = "no preference"
	}
	budget := strings.TrimSpace(filters.Budget)
	if budget == "" {
		budget = "not specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A patient is looking for a hospital for an organ transplant.\n")
	fmt.Fprintf(&b, "Requirement: %s transplant. Maximum budget: %s. Preferred location: %s.\n", organ, budget, location)
	fmt.Fprintf(&b, "%s\n\n", urgencyGuidance(filters.Urgency))
	fmt.Fprintf(&b, "Candidate hospitals (historical single-point data):\n%s\n\n", data)
	b.WriteString(`Rank the candidate hospitals best-first according to the urgency policy above. For every hospital return one object with exactly these fields:
- "id": the hospital's numeric id from the candidate list
- "reason": one short sentence justifying its position
- "predictedWaitTime": a plausible range derived from the historical wait time, e.g. "45-55 days"
- "predictedCost": a plausible range derived from the historical cost, e.g. "$95,000 - $110,000"
- "outcomeScore": a plausible number between 70 and 95

Return ONLY the JSON array of these objects, in ranked order.`)

	return systemPrompt, b.String()
}
