package ranking

import (
	"encoding/json"
	"fmt"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
)

// analysisWire decodes one ranking element with pointer fields so missing
// keys are distinguishable from zero values. A string where a number belongs
// (or vice versa) fails the unmarshal itself, which gives the type check.
type analysisWire struct {
	ID                *int     `json:"id"`
	Reason            *string  `json:"reason"`
	PredictedWaitTime *string  `json:"predictedWaitTime"`
	PredictedCost     *string  `json:"predictedCost"`
	OutcomeScore      *float64 `json:"outcomeScore"`
}

// parseAnalyses decodes and validates a provider ranking response. The
// validation is all-or-nothing: a single element missing a field or carrying
// a wrong type rejects the entire response so the ranked list either covers
// the requested set faithfully or is abandoned for the next provider.
//
// outcomeScore is type-checked but deliberately not range-checked; values
// outside 0-100 pass through to the caller unchanged.
func parseAnalyses(data string) ([]entities.HospitalAnalysis, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(data), &elements); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}

	analyses := make([]entities.HospitalAnalysis, 0, len(elements))
	for i, raw := range elements {
		var wire analysisWire
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("element %d is malformed: %w", i, err)
		}
		switch {
		case wire.ID == nil:
			return nil, fmt.Errorf("element %d is missing id", i)
		case wire.Reason == nil:
			return nil, fmt.Errorf("element %d is missing reason", i)
		case wire.PredictedWaitTime == nil:
			return nil, fmt.Errorf("element %d is missing predictedWaitTime", i)
		case wire.PredictedCost == nil:
			return nil, fmt.Errorf("element %d is missing predictedCost", i)
		case wire.OutcomeScore == nil:
			return nil, fmt.Errorf("element %d is missing outcomeScore", i)
		}

		analyses = append(analyses, entities.HospitalAnalysis{
			HospitalID:        *wire.ID,
			Reason:            *wire.Reason,
			PredictedWaitTime: *wire.PredictedWaitTime,
			PredictedCost:     *wire.PredictedCost,
			OutcomeScore:      *wire.OutcomeScore,
		})
	}
	return analyses, nil
}
