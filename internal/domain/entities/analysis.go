package entities

// HospitalAnalysis is one ranked entry produced by the AI ranking service,
// in ranked order. When every provider fails the service synthesizes these
// directly from the hospital record instead.
type HospitalAnalysis struct {
	HospitalID        int     `json:"id"`
	Reason            string  `json:"reason"`
	PredictedWaitTime string  `json:"predictedWaitTime"`
	PredictedCost     string  `json:"predictedCost"`
	OutcomeScore      float64 `json:"outcomeScore"`
}

// RankedHospital pairs a catalog record with its analysis for display.
type RankedHospital struct {
	Hospital Hospital          `json:"hospital"`
	Analysis *HospitalAnalysis `json:"analysis,omitempty"`
}
