package entities

// Organ vocabulary for transplant availability. OrganAny is the filter
// sentinel meaning "no organ constraint".
const (
	OrganAny      = "Any"
	OrganKidney   = "Kidney"
	OrganLiver    = "Liver"
	OrganHeart    = "Heart"
	OrganLung     = "Lung"
	OrganPancreas = "Pancreas"
	OrganCornea   = "Cornea"
)

// Urgency levels influence only the ranking prompt's weighting guidance,
// never the deterministic filter.
type Urgency string

const (
	UrgencyStandard Urgency = "Standard"
	UrgencyUrgent   Urgency = "Urgent"
	UrgencyCritical Urgency = "Critical"
)

// Valid reports whether u is a known urgency level.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyStandard, UrgencyUrgent, UrgencyCritical:
		return true
	}
	return false
}

// Hospital is a catalog entry. The catalog is read-only at runtime; id is
// the stable identity key and unique across the catalog.
type Hospital struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	Distance        float64  `json:"distance"`
	WaitTime        int      `json:"waitTime"` // historical average, days
	AvailableOrgans []string `json:"availableOrgans"`
	EstimatedCost   float64  `json:"estimatedCost"`
	Image           string   `json:"image,omitempty"`
}

// HasOrgan reports whether the hospital offers the given organ transplant.
func (h *Hospital) HasOrgan(organ string) bool {
	for _, o := range h.AvailableOrgans {
		if o == organ {
			return true
		}
	}
	return false
}

// SearchFilters is the ephemeral filter state passed by value into the
// filter and ranking pipelines. Budget is kept as the raw user text;
// unparsable text means "no budget constraint".
type SearchFilters struct {
	Location string  `json:"location"`
	Organ    string  `json:"organ"`
	Budget   string  `json:"budget"`
	Urgency  Urgency `json:"urgency"`
}
