package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
)

// SortKey selects the ordering of a filtered result list.
type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByWaitTime SortKey = "waitTime"
	SortByCost     SortKey = "cost"
	// SortByAI delegates ordering to the ranking service; Sort leaves the
	// list untouched for this key.
	SortByAI SortKey = "ai"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortByDistance, SortByWaitTime, SortByCost, SortByAI:
		return true
	}
	return false
}

// ParseBudget parses the free-text budget ceiling. Empty or non-numeric
// text means "no budget constraint"; it never fails.
func ParseBudget(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	budget, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return budget, true
}

// Filter returns the hospitals satisfying every filter predicate, in their
// original catalog order. The location query matches case-insensitively
// against name or location; the organ filter passes on the "Any" sentinel;
// the budget ceiling is ignored when unparsable.
func Filter(hospitals []entities.Hospital, filters entities.SearchFilters) []entities.Hospital {
	query := strings.ToLower(strings.TrimSpace(filters.Location))
	budget, hasBudget := ParseBudget(filters.Budget)

	result := make([]entities.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if query != "" &&
			!strings.Contains(strings.ToLower(h.Name), query) &&
			!strings.Contains(strings.ToLower(h.Location), query) {
			continue
		}
		if filters.Organ != "" && filters.Organ != entities.OrganAny && !h.HasOrgan(filters.Organ) {
			continue
		}
		if hasBudget && h.EstimatedCost > budget {
			continue
		}
		result = append(result, h)
	}
	return result
}

// Sort returns a copy of hospitals ordered ascending by the given field.
// The sort is stable: records with equal field values keep their relative
// input order. SortByAI is a no-op here; ordering for that key comes from
// the ranking service.
func Sort(hospitals []entities.Hospital, key SortKey) []entities.Hospital {
	sorted := make([]entities.Hospital, len(hospitals))
	copy(sorted, hospitals)

	switch key {
	case SortByDistance:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Distance < sorted[j].Distance })
	case SortByWaitTime:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].WaitTime < sorted[j].WaitTime })
	case SortByCost:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EstimatedCost < sorted[j].EstimatedCost })
	}
	return sorted
}

// MergeRanking orders hospitals by the id order of analyses, attaching each
// analysis to its record. Analyses referencing unknown ids are dropped;
// hospitals the ranking omitted are appended unannotated at the end in their
// original relative order.
func MergeRanking(hospitals []entities.Hospital, analyses []entities.HospitalAnalysis) []entities.RankedHospital {
	byID := make(map[int]entities.Hospital, len(hospitals))
	for _, h := range hospitals {
		byID[h.ID] = h
	}

	merged := make([]entities.RankedHospital, 0, len(hospitals))
	seen := make(map[int]bool, len(analyses))
	for i := range analyses {
		a := analyses[i]
		h, ok := byID[a.HospitalID]
		if !ok || seen[a.HospitalID] {
			continue
		}
		seen[a.HospitalID] = true
		merged = append(merged, entities.RankedHospital{Hospital: h, Analysis: &a})
	}

	for _, h := range hospitals {
		if !seen[h.ID] {
			merged = append(merged, entities.RankedHospital{Hospital: h})
		}
	}
	return merged
}
