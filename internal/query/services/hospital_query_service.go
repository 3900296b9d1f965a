package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/synergyhealth/hospital-discovery/internal/adapters/events"
	"github.com/synergyhealth/hospital-discovery/internal/catalog"
	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
	apperrors "github.com/synergyhealth/hospital-discovery/pkg/errors"
)

// HospitalSource loads candidate records for the deterministic filter.
type HospitalSource interface {
	List(ctx context.Context) ([]entities.Hospital, error)
}

// TextSearcher narrows candidates by free-text query before filtering.
type TextSearcher interface {
	Search(ctx context.Context, query string) ([]entities.Hospital, error)
}

// HospitalQueryService handles read-only hospital search. The production
// path narrows free-text queries through Typesense; the deterministic
// filter then applies every predicate (including the text match again, so
// semantics never depend on which source answered), and the sort step
// orders the result. Each layer falls back to the next when unavailable.
type HospitalQueryService struct {
	searcher TextSearcher
	source   HospitalSource
	fallback *catalog.Catalog
	bus      providers.EventBus
}

// NewHospitalQueryService creates a new hospital query service. searcher,
// source and bus may be nil; fallback must not be.
func NewHospitalQueryService(searcher TextSearcher, source HospitalSource, fallback *catalog.Catalog, bus providers.EventBus) *HospitalQueryService {
	return &HospitalQueryService{
		searcher: searcher,
		source:   source,
		fallback: fallback,
		bus:      bus,
	}
}

// Search returns the filtered candidate set ordered by sortKey. For
// SortByAI the candidates come back in catalog order; ordering is the
// ranking service's job.
func (s *HospitalQueryService) Search(ctx context.Context, filters entities.SearchFilters, sortKey catalog.SortKey) ([]entities.Hospital, error) {
	base := s.load(ctx, filters)
	candidates := catalog.Filter(base, filters)
	result := catalog.Sort(candidates, sortKey)

	s.publishSearchEvent(ctx, filters, sortKey, len(result))
	return result, nil
}

// GetByID returns one catalog record.
func (s *HospitalQueryService) GetByID(ctx context.Context, id int) (*entities.Hospital, error) {
	if s.source != nil {
		if hospitals, err := s.source.List(ctx); err == nil {
			for i := range hospitals {
				if hospitals[i].ID == id {
					return &hospitals[i], nil
				}
			}
		}
	}
	h, ok := s.fallback.GetByID(id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %d not found", id))
	}
	return h, nil
}

func (s *HospitalQueryService) load(ctx context.Context, filters entities.SearchFilters) []entities.Hospital {
	log := observability.LoggerFromContext(ctx)

	if s.searcher != nil && strings.TrimSpace(filters.Location) != "" {
		if hospitals, err := s.searcher.Search(ctx, filters.Location); err == nil {
			return hospitals
		} else {
			log.Warn().Err(err).Msg("text search unavailable, falling back to full catalog scan")
		}
	}

	if s.source != nil {
		if hospitals, err := s.source.List(ctx); err == nil {
			return hospitals
		} else {
			log.Warn().Err(err).Msg("hospital repository unavailable, falling back to bundled catalog")
		}
	}

	return s.fallback.Hospitals()
}

func (s *HospitalQueryService) publishSearchEvent(ctx context.Context, filters entities.SearchFilters, sortKey catalog.SortKey, resultCount int) {
	if s.bus == nil {
		return
	}

	event := &entities.SearchEvent{
		ID:          uuid.NewString(),
		Query:       filters.Location,
		Organ:       filters.Organ,
		Budget:      filters.Budget,
		Urgency:     filters.Urgency,
		SortKey:     string(sortKey),
		ResultCount: resultCount,
		Timestamp:   time.Now().UTC(),
	}

	// Analytics are best-effort and never block the search path.
	if err := s.bus.Publish(ctx, events.SearchAnalyticsChannel, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to publish search event")
	}
}
