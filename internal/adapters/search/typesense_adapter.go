package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/repositories"
	tsclient "github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements hospital free-text search using Typesense.
// It covers only the location/name query; organ and budget predicates are
// applied by the deterministic filter on the returned records.
//
// Typesense matches on tokens and prefixes, while the in-memory filter
// matches arbitrary substrings. A query like "naga" therefore finds
// "Jayanagar" on the catalog scan path but not here, so results can be
// narrower than the fallback's for mid-word fragments. Acceptable for the
// search box, which sends whole words and prefixes.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.HospitalSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.HospitalsCollection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: tsclient.HospitalsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "hospital_id", Type: "int32"},
			{Name: "name", Type: "string"},
			{Name: "location", Type: "string"},
			{Name: "distance", Type: "float"},
			{Name: "wait_time_days", Type: "int32"},
			{Name: "available_organs", Type: "string[]", Facet: pointer.True()},
			{Name: "estimated_cost", Type: "float"},
			{Name: "image", Type: "string", Optional: pointer.True()},
		},
		DefaultSortingField: pointer.String("hospital_id"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

// Index indexes a hospital
func (a *TypesenseAdapter) Index(ctx context.Context, hospital *entities.Hospital) error {
	document := map[string]interface{}{
		"id":               strconv.Itoa(hospital.ID),
		"hospital_id":      hospital.ID,
		"name":             hospital.Name,
		"location":         hospital.Location,
		"distance":         hospital.Distance,
		"wait_time_days":   hospital.WaitTime,
		"available_organs": hospital.AvailableOrgans,
		"estimated_cost":   hospital.EstimatedCost,
		"image":            hospital.Image,
	}

	if _, err := a.client.Client().Collection(tsclient.HospitalsCollection).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index hospital: %w", err)
	}
	return nil
}

// Delete removes a hospital from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id int) error {
	if _, err := a.client.Client().Collection(tsclient.HospitalsCollection).Document(strconv.Itoa(id)).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete hospital from index: %w", err)
	}
	return nil
}

// Search searches hospitals by name or location text
func (a *TypesenseAdapter) Search(ctx context.Context, query string) ([]entities.Hospital, error) {
	q := query
	if q == "" {
		q = "*"
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String("name,location"),
		SortBy:  pointer.String("_text_match:desc,hospital_id:asc"),
		PerPage: pointer.Int(100),
	}

	result, err := a.client.Client().Collection(tsclient.HospitalsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search hospitals: %w", err)
	}

	hospitals := []entities.Hospital{}
	if result.Hits == nil {
		return hospitals, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		hospitals = append(hospitals, documentToHospital(*hit.Document))
	}
	return hospitals, nil
}

// documentToHospital rebuilds an entity from the loosely-typed Typesense
// document map.
func documentToHospital(doc map[string]interface{}) entities.Hospital {
	h := entities.Hospital{}

	if v, ok := doc["hospital_id"].(float64); ok {
		h.ID = int(v)
	}
	if v, ok := doc["name"].(string); ok {
		h.Name = v
	}
	if v, ok := doc["location"].(string); ok {
		h.Location = v
	}
	if v, ok := doc["distance"].(float64); ok {
		h.Distance = v
	}
	if v, ok := doc["wait_time_days"].(float64); ok {
		h.WaitTime = int(v)
	}
	if v, ok := doc["estimated_cost"].(float64); ok {
		h.EstimatedCost = v
	}
	if v, ok := doc["image"].(string); ok {
		h.Image = v
	}
	if organs, ok := doc["available_organs"].([]interface{}); ok {
		for _, o := range organs {
			if s, ok := o.(string); ok {
				h.AvailableOrgans = append(h.AvailableOrgans, s)
			}
		}
	}
	return h
}
