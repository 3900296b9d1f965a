package catalog

import (
	"context"
	"fmt"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
)

// Catalog is an immutable in-memory hospital store. It backs tests and the
// serving path when neither Typesense nor Postgres is reachable.
type Catalog struct {
	hospitals []entities.Hospital
	byID      map[int]entities.Hospital
}

// New builds a catalog from the given records. Duplicate ids are rejected
// because id is the stable identity key for ranking merges.
func New(hospitals []entities.Hospital) (*Catalog, error) {
	byID := make(map[int]entities.Hospital, len(hospitals))
	for _, h := range hospitals {
		if _, exists := byID[h.ID]; exists {
			return nil, fmt.Errorf("duplicate hospital id %d", h.ID)
		}
		byID[h.ID] = h
	}
	records := make([]entities.Hospital, len(hospitals))
	copy(records, hospitals)
	return &Catalog{hospitals: records, byID: byID}, nil
}

// Hospitals returns a copy of all records in catalog order.
func (c *Catalog) Hospitals() []entities.Hospital {
	out := make([]entities.Hospital, len(c.hospitals))
	copy(out, c.hospitals)
	return out
}

// GetByID returns the record with the given id.
func (c *Catalog) GetByID(id int) (*entities.Hospital, bool) {
	h, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &h, true
}

// Len returns the number of catalog records.
func (c *Catalog) Len() int {
	return len(c.hospitals)
}

// List implements the read side of repositories.HospitalRepository so the
// in-memory catalog can stand in for the database.
func (c *Catalog) List(ctx context.Context) ([]entities.Hospital, error) {
	return c.Hospitals(), nil
}
