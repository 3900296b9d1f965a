package repositories

import (
	"context"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
)

// HospitalRepository defines catalog persistence operations. The catalog is
// read-only for the serving path; Upsert exists for seeding and ingestion.
type HospitalRepository interface {
	GetByID(ctx context.Context, id int) (*entities.Hospital, error)
	List(ctx context.Context) ([]entities.Hospital, error)
	Upsert(ctx context.Context, hospital *entities.Hospital) error
}

// HospitalSearchRepository defines full-text search over the catalog.
type HospitalSearchRepository interface {
	InitSchema(ctx context.Context) error
	Index(ctx context.Context, hospital *entities.Hospital) error
	Search(ctx context.Context, query string) ([]entities.Hospital, error)
	Delete(ctx context.Context, id int) error
}
