package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/repositories"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/synergyhealth/hospital-discovery/pkg/errors"
)

// HospitalAdapter implements the HospitalRepository interface
type HospitalAdapter struct {
	client *postgres.Client
}

var _ repositories.HospitalRepository = (*HospitalAdapter)(nil)

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) *HospitalAdapter {
	return &HospitalAdapter{client: client}
}

// InitSchema creates the hospitals table if it does not exist
func (a *HospitalAdapter) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS hospitals (
			id               INTEGER PRIMARY KEY,
			name             TEXT NOT NULL,
			location         TEXT NOT NULL,
			distance         DOUBLE PRECISION NOT NULL,
			wait_time_days   INTEGER NOT NULL,
			available_organs TEXT[] NOT NULL,
			estimated_cost   DOUBLE PRECISION NOT NULL,
			image            TEXT NOT NULL DEFAULT ''
		)
	`

	if _, err := a.client.DB().ExecContext(ctx, query); err != nil {
		return apperrors.NewInternalError("failed to create hospitals table", err)
	}
	return nil
}

// GetByID retrieves a hospital by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id int) (*entities.Hospital, error) {
	query := `
		SELECT id, name, location, distance, wait_time_days, available_organs, estimated_cost, image
		FROM hospitals
		WHERE id = $1
	`

	hospital := &entities.Hospital{}
	err := a.client.DB().QueryRowContext(ctx, query, id).Scan(
		&hospital.ID,
		&hospital.Name,
		&hospital.Location,
		&hospital.Distance,
		&hospital.WaitTime,
		pq.Array(&hospital.AvailableOrgans),
		&hospital.EstimatedCost,
		&hospital.Image,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}

	return hospital, nil
}

// List retrieves the whole catalog in stable id order
func (a *HospitalAdapter) List(ctx context.Context) ([]entities.Hospital, error) {
	query := `
		SELECT id, name, location, distance, wait_time_days, available_organs, estimated_cost, image
		FROM hospitals
		ORDER BY id
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospitals", err)
	}
	defer rows.Close()

	hospitals := []entities.Hospital{}
	for rows.Next() {
		var h entities.Hospital
		if err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.Location,
			&h.Distance,
			&h.WaitTime,
			pq.Array(&h.AvailableOrgans),
			&h.EstimatedCost,
			&h.Image,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read hospitals", err)
	}

	return hospitals, nil
}

// Upsert inserts or replaces a hospital record. Used by seeding only; the
// serving path treats the catalog as read-only.
func (a *HospitalAdapter) Upsert(ctx context.Context, hospital *entities.Hospital) error {
	query := `
		INSERT INTO hospitals (id, name, location, distance, wait_time_days, available_organs, estimated_cost, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			location = EXCLUDED.location,
			distance = EXCLUDED.distance,
			wait_time_days = EXCLUDED.wait_time_days,
			available_organs = EXCLUDED.available_organs,
			estimated_cost = EXCLUDED.estimated_cost,
			image = EXCLUDED.image
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		hospital.ID,
		hospital.Name,
		hospital.Location,
		hospital.Distance,
		hospital.WaitTime,
		pq.Array(hospital.AvailableOrgans),
		hospital.EstimatedCost,
		hospital.Image,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert hospital", err)
	}

	return nil
}
