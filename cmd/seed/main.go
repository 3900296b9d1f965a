// Command seed loads the bundled hospital catalog into PostgreSQL and
// indexes it in Typesense. It is idempotent: existing rows are updated
// and existing documents re-indexed.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/synergyhealth/hospital-discovery/internal/adapters/database"
	"github.com/synergyhealth/hospital-discovery/internal/adapters/search"
	"github.com/synergyhealth/hospital-discovery/internal/catalog"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/postgres"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/typesense"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
	"github.com/synergyhealth/hospital-discovery/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("hospital-discovery-seed", os.Getenv("APP_ENV"))
	log := observability.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	hospitals := catalog.SeedHospitals()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pgClient.Close()

	repo := database.NewHospitalAdapter(pgClient)
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}
	for i := range hospitals {
		if err := repo.Upsert(ctx, &hospitals[i]); err != nil {
			log.Fatal().Err(err).Int("id", hospitals[i].ID).Msg("failed to upsert hospital")
		}
	}
	log.Info().Int("count", len(hospitals)).Msg("hospitals loaded into postgres")

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("typesense unavailable, skipping search index")
		return
	}

	searcher := search.NewTypesenseAdapter(tsClient)
	if err := searcher.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create search collection")
	}
	for i := range hospitals {
		if err := searcher.Index(ctx, &hospitals[i]); err != nil {
			log.Fatal().Err(err).Int("id", hospitals[i].ID).Msg("failed to index hospital")
		}
	}
	log.Info().Int("count", len(hospitals)).Msg("hospitals indexed in typesense")
}
