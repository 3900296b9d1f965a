package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/synergyhealth/hospital-discovery/internal/adapters/cache"
	"github.com/synergyhealth/hospital-discovery/internal/adapters/database"
	"github.com/synergyhealth/hospital-discovery/internal/adapters/events"
	"github.com/synergyhealth/hospital-discovery/internal/adapters/search"
	"github.com/synergyhealth/hospital-discovery/internal/analytics"
	"github.com/synergyhealth/hospital-discovery/internal/api/handlers"
	"github.com/synergyhealth/hospital-discovery/internal/api/middleware"
	"github.com/synergyhealth/hospital-discovery/internal/api/routes"
	"github.com/synergyhealth/hospital-discovery/internal/assistant"
	"github.com/synergyhealth/hospital-discovery/internal/catalog"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	"github.com/synergyhealth/hospital-discovery/internal/domain/repositories"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/gemini"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/openrouter"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/postgres"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/redis"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/clients/typesense"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
	"github.com/synergyhealth/hospital-discovery/internal/query/services"
	"github.com/synergyhealth/hospital-discovery/internal/ranking"
	"github.com/synergyhealth/hospital-discovery/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))
	log := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize metrics")
	}

	// Bundled catalog always exists; it backs tests and the degenerate
	// no-infrastructure deployment.
	memCatalog, err := catalog.New(catalog.SeedHospitals())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid bundled catalog")
	}

	var repo repositories.HospitalRepository
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("postgres unavailable, serving the bundled catalog")
	} else {
		defer pgClient.Close()
		repo = database.NewHospitalAdapter(pgClient)
		log.Info().Msg("postgres client initialized")
	}

	var cacheProvider providers.CacheProvider
	var bus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache and analytics")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		bus = events.NewRedisEventBus(redisClient)
		defer bus.Close()
		log.Info().Msg("redis client initialized")
	}

	var source services.HospitalSource
	if repo != nil {
		if cacheProvider != nil {
			source = database.NewCachedHospitalAdapter(repo, cacheProvider)
		} else {
			source = repo
		}
	}

	var searcher services.TextSearcher
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("typesense unavailable, free-text search degrades to catalog scan")
	} else {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init typesense schema")
		} else {
			searcher = adapter
			log.Info().Msg("typesense client initialized")
		}
	}

	var chain []providers.CompletionProvider
	if primary, err := gemini.NewClient(&cfg.Gemini); err != nil {
		log.Warn().Err(err).Msg("primary completion provider not configured")
	} else {
		chain = append(chain, primary)
	}
	if secondary, err := openrouter.NewClient(&cfg.OpenRouter); err != nil {
		log.Warn().Err(err).Msg("secondary completion provider not configured")
	} else {
		chain = append(chain, secondary)
	}
	if len(chain) == 0 {
		log.Warn().Msg("no completion providers configured, all AI operations will use deterministic fallbacks")
	}

	queryService := services.NewHospitalQueryService(searcher, source, memCatalog, bus)
	rankingService := ranking.NewService(chain, cfg.AI.ProviderTimeout)
	assistantService := assistant.NewService(chain, cfg.AI.ProviderTimeout)

	recorder := analytics.NewRecorder()
	if bus != nil {
		if err := recorder.Start(ctx, bus); err != nil {
			log.Warn().Err(err).Msg("failed to start search analytics recorder")
		} else {
			log.Info().Msg("search analytics recorder started")
		}
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(
		handlers.NewHospitalHandler(queryService),
		handlers.NewRankingHandler(queryService, rankingService, ranking.NewTracker()),
		handlers.NewAssistantHandler(assistantService),
		handlers.NewPrescriptionHandler(assistantService),
		handlers.NewAnalyticsHandler(recorder),
		cacheMiddleware,
		metrics,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
