package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kurortly/search-backend/internal/adapters/cache"
	"github.com/kurortly/search-backend/internal/adapters/database"
	"github.com/kurortly/search-backend/internal/adapters/search"
	"github.com/kurortly/search-backend/internal/api/handlers"
	"github.com/kurortly/search-backend/internal/api/middleware"
	"github.com/kurortly/search-backend/internal/api/routes"
	"github.com/kurortly/search-backend/internal/application/services"
	"github.com/kurortly/search-backend/internal/domain/providers"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/postgres"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/redis"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/typesense"
	"github.com/kurortly/search-backend/internal/infrastructure/observability"
	"github.com/kurortly/search-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var metrics *observability.Metrics
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, otelErr := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if otelErr != nil {
			log.Warn().Err(otelErr).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")

			metrics, otelErr = observability.InitMetrics()
			if otelErr != nil {
				log.Fatal().Err(otelErr).Msg("failed to initialize metrics")
			}
		}
	}

	// Database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis client; the service works without caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Typesense client and schema bootstrap
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Typesense client")
	}
	if err := typesenseClient.InitSchemas(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to init Typesense schemas")
	}

	// Adapters
	objectRepo := database.NewObjectAdapter(pgClient)
	geoRepo := database.NewGeoAdapter(pgClient)
	dictRepo := database.NewDictionaryAdapter(pgClient)
	facetRepo := database.NewFacetAdapter(pgClient)
	seoRepo := database.NewSeoAdapter(pgClient)
	searchIndex := search.NewTypesenseAdapter(typesenseClient, cfg.Search.IndexTimeout, cfg.Search.MaxCandidates)

	// Services
	intersection := services.NewFacetIntersectionService(facetRepo)
	objectSearch := services.NewObjectSearchService(objectRepo, facetRepo, dictRepo, intersection, searchIndex, cfg.Search.DegradedMode)
	geoSearch := services.NewGeoSearchService(geoRepo, facetRepo, searchIndex, cfg.Search.DegradedMode)
	dictSearch := services.NewDictionarySearchService(dictRepo, facetRepo, searchIndex, cfg.Search.DegradedMode)
	aggregate := services.NewAggregateSearchService(services.DefaultSearchers(objectSearch, geoSearch, dictSearch), cfg.Search.FanOutLimit)
	resolver := services.NewFilterResolverService(seoRepo, dictRepo, geoRepo, objectRepo)
	seoTemplates := services.NewSeoTemplateService(seoRepo)
	filterSearch := services.NewFilterSearchService(resolver, objectSearch, seoTemplates)

	// HTTP surface
	searchHandler := handlers.NewSearchHandler(aggregate, objectSearch, geoSearch, dictSearch, filterSearch)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics, cfg.Search.CacheTTLSeconds)
	}

	router := routes.NewRouter(searchHandler, cacheMiddleware, metrics)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
