package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kurortly/search-backend/internal/adapters/database"
	"github.com/kurortly/search-backend/internal/adapters/search"
	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/postgres"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/typesense"
	"github.com/kurortly/search-backend/internal/infrastructure/observability"
	"github.com/kurortly/search-backend/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collections before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("medtour-indexer", os.Getenv("APP_ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		var err error
		interval, err = time.ParseDuration(intervalValue)
		if err != nil || interval <= 0 {
			log.Fatal().Str("interval", intervalValue).Msg("invalid reindex interval")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("interval", interval).Msg("reindex complete, scheduling next run")

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		for _, kind := range entities.SearchableKinds {
			name := typesense.CollectionFor(kind)
			if _, err := tsClient.Client().Collection(name).Delete(ctx); err != nil {
				log.Warn().Err(err).Str("collection", name).Msg("failed to delete collection")
			}
		}
	}

	if err := tsClient.InitSchemas(ctx); err != nil {
		return err
	}

	index := search.NewTypesenseAdapter(tsClient, cfg.Search.IndexTimeout, cfg.Search.MaxCandidates)
	objectRepo := database.NewObjectAdapter(pgClient)
	geoRepo := database.NewGeoAdapter(pgClient)
	dictRepo := database.NewDictionaryAdapter(pgClient)

	if err := indexObjects(ctx, index, objectRepo); err != nil {
		return err
	}
	if err := indexGeo(ctx, index, geoRepo); err != nil {
		return err
	}
	return indexDictionaries(ctx, index, dictRepo)
}

func baseDocument(id int64, alias, nameRU, nameEN, descRU, descEN string, updated time.Time) map[string]interface{} {
	if updated.IsZero() {
		updated = time.Now()
	}
	return map[string]interface{}{
		"id":             strconv.FormatInt(id, 10),
		"entity_id":      id,
		"alias":          alias,
		"name_ru":        nameRU,
		"name_en":        nameEN,
		"description_ru": descRU,
		"description_en": descEN,
		"visible":        true,
		"updated_at":     updated.Unix(),
	}
}

func indexObjects(ctx context.Context, index repositories.SearchIndex, repo repositories.ObjectRepository) error {
	objects, err := repo.Search(ctx, repositories.ObjectQuery{})
	if err != nil {
		return err
	}

	for _, o := range objects {
		doc := baseDocument(o.ID, o.Alias, o.NameRU, o.NameEN, o.DescriptionRU, o.DescriptionEN, o.UpdatedAt)
		doc["stars"] = o.Stars
		if o.Location != nil {
			doc["location"] = []float64{o.Location.Latitude, o.Location.Longitude}
		}
		if err := index.IndexDocument(ctx, entities.KindObject, doc); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(objects)).Msg("indexed objects")
	return nil
}

func indexGeo(ctx context.Context, index repositories.SearchIndex, repo repositories.GeoRepository) error {
	countries, err := repo.SearchCountries(ctx, repositories.GeoQuery{})
	if err != nil {
		return err
	}
	for _, c := range countries {
		doc := baseDocument(c.ID, c.Alias, c.NameRU, c.NameEN, "", "", time.Time{})
		if err := index.IndexDocument(ctx, entities.KindCountry, doc); err != nil {
			return err
		}
	}

	regions, err := repo.SearchRegions(ctx, repositories.GeoQuery{})
	if err != nil {
		return err
	}
	for _, r := range regions {
		doc := baseDocument(r.ID, r.Alias, r.NameRU, r.NameEN, "", "", time.Time{})
		if err := index.IndexDocument(ctx, entities.KindRegion, doc); err != nil {
			return err
		}
	}

	cities, err := repo.SearchCities(ctx, repositories.GeoQuery{})
	if err != nil {
		return err
	}
	for _, c := range cities {
		doc := baseDocument(c.ID, c.Alias, c.NameRU, c.NameEN, "", "", time.Time{})
		if err := index.IndexDocument(ctx, entities.KindCity, doc); err != nil {
			return err
		}
	}

	log.Info().
		Int("countries", len(countries)).
		Int("regions", len(regions)).
		Int("cities", len(cities)).
		Msg("indexed geography")
	return nil
}

func indexDictionaries(ctx context.Context, index repositories.SearchIndex, repo repositories.DictionaryRepository) error {
	profiles, err := repo.SearchProfiles(ctx, repositories.DictionaryQuery{})
	if err != nil {
		return err
	}
	for _, p := range profiles {
		doc := baseDocument(p.ID, p.Alias, p.NameRU, p.NameEN, p.DescriptionRU, p.DescriptionEN, time.Time{})
		if err := index.IndexDocument(ctx, entities.KindMedicalProfile, doc); err != nil {
			return err
		}
	}

	diseases, err := repo.SearchDiseases(ctx, repositories.DictionaryQuery{})
	if err != nil {
		return err
	}
	for _, d := range diseases {
		doc := baseDocument(d.ID, d.Alias, d.NameRU, d.NameEN, d.DescriptionRU, d.DescriptionEN, time.Time{})
		if err := index.IndexDocument(ctx, entities.KindDisease, doc); err != nil {
			return err
		}
	}

	therapies, err := repo.SearchTherapies(ctx, repositories.DictionaryQuery{})
	if err != nil {
		return err
	}
	for _, t := range therapies {
		doc := baseDocument(t.ID, t.Alias, t.NameRU, t.NameEN, t.DescriptionRU, t.DescriptionEN, time.Time{})
		if err := index.IndexDocument(ctx, entities.KindTherapy, doc); err != nil {
			return err
		}
	}

	log.Info().
		Int("profiles", len(profiles)).
		Int("diseases", len(diseases)).
		Int("therapies", len(therapies)).
		Msg("indexed dictionaries")
	return nil
}
