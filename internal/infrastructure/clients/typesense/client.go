package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/pkg/config"
	"github.com/kurortly/search-backend/pkg/retry"
)

// CollectionFor maps an entity kind to its index collection name
func CollectionFor(kind entities.EntityKind) string {
	switch kind {
	case entities.KindObject:
		return "objects"
	case entities.KindCountry:
		return "countries"
	case entities.KindRegion:
		return "regions"
	case entities.KindCity:
		return "cities"
	case entities.KindMedicalProfile:
		return "medical_profiles"
	case entities.KindDisease:
		return "diseases"
	case entities.KindTherapy:
		return "therapies"
	}
	return string(kind)
}

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.Do(
		context.Background(),
		retry.DefaultConfig(),
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := client.Health(ctx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).
				Msg("Typesense connection attempt failed, retrying")
		},
	)

	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Msg("connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// InitSchemas ensures one collection per searchable entity kind. Every
// collection carries both locale variants of the name and description so a
// single collection serves ru and en queries via query_by.
func (c *Client) InitSchemas(ctx context.Context) error {
	existing := map[string]bool{}
	collections, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve collections: %w", err)
	}
	for _, col := range collections {
		existing[col.Name] = true
	}

	for _, kind := range entities.SearchableKinds {
		name := CollectionFor(kind)
		if existing[name] {
			continue
		}

		fields := []api.Field{
			{Name: "id", Type: "string"},
			{Name: "entity_id", Type: "int64"},
			{Name: "alias", Type: "string"},
			{Name: "name_ru", Type: "string"},
			{Name: "name_en", Type: "string"},
			{Name: "description_ru", Type: "string", Optional: pointer.True()},
			{Name: "description_en", Type: "string", Optional: pointer.True()},
			{Name: "visible", Type: "bool"},
			{Name: "updated_at", Type: "int64"},
		}
		if kind == entities.KindObject {
			fields = append(fields,
				api.Field{Name: "stars", Type: "int32", Facet: pointer.True()},
				api.Field{Name: "location", Type: "geopoint", Optional: pointer.True()},
			)
		}

		schema := &api.CollectionSchema{
			Name:                name,
			Fields:              fields,
			DefaultSortingField: pointer.String("updated_at"),
		}

		if _, err := c.client.Collections().Create(ctx, schema); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
		log.Info().Str("collection", name).Msg("created Typesense collection")
	}

	return nil
}
