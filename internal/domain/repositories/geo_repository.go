package repositories

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
)

// GeoQuery restricts a geography search. Semantics of CandidateIDs match
// ObjectQuery.
type GeoQuery struct {
	CandidateIDs []int64
	KeywordLike  string
	Limit        int
	Offset       int
}

// GeoRepository provides relational access to countries, regions and cities
type GeoRepository interface {
	SearchCountries(ctx context.Context, q GeoQuery) ([]*entities.Country, error)
	CountCountries(ctx context.Context, q GeoQuery) (int, error)
	SearchRegions(ctx context.Context, q GeoQuery) ([]*entities.Region, error)
	CountRegions(ctx context.Context, q GeoQuery) (int, error)
	SearchCities(ctx context.Context, q GeoQuery) ([]*entities.City, error)
	CountCities(ctx context.Context, q GeoQuery) (int, error)

	CountryByID(ctx context.Context, id int64) (*entities.Country, error)
	RegionByID(ctx context.Context, id int64) (*entities.Region, error)
	CityByID(ctx context.Context, id int64) (*entities.City, error)

	CountryIDsByAliases(ctx context.Context, aliases []string) ([]int64, error)
	RegionIDsByAliases(ctx context.Context, aliases []string) ([]int64, error)
	CityIDsByAliases(ctx context.Context, aliases []string) ([]int64, error)
}
