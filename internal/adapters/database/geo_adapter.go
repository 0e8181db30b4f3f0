package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

// GeoAdapter implements the GeoRepository interface
type GeoAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewGeoAdapter creates a new geography adapter
func NewGeoAdapter(client *postgres.Client) repositories.GeoRepository {
	return &GeoAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func geoWhere(ds *goqu.SelectDataset, q repositories.GeoQuery) *goqu.SelectDataset {
	if q.CandidateIDs != nil {
		ds = ds.Where(goqu.Ex{"id": q.CandidateIDs})
	}
	if q.KeywordLike != "" {
		pattern := "%" + q.KeywordLike + "%"
		ds = ds.Where(goqu.Or(
			goqu.L("LOWER(name_ru)").Like(pattern),
			goqu.L("LOWER(name_en)").Like(pattern),
		))
	}
	return ds
}

func geoPage(ds *goqu.SelectDataset, q repositories.GeoQuery) *goqu.SelectDataset {
	ds = ds.Order(goqu.C("id").Asc())
	if q.Limit > 0 {
		ds = ds.Limit(uint(q.Limit)).Offset(uint(q.Offset))
	}
	return ds
}

func geoEmpty(q repositories.GeoQuery) bool {
	return q.CandidateIDs != nil && len(q.CandidateIDs) == 0
}

// SearchCountries retrieves countries matching the query
func (a *GeoAdapter) SearchCountries(ctx context.Context, q repositories.GeoQuery) ([]*entities.Country, error) {
	if geoEmpty(q) {
		return []*entities.Country{}, nil
	}

	ds := geoPage(geoWhere(a.db.From("countries"), q), q).
		Select("id", "alias", "name_ru", "name_en", "latitude", "longitude")
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build country search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search countries", err)
	}
	defer rows.Close()

	countries := []*entities.Country{}
	for rows.Next() {
		c := &entities.Country{}
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.Alias, &c.NameRU, &c.NameEN, &lat, &lon); err != nil {
			return nil, apperrors.NewInternalError("failed to scan country", err)
		}
		c.Location = location(lat, lon)
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating countries", err)
	}

	return countries, nil
}

// CountCountries returns the number of countries matching the query
func (a *GeoAdapter) CountCountries(ctx context.Context, q repositories.GeoQuery) (int, error) {
	return a.count(ctx, "countries", q)
}

// SearchRegions retrieves regions matching the query
func (a *GeoAdapter) SearchRegions(ctx context.Context, q repositories.GeoQuery) ([]*entities.Region, error) {
	if geoEmpty(q) {
		return []*entities.Region{}, nil
	}

	ds := geoPage(geoWhere(a.db.From("regions"), q), q).
		Select("id", "country_id", "alias", "name_ru", "name_en", "latitude", "longitude")
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build region search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search regions", err)
	}
	defer rows.Close()

	regions := []*entities.Region{}
	for rows.Next() {
		r := &entities.Region{}
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.CountryID, &r.Alias, &r.NameRU, &r.NameEN, &lat, &lon); err != nil {
			return nil, apperrors.NewInternalError("failed to scan region", err)
		}
		r.Location = location(lat, lon)
		regions = append(regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating regions", err)
	}

	return regions, nil
}

// CountRegions returns the number of regions matching the query
func (a *GeoAdapter) CountRegions(ctx context.Context, q repositories.GeoQuery) (int, error) {
	return a.count(ctx, "regions", q)
}

// SearchCities retrieves cities matching the query
func (a *GeoAdapter) SearchCities(ctx context.Context, q repositories.GeoQuery) ([]*entities.City, error) {
	if geoEmpty(q) {
		return []*entities.City{}, nil
	}

	ds := geoPage(geoWhere(a.db.From("cities"), q), q).
		Select("id", "region_id", "alias", "name_ru", "name_en", "latitude", "longitude")
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build city search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search cities", err)
	}
	defer rows.Close()

	cities := []*entities.City{}
	for rows.Next() {
		c := &entities.City{}
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.RegionID, &c.Alias, &c.NameRU, &c.NameEN, &lat, &lon); err != nil {
			return nil, apperrors.NewInternalError("failed to scan city", err)
		}
		c.Location = location(lat, lon)
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating cities", err)
	}

	return cities, nil
}

// CountCities returns the number of cities matching the query
func (a *GeoAdapter) CountCities(ctx context.Context, q repositories.GeoQuery) (int, error) {
	return a.count(ctx, "cities", q)
}

// CountryByID retrieves a country by ID
func (a *GeoAdapter) CountryByID(ctx context.Context, id int64) (*entities.Country, error) {
	countries, err := a.SearchCountries(ctx, repositories.GeoQuery{CandidateIDs: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("country with id %d not found", id))
	}
	return countries[0], nil
}

// RegionByID retrieves a region by ID
func (a *GeoAdapter) RegionByID(ctx context.Context, id int64) (*entities.Region, error) {
	regions, err := a.SearchRegions(ctx, repositories.GeoQuery{CandidateIDs: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("region with id %d not found", id))
	}
	return regions[0], nil
}

// CityByID retrieves a city by ID
func (a *GeoAdapter) CityByID(ctx context.Context, id int64) (*entities.City, error) {
	cities, err := a.SearchCities(ctx, repositories.GeoQuery{CandidateIDs: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("city with id %d not found", id))
	}
	return cities[0], nil
}

// CountryIDsByAliases returns the IDs of countries whose alias is in the list
func (a *GeoAdapter) CountryIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return a.idsByAliases(ctx, "countries", aliases)
}

// RegionIDsByAliases returns the IDs of regions whose alias is in the list
func (a *GeoAdapter) RegionIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return a.idsByAliases(ctx, "regions", aliases)
}

// CityIDsByAliases returns the IDs of cities whose alias is in the list
func (a *GeoAdapter) CityIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return a.idsByAliases(ctx, "cities", aliases)
}

func (a *GeoAdapter) count(ctx context.Context, table string, q repositories.GeoQuery) (int, error) {
	if geoEmpty(q) {
		return 0, nil
	}

	query, args, err := geoWhere(a.db.From(table), q).Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build geo count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError(fmt.Sprintf("failed to count %s", table), err)
	}

	return count, nil
}

func (a *GeoAdapter) idsByAliases(ctx context.Context, table string, aliases []string) ([]int64, error) {
	if len(aliases) == 0 {
		return nil, nil
	}

	query, args, err := a.db.From(table).
		Select("id").
		Where(goqu.Ex{"alias": aliases}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build alias lookup query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up aliases", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating ids", err)
	}

	return ids, nil
}

func location(lat, lon sql.NullFloat64) *entities.Location {
	if lat.Valid && lon.Valid {
		return &entities.Location{Latitude: lat.Float64, Longitude: lon.Float64}
	}
	return nil
}
