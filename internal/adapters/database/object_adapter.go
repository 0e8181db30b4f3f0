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

var objectColumns = []interface{}{
	"id", "alias", "name_ru", "name_en", "description_ru", "description_en",
	"stars", "discount", "on_main_page", "visible", "rating",
	"country_id", "region_id", "city_id", "latitude", "longitude",
	"created_at", "updated_at",
}

// ObjectAdapter implements the ObjectRepository interface
type ObjectAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewObjectAdapter creates a new object adapter
func NewObjectAdapter(client *postgres.Client) repositories.ObjectRepository {
	return &ObjectAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// emptyRestriction reports whether a non-nil ID restriction matched nothing.
// Such a query must yield zero rows without touching the database.
func emptyRestriction(q repositories.ObjectQuery) bool {
	return (q.CandidateIDs != nil && len(q.CandidateIDs) == 0) ||
		(q.EligibleIDs != nil && len(q.EligibleIDs) == 0)
}

func (a *ObjectAdapter) baseQuery(q repositories.ObjectQuery) *goqu.SelectDataset {
	ds := a.db.From("objects").
		Where(goqu.Ex{"visible": true}, goqu.C("deleted_at").IsNull())

	if q.CandidateIDs != nil {
		ds = ds.Where(goqu.Ex{"id": q.CandidateIDs})
	}
	if q.EligibleIDs != nil {
		ds = ds.Where(goqu.Ex{"id": q.EligibleIDs})
	}
	if len(q.Stars) > 0 {
		ds = ds.Where(goqu.Ex{"stars": q.Stars})
	}
	if q.Discount {
		ds = ds.Where(goqu.Ex{"discount": true})
	}
	if q.OnMainPage {
		ds = ds.Where(goqu.Ex{"on_main_page": true})
	}
	if len(q.CountryIDs) > 0 {
		ds = ds.Where(goqu.Ex{"country_id": q.CountryIDs})
	}
	if len(q.RegionIDs) > 0 {
		ds = ds.Where(goqu.Ex{"region_id": q.RegionIDs})
	}
	if len(q.CityIDs) > 0 {
		ds = ds.Where(goqu.Ex{"city_id": q.CityIDs})
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

// Search retrieves objects matching the query. Results are unordered by
// relevance; callers re-sort in memory by index score or anchor distance.
func (a *ObjectAdapter) Search(ctx context.Context, q repositories.ObjectQuery) ([]*entities.Object, error) {
	if emptyRestriction(q) {
		return []*entities.Object{}, nil
	}

	ds := a.baseQuery(q).
		Select(objectColumns...).
		Order(goqu.C("id").Asc())
	if q.Limit > 0 {
		ds = ds.Limit(uint(q.Limit)).Offset(uint(q.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build object search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search objects", err)
	}
	defer rows.Close()

	objects := []*entities.Object{}
	for rows.Next() {
		object, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating objects", err)
	}

	return objects, nil
}

// Count returns the number of objects matching the query
func (a *ObjectAdapter) Count(ctx context.Context, q repositories.ObjectQuery) (int, error) {
	if emptyRestriction(q) {
		return 0, nil
	}

	query, args, err := a.baseQuery(q).Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build object count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count objects", err)
	}

	return count, nil
}

// GetByID retrieves a visible object by ID
func (a *ObjectAdapter) GetByID(ctx context.Context, id int64) (*entities.Object, error) {
	query, args, err := a.db.From("objects").
		Select(objectColumns...).
		Where(goqu.Ex{"id": id, "visible": true}, goqu.C("deleted_at").IsNull()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build object query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	object, err := scanObject(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("object with id %d not found", id))
	}
	if err != nil {
		return nil, err
	}

	return object, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanObject(row rowScanner) (*entities.Object, error) {
	object := &entities.Object{}
	var descRU, descEN sql.NullString
	var lat, lon sql.NullFloat64

	err := row.Scan(
		&object.ID,
		&object.Alias,
		&object.NameRU,
		&object.NameEN,
		&descRU,
		&descEN,
		&object.Stars,
		&object.Discount,
		&object.OnMainPage,
		&object.Visible,
		&object.Rating,
		&object.CountryID,
		&object.RegionID,
		&object.CityID,
		&lat,
		&lon,
		&object.CreatedAt,
		&object.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan object", err)
	}

	object.DescriptionRU = descRU.String
	object.DescriptionEN = descEN.String
	if lat.Valid && lon.Valid {
		object.Location = &entities.Location{Latitude: lat.Float64, Longitude: lon.Float64}
	}

	return object, nil
}
