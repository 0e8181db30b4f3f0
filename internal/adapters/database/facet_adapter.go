package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

// FacetAdapter implements the FacetRepository interface
type FacetAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFacetAdapter creates a new facet adapter
func NewFacetAdapter(client *postgres.Client) repositories.FacetRepository {
	return &FacetAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// allMatchObjectIDs returns the object IDs associated with every one of the
// selected values: group association rows by object and require the distinct
// value count to equal the selection size.
func (a *FacetAdapter) allMatchObjectIDs(ctx context.Context, table, valueColumn string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := a.db.From(table).
		Select("object_id").
		Where(goqu.Ex{valueColumn: ids}).
		GroupBy("object_id").
		Having(goqu.L(fmt.Sprintf("COUNT(DISTINCT %s) = ?", valueColumn), len(ids))).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facet query", err)
	}

	return a.queryIDs(ctx, query, args)
}

// ObjectIDsWithAllProfiles returns objects associated with every selected profile
func (a *FacetAdapter) ObjectIDsWithAllProfiles(ctx context.Context, profileIDs []int64) ([]int64, error) {
	return a.allMatchObjectIDs(ctx, "object_medical_profiles", "medical_profile_id", profileIDs)
}

// ObjectIDsWithAllTherapies returns objects associated with every selected therapy
func (a *FacetAdapter) ObjectIDsWithAllTherapies(ctx context.Context, therapyIDs []int64) ([]int64, error) {
	return a.allMatchObjectIDs(ctx, "object_therapies", "therapy_id", therapyIDs)
}

// ObjectIDsWithAllServices returns objects associated with every selected service
func (a *FacetAdapter) ObjectIDsWithAllServices(ctx context.Context, serviceIDs []int64) ([]int64, error) {
	return a.allMatchObjectIDs(ctx, "object_services", "service_id", serviceIDs)
}

// ObjectIDsWithAnyMood returns objects associated with any selected mood
func (a *FacetAdapter) ObjectIDsWithAnyMood(ctx context.Context, moodIDs []int64) ([]int64, error) {
	if len(moodIDs) == 0 {
		return nil, nil
	}

	query, args, err := a.db.From("object_moods").
		SelectDistinct("object_id").
		Where(goqu.Ex{"mood_id": moodIDs}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build mood facet query", err)
	}

	return a.queryIDs(ctx, query, args)
}

// ObjectIDsNotExcludingDiseases returns the visible objects for which none of
// the selected diseases appear in the per-object exclusion list. Diseases are
// associated with profiles globally; eligibility is a NOT-IN filter against
// the override table, not a positive association lookup.
func (a *FacetAdapter) ObjectIDsNotExcludingDiseases(ctx context.Context, diseaseIDs []int64) ([]int64, error) {
	if len(diseaseIDs) == 0 {
		return nil, nil
	}

	excluded := a.db.From("object_disease_exclusions").
		Select("object_id").
		Where(goqu.Ex{"disease_id": diseaseIDs})

	query, args, err := a.db.From("objects").
		Select("id").
		Where(
			goqu.Ex{"visible": true},
			goqu.C("deleted_at").IsNull(),
			goqu.C("id").NotIn(excluded),
		).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build disease facet query", err)
	}

	return a.queryIDs(ctx, query, args)
}

// AvailableStars returns the distinct star values present among the given
// objects, ascending. A non-nil empty set matched nothing and yields empty
// availability without touching the database.
func (a *FacetAdapter) AvailableStars(ctx context.Context, objectIDs []int64) ([]int, error) {
	if objectIDs != nil && len(objectIDs) == 0 {
		return []int{}, nil
	}

	ds := a.db.From("objects").
		SelectDistinct("stars").
		Where(
			goqu.Ex{"visible": true},
			goqu.C("deleted_at").IsNull(),
			goqu.C("stars").Gt(0),
		).
		Order(goqu.C("stars").Asc())
	if objectIDs != nil {
		ds = ds.Where(goqu.Ex{"id": objectIDs})
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build stars availability query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query available stars", err)
	}
	defer rows.Close()

	var stars []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, apperrors.NewInternalError("failed to scan star value", err)
		}
		stars = append(stars, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating star values", err)
	}

	return stars, nil
}

// AvailableMoodIDs returns the distinct moods associated with the given objects
func (a *FacetAdapter) AvailableMoodIDs(ctx context.Context, objectIDs []int64) ([]int64, error) {
	if objectIDs != nil && len(objectIDs) == 0 {
		return []int64{}, nil
	}

	ds := a.db.From("object_moods").SelectDistinct("mood_id")
	if objectIDs != nil {
		ds = ds.Where(goqu.Ex{"object_id": objectIDs})
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build mood availability query", err)
	}

	return a.queryIDs(ctx, query, args)
}

// CountObjects returns the number of visible objects attached to the entity
func (a *FacetAdapter) CountObjects(ctx context.Context, kind entities.EntityKind, entityID int64) (int, error) {
	visible := a.db.From("objects").
		Select("id").
		Where(goqu.Ex{"visible": true}, goqu.C("deleted_at").IsNull())

	var ds *goqu.SelectDataset
	switch kind {
	case entities.KindCountry:
		ds = visible.Where(goqu.Ex{"country_id": entityID}).Select(goqu.COUNT("*"))
	case entities.KindRegion:
		ds = visible.Where(goqu.Ex{"region_id": entityID}).Select(goqu.COUNT("*"))
	case entities.KindCity:
		ds = visible.Where(goqu.Ex{"city_id": entityID}).Select(goqu.COUNT("*"))
	case entities.KindMedicalProfile:
		ds = a.db.From("object_medical_profiles").
			Select(goqu.L("COUNT(DISTINCT object_id)")).
			Where(goqu.Ex{"medical_profile_id": entityID})
	case entities.KindTherapy:
		ds = a.db.From("object_therapies").
			Select(goqu.L("COUNT(DISTINCT object_id)")).
			Where(goqu.Ex{"therapy_id": entityID})
	case entities.KindDisease:
		// objects carrying a profile associated with the disease, minus
		// objects that exclude the disease
		excluded := a.db.From("object_disease_exclusions").
			Select("object_id").
			Where(goqu.Ex{"disease_id": entityID})
		ds = a.db.From(goqu.T("object_medical_profiles").As("omp")).
			Join(
				goqu.T("disease_medical_profiles").As("dmp"),
				goqu.On(goqu.Ex{"dmp.medical_profile_id": goqu.I("omp.medical_profile_id")}),
			).
			Select(goqu.L("COUNT(DISTINCT omp.object_id)")).
			Where(
				goqu.Ex{"dmp.disease_id": entityID},
				goqu.I("omp.object_id").NotIn(excluded),
			)
	default:
		return 0, apperrors.NewValidationError(fmt.Sprintf("cannot count objects for entity kind %q", kind))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build object count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count objects", err)
	}

	return count, nil
}

func (a *FacetAdapter) queryIDs(ctx context.Context, query string, args []interface{}) ([]int64, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query object ids", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan object id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating object ids", err)
	}

	return ids, nil
}
