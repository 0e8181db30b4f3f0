package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

func idRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"object_id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}

func TestObjectIDsWithAllProfiles(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	// two selected profiles: only objects carrying both qualify
	mock.ExpectQuery(`SELECT "object_id" FROM "object_medical_profiles" WHERE .+"medical_profile_id" IN .1, 2.+ GROUP BY "object_id" HAVING .COUNT.DISTINCT medical_profile_id. = 2`).
		WillReturnRows(idRows(3, 8))

	ids, err := adapter.ObjectIDsWithAllProfiles(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 8}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectIDsWithAllTherapiesEmptySelection(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	ids, err := adapter.ObjectIDsWithAllTherapies(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectIDsWithAnyMood(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`SELECT DISTINCT "object_id" FROM "object_moods" WHERE .+"mood_id" IN .4, 5.`).
		WillReturnRows(idRows(12, 13, 14))

	ids, err := adapter.ObjectIDsWithAnyMood(context.Background(), []int64{4, 5})
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 13, 14}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectIDsNotExcludingDiseases(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`SELECT "id" FROM "objects" WHERE .+"id" NOT IN .SELECT "object_id" FROM "object_disease_exclusions" WHERE .+"disease_id" IN .9.`).
		WillReturnRows(idRows(1, 2, 6))

	ids, err := adapter.ObjectIDsNotExcludingDiseases(context.Background(), []int64{9})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 6}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableStarsUnrestricted(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`SELECT DISTINCT "stars" FROM "objects" WHERE .+"stars" > 0.+ ORDER BY "stars" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"stars"}).AddRow(3).AddRow(4).AddRow(5))

	stars, err := adapter.AvailableStars(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5}, stars)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableStarsRestricted(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`SELECT DISTINCT "stars" FROM "objects" WHERE .+"id" IN .10, 11.`).
		WillReturnRows(sqlmock.NewRows([]string{"stars"}).AddRow(4))

	stars, err := adapter.AvailableStars(context.Background(), []int64{10, 11})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, stars)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableStarsEmptyEligibleSet(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	// a non-nil empty eligible set matched nothing; an IN () query would be
	// a syntax error, so the database must not be touched
	stars, err := adapter.AvailableStars(context.Background(), []int64{})
	require.NoError(t, err)
	assert.Empty(t, stars)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableMoodIDsEmptyEligibleSet(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	ids, err := adapter.AvailableMoodIDs(context.Background(), []int64{})
	require.NoError(t, err)
	assert.Empty(t, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableMoodIDs(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`SELECT DISTINCT "mood_id" FROM "object_moods" WHERE .+"object_id" IN .7.`).
		WillReturnRows(idRows(2, 5))

	ids, err := adapter.AvailableMoodIDs(context.Background(), []int64{7})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountObjectsByCity(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`SELECT COUNT.+ FROM "objects" WHERE .+"city_id" = 7`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := adapter.CountObjects(context.Background(), entities.KindCity, 7)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountObjectsByDisease(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	// profile association joined against the disease map, minus explicit
	// per-object exclusions
	mock.ExpectQuery(`SELECT COUNT.DISTINCT omp.object_id. FROM "object_medical_profiles" AS "omp" INNER JOIN "disease_medical_profiles" AS "dmp"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := adapter.CountObjects(context.Background(), entities.KindDisease, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountObjectsUnsupportedKind(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewFacetAdapter(postgres.NewClientWithDB(db))

	_, err := adapter.CountObjects(context.Background(), entities.KindMood, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	assert.NoError(t, mock.ExpectationsWereMet())
}
