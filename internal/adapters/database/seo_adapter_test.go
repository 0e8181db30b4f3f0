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

var seoAliasColumns = []string{"alias", "entity_kind", "entity_id", "sort_order"}

func TestAliasByName(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewSeoAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`FROM "seo_aliases" WHERE .+"alias" = 'cardiology'`).
		WillReturnRows(sqlmock.NewRows(seoAliasColumns).AddRow("cardiology", "medical_profile", 4, 10))

	alias, err := adapter.AliasByName(context.Background(), "cardiology")
	require.NoError(t, err)
	assert.Equal(t, entities.KindMedicalProfile, alias.EntityKind)
	assert.Equal(t, int64(4), alias.EntityID)
	require.NotNil(t, alias.SortOrder)
	assert.Equal(t, 10, *alias.SortOrder)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasByNameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewSeoAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`FROM "seo_aliases"`).WillReturnRows(sqlmock.NewRows(seoAliasColumns))

	_, err := adapter.AliasByName(context.Background(), "atlantis")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasesByNamesPreservesInputOrder(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewSeoAdapter(postgres.NewClientWithDB(db))

	// rows arrive in storage order; the adapter re-sorts by the requested
	// alias order and keeps NULL sort_order as nil
	mock.ExpectQuery(`FROM "seo_aliases" WHERE .+"alias" IN .'karlovy-vary', 'cardiology'.`).
		WillReturnRows(sqlmock.NewRows(seoAliasColumns).
			AddRow("cardiology", "medical_profile", 4, 10).
			AddRow("karlovy-vary", "city", 17, nil))

	aliases, err := adapter.AliasesByNames(context.Background(), []string{"karlovy-vary", "cardiology"})
	require.NoError(t, err)
	require.Len(t, aliases, 2)

	assert.Equal(t, "karlovy-vary", aliases[0].Alias)
	assert.Nil(t, aliases[0].SortOrder)
	assert.Equal(t, "cardiology", aliases[1].Alias)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasesByNamesOmitsUnknown(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewSeoAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`FROM "seo_aliases"`).
		WillReturnRows(sqlmock.NewRows(seoAliasColumns).AddRow("prague", "city", 1, 1))

	aliases, err := adapter.AliasesByNames(context.Background(), []string{"prague", "no-such-alias"})
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "prague", aliases[0].Alias)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateByFacetSelectsLocaleColumns(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewSeoAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`SELECT "id", "facet_kind", "title_en", "meta_description_en", "body_en" FROM "seo_templates" WHERE .+"facet_kind" = 'stars'`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "facet_kind", "title_en", "meta_description_en", "body_en"}).
			AddRow(1, "stars", "Hotels by stars", "Browse by category", nil))

	tpl, err := adapter.TemplateByFacet(context.Background(), entities.FacetStars, entities.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, "Hotels by stars", tpl.Title)
	assert.Empty(t, tpl.Body)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateByFacetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewSeoAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`FROM "seo_templates"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "facet_kind", "title_ru", "meta_description_ru", "body_ru"}))

	_, err := adapter.TemplateByFacet(context.Background(), entities.FacetDiscount, entities.LocaleRU)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomPageByURL(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewSeoAdapter(postgres.NewClientWithDB(db))

	mock.ExpectQuery(`FROM "seo_custom_pages" WHERE .+"url" = '/objects/filter/discount'`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "title_ru", "meta_description_ru", "body_ru"}).
			AddRow(3, "/objects/filter/discount", "Горящие туры", "Скидки на лечение", "<p>Акции</p>"))

	page, err := adapter.CustomPageByURL(context.Background(), "/objects/filter/discount", entities.LocaleRU)
	require.NoError(t, err)
	assert.Equal(t, "Горящие туры", page.Title)
	assert.Equal(t, "<p>Акции</p>", page.Body)

	assert.NoError(t, mock.ExpectationsWereMet())
}
