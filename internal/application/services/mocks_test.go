package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
)

type mockSearchIndex struct {
	mock.Mock
}

func (m *mockSearchIndex) Search(ctx context.Context, kind entities.EntityKind, locale entities.Locale, keyword string) (*entities.IndexResult, error) {
	args := m.Called(ctx, kind, locale, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IndexResult), args.Error(1)
}

func (m *mockSearchIndex) IndexDocument(ctx context.Context, kind entities.EntityKind, document map[string]interface{}) error {
	return m.Called(ctx, kind, document).Error(0)
}

func (m *mockSearchIndex) DeleteDocument(ctx context.Context, kind entities.EntityKind, id int64) error {
	return m.Called(ctx, kind, id).Error(0)
}

type mockObjectRepo struct {
	mock.Mock
}

func (m *mockObjectRepo) Search(ctx context.Context, q repositories.ObjectQuery) ([]*entities.Object, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Object), args.Error(1)
}

func (m *mockObjectRepo) Count(ctx context.Context, q repositories.ObjectQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockObjectRepo) GetByID(ctx context.Context, id int64) (*entities.Object, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Object), args.Error(1)
}

type mockFacetRepo struct {
	mock.Mock
}

func (m *mockFacetRepo) idsCall(args mock.Arguments) ([]int64, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockFacetRepo) ObjectIDsWithAllProfiles(ctx context.Context, ids []int64) ([]int64, error) {
	return m.idsCall(m.Called(ctx, ids))
}

func (m *mockFacetRepo) ObjectIDsWithAllTherapies(ctx context.Context, ids []int64) ([]int64, error) {
	return m.idsCall(m.Called(ctx, ids))
}

func (m *mockFacetRepo) ObjectIDsWithAllServices(ctx context.Context, ids []int64) ([]int64, error) {
	return m.idsCall(m.Called(ctx, ids))
}

func (m *mockFacetRepo) ObjectIDsWithAnyMood(ctx context.Context, ids []int64) ([]int64, error) {
	return m.idsCall(m.Called(ctx, ids))
}

func (m *mockFacetRepo) ObjectIDsNotExcludingDiseases(ctx context.Context, ids []int64) ([]int64, error) {
	return m.idsCall(m.Called(ctx, ids))
}

func (m *mockFacetRepo) AvailableStars(ctx context.Context, objectIDs []int64) ([]int, error) {
	args := m.Called(ctx, objectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockFacetRepo) AvailableMoodIDs(ctx context.Context, objectIDs []int64) ([]int64, error) {
	return m.idsCall(m.Called(ctx, objectIDs))
}

func (m *mockFacetRepo) CountObjects(ctx context.Context, kind entities.EntityKind, entityID int64) (int, error) {
	args := m.Called(ctx, kind, entityID)
	return args.Int(0), args.Error(1)
}

type mockDictionaryRepo struct {
	mock.Mock
}

func (m *mockDictionaryRepo) SearchProfiles(ctx context.Context, q repositories.DictionaryQuery) ([]*entities.MedicalProfile, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MedicalProfile), args.Error(1)
}

func (m *mockDictionaryRepo) CountProfiles(ctx context.Context, q repositories.DictionaryQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockDictionaryRepo) SearchDiseases(ctx context.Context, q repositories.DictionaryQuery) ([]*entities.Disease, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Disease), args.Error(1)
}

func (m *mockDictionaryRepo) CountDiseases(ctx context.Context, q repositories.DictionaryQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockDictionaryRepo) SearchTherapies(ctx context.Context, q repositories.DictionaryQuery) ([]*entities.Therapy, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Therapy), args.Error(1)
}

func (m *mockDictionaryRepo) CountTherapies(ctx context.Context, q repositories.DictionaryQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockDictionaryRepo) idsCall(args mock.Arguments) ([]int64, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockDictionaryRepo) ProfileIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return m.idsCall(m.Called(ctx, aliases))
}

func (m *mockDictionaryRepo) TherapyIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return m.idsCall(m.Called(ctx, aliases))
}

func (m *mockDictionaryRepo) DiseaseIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return m.idsCall(m.Called(ctx, aliases))
}

func (m *mockDictionaryRepo) ServiceIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return m.idsCall(m.Called(ctx, aliases))
}

func (m *mockDictionaryRepo) MoodIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return m.idsCall(m.Called(ctx, aliases))
}

func (m *mockDictionaryRepo) MoodsByIDs(ctx context.Context, ids []int64) ([]*entities.Mood, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Mood), args.Error(1)
}

type mockGeoRepo struct {
	mock.Mock
}

func (m *mockGeoRepo) SearchCountries(ctx context.Context, q repositories.GeoQuery) ([]*entities.Country, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Country), args.Error(1)
}

func (m *mockGeoRepo) CountCountries(ctx context.Context, q repositories.GeoQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockGeoRepo) SearchRegions(ctx context.Context, q repositories.GeoQuery) ([]*entities.Region, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Region), args.Error(1)
}

func (m *mockGeoRepo) CountRegions(ctx context.Context, q repositories.GeoQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockGeoRepo) SearchCities(ctx context.Context, q repositories.GeoQuery) ([]*entities.City, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.City), args.Error(1)
}

func (m *mockGeoRepo) CountCities(ctx context.Context, q repositories.GeoQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockGeoRepo) CountryByID(ctx context.Context, id int64) (*entities.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Country), args.Error(1)
}

func (m *mockGeoRepo) RegionByID(ctx context.Context, id int64) (*entities.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Region), args.Error(1)
}

func (m *mockGeoRepo) CityByID(ctx context.Context, id int64) (*entities.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.City), args.Error(1)
}

func (m *mockGeoRepo) idsCall(args mock.Arguments) ([]int64, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockGeoRepo) CountryIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return m.idsCall(m.Called(ctx, aliases))
}

func (m *mockGeoRepo) RegionIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return m.idsCall(m.Called(ctx, aliases))
}

func (m *mockGeoRepo) CityIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return m.idsCall(m.Called(ctx, aliases))
}

type mockSeoRepo struct {
	mock.Mock
}

func (m *mockSeoRepo) AliasByName(ctx context.Context, alias string) (*entities.SeoAlias, error) {
	args := m.Called(ctx, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SeoAlias), args.Error(1)
}

func (m *mockSeoRepo) AliasesByNames(ctx context.Context, aliases []string) ([]*entities.SeoAlias, error) {
	args := m.Called(ctx, aliases)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SeoAlias), args.Error(1)
}

func (m *mockSeoRepo) TemplateByFacet(ctx context.Context, kind entities.FacetKind, locale entities.Locale) (*entities.SeoTemplate, error) {
	args := m.Called(ctx, kind, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SeoTemplate), args.Error(1)
}

func (m *mockSeoRepo) CustomPageByURL(ctx context.Context, url string, locale entities.Locale) (*entities.SeoCustomPage, error) {
	args := m.Called(ctx, url, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SeoCustomPage), args.Error(1)
}

func intPtr(v int) *int { return &v }
