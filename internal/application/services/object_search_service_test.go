package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

func newObjectFixture(degraded bool) (*ObjectSearchService, *mockObjectRepo, *mockFacetRepo, *mockDictionaryRepo, *mockSearchIndex) {
	objRepo := new(mockObjectRepo)
	facetRepo := new(mockFacetRepo)
	dictRepo := new(mockDictionaryRepo)
	index := new(mockSearchIndex)
	svc := NewObjectSearchService(objRepo, facetRepo, dictRepo, NewFacetIntersectionService(facetRepo), index, degraded)
	return svc, objRepo, facetRepo, dictRepo, index
}

func baseQuery() *entities.SearchQuery {
	return &entities.SearchQuery{
		Locale:   entities.LocaleRU,
		Page:     1,
		PageSize: 10,
	}
}

func TestObjectSearchValidation(t *testing.T) {
	svc, _, _, _, _ := newObjectFixture(false)

	_, err := svc.Search(context.Background(), &entities.SearchQuery{Locale: "de", Page: 1, PageSize: 10})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnsupportedLocale))

	_, err = svc.Search(context.Background(), &entities.SearchQuery{Locale: entities.LocaleRU, Page: 0, PageSize: 10})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestObjectSearchPlainPagination(t *testing.T) {
	svc, objRepo, _, _, _ := newObjectFixture(false)

	q := baseQuery()
	q.Page = 2
	q.PageSize = 5

	objRepo.On("Count", mock.Anything, mock.MatchedBy(func(oq repositories.ObjectQuery) bool {
		return oq.CandidateIDs == nil && oq.EligibleIDs == nil && oq.Limit == 0
	})).Return(12, nil)
	objRepo.On("Search", mock.Anything, mock.MatchedBy(func(oq repositories.ObjectQuery) bool {
		return oq.Limit == 5 && oq.Offset == 5
	})).Return([]*entities.Object{
		{ID: 6, NameRU: "Шестой", Stars: 4},
		{ID: 7, NameRU: "Седьмой", Stars: 3},
	}, nil)

	page, err := svc.Search(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Шестой", page.Items[0].Name)
	assert.Nil(t, page.Items[0].Score)
}

func TestObjectSearchKeywordScoresAndWindow(t *testing.T) {
	svc, objRepo, _, _, index := newObjectFixture(false)

	q := baseQuery()
	q.Keyword = "spa"
	q.PageSize = 2

	index.On("Search", mock.Anything, entities.KindObject, entities.LocaleRU, "spa").Return(&entities.IndexResult{
		IDs: []int64{1, 2, 3},
		Hits: map[int64]entities.IndexHit{
			1: {Score: 50, Highlights: map[string]string{"name_ru": "<mark>Спа</mark>"}},
			2: {Score: 90},
			3: {Score: 70},
		},
		MaxScore: 90,
	}, nil)
	objRepo.On("Search", mock.Anything, mock.MatchedBy(func(oq repositories.ObjectQuery) bool {
		return len(oq.CandidateIDs) == 3 && oq.Limit == 0
	})).Return([]*entities.Object{
		{ID: 1, NameRU: "Спа один"},
		{ID: 2, NameRU: "Спа два"},
		{ID: 3, NameRU: "Спа три"},
	}, nil)

	page, err := svc.Search(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.InDelta(t, 90, page.MaxScore, 1e-9)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Items[0].ID)
	assert.Equal(t, int64(3), page.Items[1].ID)

	q.Page = 2
	page, err = svc.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Items[0].ID)
	assert.Equal(t, "<mark>Спа</mark>", page.Items[0].HighlightedName)
}

func TestObjectSearchKeywordNoMatches(t *testing.T) {
	svc, objRepo, _, _, index := newObjectFixture(false)

	q := baseQuery()
	q.Keyword = "nothing"

	index.On("Search", mock.Anything, entities.KindObject, entities.LocaleRU, "nothing").Return(&entities.IndexResult{
		IDs:  []int64{},
		Hits: map[int64]entities.IndexHit{},
	}, nil)
	// an empty non-nil candidate set must reach the store as a hard restriction
	objRepo.On("Search", mock.Anything, mock.MatchedBy(func(oq repositories.ObjectQuery) bool {
		return oq.CandidateIDs != nil && len(oq.CandidateIDs) == 0
	})).Return([]*entities.Object{}, nil)

	page, err := svc.Search(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestObjectSearchDegradedFallback(t *testing.T) {
	svc, objRepo, _, _, index := newObjectFixture(true)

	q := baseQuery()
	q.Keyword = "Therme"

	index.On("Search", mock.Anything, entities.KindObject, entities.LocaleRU, "Therme").
		Return(nil, apperrors.NewIndexUnavailableError("down", nil)).Twice()
	objRepo.On("Count", mock.Anything, mock.MatchedBy(func(oq repositories.ObjectQuery) bool {
		return oq.KeywordLike == "therme" && oq.CandidateIDs == nil
	})).Return(1, nil)
	objRepo.On("Search", mock.Anything, mock.MatchedBy(func(oq repositories.ObjectQuery) bool {
		return oq.KeywordLike == "therme"
	})).Return([]*entities.Object{{ID: 9, NameRU: "Терме"}}, nil)

	page, err := svc.Search(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Zero(t, page.MaxScore)
	index.AssertExpectations(t)
}

func TestObjectSearchIndexFailureWithoutDegradedMode(t *testing.T) {
	svc, _, _, _, index := newObjectFixture(false)

	q := baseQuery()
	q.Keyword = "spa"

	index.On("Search", mock.Anything, entities.KindObject, entities.LocaleRU, "spa").
		Return(nil, apperrors.NewIndexUnavailableError("down", nil))

	_, err := svc.Search(context.Background(), q)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeIndexUnavailable))
}

func TestObjectSearchAnchorRanking(t *testing.T) {
	svc, objRepo, _, _, _ := newObjectFixture(false)

	q := baseQuery()
	q.Anchor = &entities.Anchor{
		Alias: "karlovy-vary", Kind: entities.KindCity, EntityID: 42,
		Location: entities.Location{Latitude: 50.2306, Longitude: 12.8702},
	}

	objRepo.On("Search", mock.Anything, mock.MatchedBy(func(oq repositories.ObjectQuery) bool {
		return oq.Limit == 0
	})).Return([]*entities.Object{
		{ID: 1, NameRU: "Далёкий", Location: &entities.Location{Latitude: 55.75, Longitude: 37.61}},
		{ID: 2, NameRU: "Близкий", Location: &entities.Location{Latitude: 50.23, Longitude: 12.88}},
		{ID: 3, NameRU: "Без координат", Location: nil},
	}, nil)

	page, err := svc.Search(context.Background(), q)

	require.NoError(t, err)
	// the row without coordinates is dropped, the rest ordered by distance
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Items[0].ID)
	assert.Equal(t, int64(1), page.Items[1].ID)
	require.NotNil(t, page.Items[0].DistanceMeters)
	assert.Less(t, *page.Items[0].DistanceMeters, *page.Items[1].DistanceMeters)
}

func TestObjectSearchFacetRestriction(t *testing.T) {
	svc, objRepo, facetRepo, _, _ := newObjectFixture(false)

	q := baseQuery()
	q.Selection.MedicalProfiles = []int64{7}

	facetRepo.On("ObjectIDsWithAllProfiles", mock.Anything, []int64{7}).Return([]int64{10, 11}, nil)
	objRepo.On("Count", mock.Anything, mock.MatchedBy(func(oq repositories.ObjectQuery) bool {
		return assert.ObjectsAreEqual([]int64{10, 11}, oq.EligibleIDs)
	})).Return(2, nil)
	objRepo.On("Search", mock.Anything, mock.Anything).Return([]*entities.Object{
		{ID: 10, NameRU: "Десятый"},
		{ID: 11, NameRU: "Одиннадцатый"},
	}, nil)

	page, err := svc.Search(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestBuildFilterDataKeepsPickedMood(t *testing.T) {
	svc, _, facetRepo, dictRepo, _ := newObjectFixture(false)

	eligible := []int64{1, 2}
	facetRepo.On("AvailableStars", mock.Anything, eligible).Return([]int{3, 4}, nil)
	facetRepo.On("AvailableMoodIDs", mock.Anything, eligible).Return([]int64{1}, nil)
	dictRepo.On("MoodsByIDs", mock.Anything, []int64{1, 5}).Return([]*entities.Mood{
		{ID: 1, Alias: "family"},
		{ID: 5, Alias: "active"},
	}, nil)

	state := &entities.ResolvedFilterState{
		MoodPicked: true,
		Selection:  entities.FacetSelection{Moods: []int64{5}},
	}
	data, err := svc.BuildFilterData(context.Background(), eligible, state)

	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, data.AvailableStars)
	require.Len(t, data.Moods, 2)
}
