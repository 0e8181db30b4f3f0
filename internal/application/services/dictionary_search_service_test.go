package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
)

func newDictFixture() (*DictionarySearchService, *mockDictionaryRepo, *mockFacetRepo, *mockSearchIndex) {
	dictRepo := new(mockDictionaryRepo)
	facetRepo := new(mockFacetRepo)
	index := new(mockSearchIndex)
	svc := NewDictionarySearchService(dictRepo, facetRepo, index, false)
	return svc, dictRepo, facetRepo, index
}

func TestDictionarySearchProfilesByKeyword(t *testing.T) {
	svc, dictRepo, _, index := newDictFixture()

	index.On("Search", mock.Anything, entities.KindMedicalProfile, entities.LocaleRU, "кардио").Return(&entities.IndexResult{
		IDs:      []int64{7},
		Hits:     map[int64]entities.IndexHit{7: {Score: 60}},
		MaxScore: 60,
	}, nil)
	dictRepo.On("SearchProfiles", mock.Anything, mock.MatchedBy(func(dq repositories.DictionaryQuery) bool {
		return len(dq.CandidateIDs) == 1
	})).Return([]*entities.MedicalProfile{
		{ID: 7, Alias: "cardiology", NameRU: "Кардиология", DescriptionRU: "Лечение сердца"},
	}, nil)

	q := &entities.SearchQuery{Locale: entities.LocaleRU, Page: 1, PageSize: 10, Keyword: "кардио"}
	page, err := svc.SearchProfiles(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Кардиология", page.Items[0].Name)
	// descriptions only ship in extended mode
	assert.Empty(t, page.Items[0].Description)
}

func TestDictionarySearchExtendedMode(t *testing.T) {
	svc, dictRepo, facetRepo, _ := newDictFixture()

	dictRepo.On("CountDiseases", mock.Anything, mock.Anything).Return(1, nil)
	dictRepo.On("SearchDiseases", mock.Anything, mock.Anything).Return([]*entities.Disease{
		{ID: 4, Alias: "arthritis", NameEN: "Arthritis", DescriptionEN: "Joint inflammation"},
	}, nil)
	facetRepo.On("CountObjects", mock.Anything, entities.KindDisease, int64(4)).Return(12, nil)

	q := &entities.SearchQuery{Locale: entities.LocaleEN, Page: 1, PageSize: 10, Extended: true}
	page, err := svc.SearchDiseases(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Joint inflammation", page.Items[0].Description)
	assert.Equal(t, 12, page.Items[0].ObjectCount)
}

func TestDictionarySearchTherapiesPlainPaging(t *testing.T) {
	svc, dictRepo, _, _ := newDictFixture()

	dictRepo.On("CountTherapies", mock.Anything, mock.Anything).Return(25, nil)
	dictRepo.On("SearchTherapies", mock.Anything, mock.MatchedBy(func(dq repositories.DictionaryQuery) bool {
		return dq.Limit == 10 && dq.Offset == 20
	})).Return([]*entities.Therapy{
		{ID: 21, Alias: "mud-baths", NameRU: "Грязевые ванны"},
	}, nil)

	q := &entities.SearchQuery{Locale: entities.LocaleRU, Page: 3, PageSize: 10}
	page, err := svc.SearchTherapies(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	require.Len(t, page.Items, 1)
}
