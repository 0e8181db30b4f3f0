package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kurortly/search-backend/internal/domain/entities"
)

func TestEligibleObjectIDsUnconstrained(t *testing.T) {
	facetRepo := new(mockFacetRepo)
	svc := NewFacetIntersectionService(facetRepo)

	ids, err := svc.EligibleObjectIDs(context.Background(), entities.FacetSelection{})

	require.NoError(t, err)
	assert.Nil(t, ids)
	facetRepo.AssertNotCalled(t, "ObjectIDsWithAllProfiles", mock.Anything, mock.Anything)
}

func TestEligibleObjectIDsSingleFacet(t *testing.T) {
	facetRepo := new(mockFacetRepo)
	svc := NewFacetIntersectionService(facetRepo)

	facetRepo.On("ObjectIDsWithAllProfiles", mock.Anything, []int64{7}).Return([]int64{3, 1, 8}, nil)

	ids, err := svc.EligibleObjectIDs(context.Background(), entities.FacetSelection{
		MedicalProfiles: []int64{7},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 8}, ids)
}

func TestEligibleObjectIDsIntersectsInOrder(t *testing.T) {
	facetRepo := new(mockFacetRepo)
	svc := NewFacetIntersectionService(facetRepo)

	facetRepo.On("ObjectIDsWithAllProfiles", mock.Anything, []int64{7}).Return([]int64{5, 3, 1, 8}, nil)
	facetRepo.On("ObjectIDsWithAnyMood", mock.Anything, []int64{2}).Return([]int64{8, 3, 9}, nil)

	ids, err := svc.EligibleObjectIDs(context.Background(), entities.FacetSelection{
		MedicalProfiles: []int64{7},
		Moods:           []int64{2},
	})

	require.NoError(t, err)
	// order of the first constrained facet is preserved
	assert.Equal(t, []int64{3, 8}, ids)
}

func TestEligibleObjectIDsRequestedButEmptySelection(t *testing.T) {
	facetRepo := new(mockFacetRepo)
	svc := NewFacetIntersectionService(facetRepo)

	ids, err := svc.EligibleObjectIDs(context.Background(), entities.FacetSelection{
		Therapies: []int64{},
	})

	require.NoError(t, err)
	require.NotNil(t, ids)
	assert.Empty(t, ids)
	facetRepo.AssertNotCalled(t, "ObjectIDsWithAllTherapies", mock.Anything, mock.Anything)
}

func TestEligibleObjectIDsEmptyIntersection(t *testing.T) {
	facetRepo := new(mockFacetRepo)
	svc := NewFacetIntersectionService(facetRepo)

	facetRepo.On("ObjectIDsWithAllServices", mock.Anything, []int64{4}).Return([]int64{1, 2}, nil)
	facetRepo.On("ObjectIDsNotExcludingDiseases", mock.Anything, []int64{11}).Return([]int64{3, 4}, nil)

	ids, err := svc.EligibleObjectIDs(context.Background(), entities.FacetSelection{
		Services: []int64{4},
		Diseases: []int64{11},
	})

	require.NoError(t, err)
	require.NotNil(t, ids)
	assert.Empty(t, ids)
}
