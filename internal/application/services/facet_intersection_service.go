package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
)

// FacetIntersectionService combines per-facet eligible object-ID sets into a
// single restriction. Each constrained facet contributes one set; the result
// is their intersection.
type FacetIntersectionService struct {
	facetRepo repositories.FacetRepository
}

// NewFacetIntersectionService creates a new facet intersection service
func NewFacetIntersectionService(facetRepo repositories.FacetRepository) *FacetIntersectionService {
	return &FacetIntersectionService{facetRepo: facetRepo}
}

// EligibleObjectIDs returns the object IDs satisfying every constrained facet.
// A nil result means no facet was constrained; an empty non-nil result means
// some facet matched nothing, so the search must return zero objects.
//
// Stars and geography are not handled here: they are direct object columns and
// filter in the relational query.
func (s *FacetIntersectionService) EligibleObjectIDs(ctx context.Context, sel entities.FacetSelection) ([]int64, error) {
	// fetchers run in canonical evaluation order: profiles, services,
	// therapies, diseases, moods
	type fetcher struct {
		ids   []int64
		fetch func(context.Context, []int64) ([]int64, error)
	}
	fetchers := []fetcher{
		{sel.MedicalProfiles, s.facetRepo.ObjectIDsWithAllProfiles},
		{sel.Services, s.facetRepo.ObjectIDsWithAllServices},
		{sel.Therapies, s.facetRepo.ObjectIDsWithAllTherapies},
		{sel.Diseases, s.facetRepo.ObjectIDsNotExcludingDiseases},
		{sel.Moods, s.facetRepo.ObjectIDsWithAnyMood},
	}

	sets := make([]*[]int64, len(fetchers))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetchers {
		if f.ids == nil {
			continue
		}
		if len(f.ids) == 0 {
			// requested but matched nothing; no point hitting the store
			return []int64{}, nil
		}
		i, f := i, f
		g.Go(func() error {
			ids, err := f.fetch(gctx, f.ids)
			if err != nil {
				return err
			}
			sets[i] = &ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var result []int64
	for _, set := range sets {
		if set == nil {
			continue
		}
		if result == nil {
			result = append([]int64{}, *set...)
			continue
		}
		result = intersect(result, *set)
		if len(result) == 0 {
			return []int64{}, nil
		}
	}
	return result, nil
}

// intersect keeps the elements of a that also appear in b, preserving the
// order of a
func intersect(a, b []int64) []int64 {
	member := make(map[int64]struct{}, len(b))
	for _, id := range b {
		member[id] = struct{}{}
	}
	out := a[:0]
	for _, id := range a {
		if _, ok := member[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
