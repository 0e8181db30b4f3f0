package services

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
)

// GeoSearchService searches countries, regions and cities under the common
// entity-search contract
type GeoSearchService struct {
	geoRepo   repositories.GeoRepository
	facetRepo repositories.FacetRepository
	index     indexQuerier
}

// NewGeoSearchService creates a new geography search service
func NewGeoSearchService(
	geoRepo repositories.GeoRepository,
	facetRepo repositories.FacetRepository,
	index repositories.SearchIndex,
	degraded bool,
) *GeoSearchService {
	return &GeoSearchService{
		geoRepo:   geoRepo,
		facetRepo: facetRepo,
		index:     indexQuerier{index: index, degraded: degraded},
	}
}

// SearchCountries searches the country directory
func (s *GeoSearchService) SearchCountries(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error) {
	return s.search(ctx, q, entities.KindCountry,
		s.geoRepo.CountCountries,
		func(ctx context.Context, gq repositories.GeoQuery) ([]*entities.Candidate, error) {
			countries, err := s.geoRepo.SearchCountries(ctx, gq)
			if err != nil {
				return nil, err
			}
			items := make([]*entities.Candidate, 0, len(countries))
			for _, c := range countries {
				items = append(items, &entities.Candidate{
					ID:       c.ID,
					Kind:     entities.KindCountry,
					Alias:    c.Alias,
					Name:     localized(q.Locale, c.NameRU, c.NameEN),
					Location: c.Location,
				})
			}
			return items, nil
		})
}

// SearchRegions searches the region directory
func (s *GeoSearchService) SearchRegions(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error) {
	return s.search(ctx, q, entities.KindRegion,
		s.geoRepo.CountRegions,
		func(ctx context.Context, gq repositories.GeoQuery) ([]*entities.Candidate, error) {
			regions, err := s.geoRepo.SearchRegions(ctx, gq)
			if err != nil {
				return nil, err
			}
			items := make([]*entities.Candidate, 0, len(regions))
			for _, r := range regions {
				items = append(items, &entities.Candidate{
					ID:       r.ID,
					Kind:     entities.KindRegion,
					Alias:    r.Alias,
					Name:     localized(q.Locale, r.NameRU, r.NameEN),
					Location: r.Location,
				})
			}
			return items, nil
		})
}

// SearchCities searches the city directory
func (s *GeoSearchService) SearchCities(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error) {
	return s.search(ctx, q, entities.KindCity,
		s.geoRepo.CountCities,
		func(ctx context.Context, gq repositories.GeoQuery) ([]*entities.Candidate, error) {
			cities, err := s.geoRepo.SearchCities(ctx, gq)
			if err != nil {
				return nil, err
			}
			items := make([]*entities.Candidate, 0, len(cities))
			for _, c := range cities {
				items = append(items, &entities.Candidate{
					ID:       c.ID,
					Kind:     entities.KindCity,
					Alias:    c.Alias,
					Name:     localized(q.Locale, c.NameRU, c.NameEN),
					Location: c.Location,
				})
			}
			return items, nil
		})
}

func (s *GeoSearchService) search(
	ctx context.Context,
	q *entities.SearchQuery,
	kind entities.EntityKind,
	count func(context.Context, repositories.GeoQuery) (int, error),
	fetch func(context.Context, repositories.GeoQuery) ([]*entities.Candidate, error),
) (*entities.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.index.plan(ctx, kind, q.Locale, q.Keyword)
	if err != nil {
		return nil, err
	}

	gq := repositories.GeoQuery{
		CandidateIDs: plan.candidateIDs(),
		KeywordLike:  plan.like,
	}

	page := &entities.Page{
		Page:     q.Page,
		PageSize: q.PageSize,
		MaxScore: plan.maxScore(),
	}

	if plan.inMemory() {
		items, fetchErr := fetch(ctx, gq)
		if fetchErr != nil {
			return nil, fetchErr
		}
		attachHits(items, plan, q.Locale.Projection())
		sortByScore(items)
		page.Total = len(items)
		page.Items = window(items, q.Page, q.PageSize)
	} else {
		total, countErr := count(ctx, gq)
		if countErr != nil {
			return nil, countErr
		}
		gq.Limit = q.PageSize
		gq.Offset = (q.Page - 1) * q.PageSize
		items, fetchErr := fetch(ctx, gq)
		if fetchErr != nil {
			return nil, fetchErr
		}
		page.Total = total
		page.Items = items
	}

	if q.Extended {
		if err := s.enrichObjectCounts(ctx, kind, page.Items); err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (s *GeoSearchService) enrichObjectCounts(ctx context.Context, kind entities.EntityKind, items []*entities.Candidate) error {
	for _, c := range items {
		n, err := s.facetRepo.CountObjects(ctx, kind, c.ID)
		if err != nil {
			return err
		}
		c.ObjectCount = n
	}
	return nil
}
