package services

import (
	"context"
	"sort"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	"github.com/kurortly/search-backend/pkg/geo"
)

// ObjectSearchService searches the object catalog: facet restriction, keyword
// candidates from the index, anchor-distance ranking and pagination.
type ObjectSearchService struct {
	objRepo      repositories.ObjectRepository
	facetRepo    repositories.FacetRepository
	dictRepo     repositories.DictionaryRepository
	intersection *FacetIntersectionService
	index        indexQuerier
}

// NewObjectSearchService creates a new object search service
func NewObjectSearchService(
	objRepo repositories.ObjectRepository,
	facetRepo repositories.FacetRepository,
	dictRepo repositories.DictionaryRepository,
	intersection *FacetIntersectionService,
	index repositories.SearchIndex,
	degraded bool,
) *ObjectSearchService {
	return &ObjectSearchService{
		objRepo:      objRepo,
		facetRepo:    facetRepo,
		dictRepo:     dictRepo,
		intersection: intersection,
		index:        indexQuerier{index: index, degraded: degraded},
	}
}

// Search runs one object search. Three execution modes:
//
//   - anchor: fetch the full eligible set, rank by distance to the anchor,
//     paginate in memory (an explicit SortBy overrides distance ordering)
//   - keyword with index scores: fetch the full candidate-restricted set,
//     re-sort by score, paginate in memory
//   - plain: count + LIMIT/OFFSET in the store
func (s *ObjectSearchService) Search(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	eligible, err := s.intersection.EligibleObjectIDs(ctx, q.Selection)
	if err != nil {
		return nil, err
	}
	return s.SearchEligible(ctx, q, eligible)
}

// SearchEligible runs one object search against a precomputed eligible set,
// so filter pages can reuse one facet intersection for both the page and the
// availability data
func (s *ObjectSearchService) SearchEligible(ctx context.Context, q *entities.SearchQuery, eligible []int64) (*entities.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.index.plan(ctx, entities.KindObject, q.Locale, q.Keyword)
	if err != nil {
		return nil, err
	}

	oq := repositories.ObjectQuery{
		CandidateIDs: plan.candidateIDs(),
		EligibleIDs:  eligible,
		Stars:        q.Selection.Stars,
		Discount:     q.Discount,
		OnMainPage:   q.OnMainPage,
		CountryIDs:   q.Selection.CountryIDs,
		RegionIDs:    q.Selection.RegionIDs,
		CityIDs:      q.Selection.CityIDs,
		KeywordLike:  plan.like,
	}

	page := &entities.Page{
		Page:     q.Page,
		PageSize: q.PageSize,
		MaxScore: plan.maxScore(),
	}

	switch {
	case q.Anchor != nil:
		objects, searchErr := s.objRepo.Search(ctx, oq)
		if searchErr != nil {
			return nil, searchErr
		}
		items := s.candidates(objects, q, plan)
		items = rankByAnchor(items, q.Anchor, q.SortBy)
		page.Total = len(items)
		page.Items = window(items, q.Page, q.PageSize)

	case plan.inMemory():
		objects, searchErr := s.objRepo.Search(ctx, oq)
		if searchErr != nil {
			return nil, searchErr
		}
		items := s.candidates(objects, q, plan)
		sortByScore(items)
		page.Total = len(items)
		page.Items = window(items, q.Page, q.PageSize)

	default:
		total, countErr := s.objRepo.Count(ctx, oq)
		if countErr != nil {
			return nil, countErr
		}
		oq.Limit = q.PageSize
		oq.Offset = (q.Page - 1) * q.PageSize
		objects, searchErr := s.objRepo.Search(ctx, oq)
		if searchErr != nil {
			return nil, searchErr
		}
		page.Total = total
		page.Items = s.candidates(objects, q, plan)
	}

	return page, nil
}

// EligibleObjectIDs exposes the facet restriction for callers that need the
// set alongside the page (filter-URL responses)
func (s *ObjectSearchService) EligibleObjectIDs(ctx context.Context, sel entities.FacetSelection) ([]int64, error) {
	return s.intersection.EligibleObjectIDs(ctx, sel)
}

// BuildFilterData derives facet availability for the current eligible set.
// A picked mood stays in the list even when availability pruning would drop
// it, so the client can always echo the active filter.
func (s *ObjectSearchService) BuildFilterData(ctx context.Context, eligible []int64, state *entities.ResolvedFilterState) (*entities.FilterData, error) {
	stars, err := s.facetRepo.AvailableStars(ctx, eligible)
	if err != nil {
		return nil, err
	}

	moodIDs, err := s.facetRepo.AvailableMoodIDs(ctx, eligible)
	if err != nil {
		return nil, err
	}
	if state != nil && state.MoodPicked {
		moodIDs = unionIDs(moodIDs, state.Selection.Moods)
	}

	moods := []*entities.Mood{}
	if len(moodIDs) > 0 {
		moods, err = s.dictRepo.MoodsByIDs(ctx, moodIDs)
		if err != nil {
			return nil, err
		}
	}

	return &entities.FilterData{
		AvailableStars: stars,
		Moods:          moods,
	}, nil
}

func (s *ObjectSearchService) candidates(objects []*entities.Object, q *entities.SearchQuery, plan keywordPlan) []*entities.Candidate {
	proj := q.Locale.Projection()
	items := make([]*entities.Candidate, 0, len(objects))
	for _, o := range objects {
		c := &entities.Candidate{
			ID:       o.ID,
			Kind:     entities.KindObject,
			Alias:    o.Alias,
			Name:     o.Name(q.Locale),
			Stars:    o.Stars,
			Rating:   o.Rating,
			Location: o.Location,
		}
		if hit, ok := plan.hit(o.ID); ok {
			c.Score = scorePtr(hit, ok)
			c.HighlightedName = hit.Highlights[proj.Name]
			c.HighlightedDescription = hit.Highlights[proj.Description]
		}
		if q.Extended {
			c.Description = o.Description(q.Locale)
		}
		items = append(items, c)
	}
	return items
}

// rankByAnchor computes distances from the anchor and orders ascending.
// Candidates without coordinates cannot be ranked and are dropped. An
// explicit sort key takes precedence over distance ordering.
func rankByAnchor(items []*entities.Candidate, anchor *entities.Anchor, sortBy string) []*entities.Candidate {
	ranked := make([]*entities.Candidate, 0, len(items))
	for _, c := range items {
		if c.Location == nil {
			continue
		}
		d := geo.DistanceMeters(
			anchor.Location.Latitude, anchor.Location.Longitude,
			c.Location.Latitude, c.Location.Longitude,
		)
		c.DistanceMeters = &d
		ranked = append(ranked, c)
	}

	switch sortBy {
	case "rating":
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Rating != ranked[j].Rating {
				return ranked[i].Rating > ranked[j].Rating
			}
			return ranked[i].ID < ranked[j].ID
		})
	case "name":
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Name != ranked[j].Name {
				return ranked[i].Name < ranked[j].Name
			}
			return ranked[i].ID < ranked[j].ID
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			if *ranked[i].DistanceMeters != *ranked[j].DistanceMeters {
				return *ranked[i].DistanceMeters < *ranked[j].DistanceMeters
			}
			return ranked[i].ID < ranked[j].ID
		})
	}
	return ranked
}

func unionIDs(base, extra []int64) []int64 {
	seen := make(map[int64]struct{}, len(base))
	for _, id := range base {
		seen[id] = struct{}{}
	}
	for _, id := range extra {
		if _, ok := seen[id]; !ok {
			base = append(base, id)
			seen[id] = struct{}{}
		}
	}
	return base
}
