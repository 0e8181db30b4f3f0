package services

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/infrastructure/observability"
)

// FilterSearchService serves filter-URL pages: it resolves the path into a
// filter state, runs the restricted object search, derives facet availability
// and attaches SEO content.
type FilterSearchService struct {
	resolver *FilterResolverService
	objects  *ObjectSearchService
	seo      *SeoTemplateService
}

// NewFilterSearchService creates a new filter search service
func NewFilterSearchService(
	resolver *FilterResolverService,
	objects *ObjectSearchService,
	seo *SeoTemplateService,
) *FilterSearchService {
	return &FilterSearchService{
		resolver: resolver,
		objects:  objects,
		seo:      seo,
	}
}

// Search resolves path and runs the object search it describes
func (s *FilterSearchService) Search(ctx context.Context, path string, q *entities.SearchQuery) (*entities.SearchResponse, error) {
	logger := observability.LoggerFromContext(ctx)

	state, err := s.resolver.Resolve(ctx, path, q.OnMainPage)
	if err != nil {
		return nil, err
	}
	if state != nil {
		q.Selection = mergeSelection(q.Selection, state.Selection)
		q.Discount = q.Discount || state.Discount
		q.Anchor = state.Anchor
	}

	// one facet intersection serves both the page and the availability data
	eligible, err := s.objects.EligibleObjectIDs(ctx, q.Selection)
	if err != nil {
		return nil, err
	}

	page, err := s.objects.SearchEligible(ctx, q, eligible)
	if err != nil {
		return nil, err
	}

	filterData, err := s.objects.BuildFilterData(ctx, eligible, state)
	if err != nil {
		return nil, err
	}

	templates, custom, err := s.seo.Select(ctx, path, q.Locale, state)
	if err != nil {
		// SEO content is decoration; a broken lookup must not fail the page
		logger.Warn().Err(err).Str("path", path).Msg("seo selection failed")
		templates, custom = nil, nil
	}

	resp := &entities.SearchResponse{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		Items:      page.Items,
		MaxScore:   page.MaxScore,
		FilterData: filterData,
		Templates:  templates,
		CustomSeo:  custom,
	}
	if state != nil {
		resp.FilterResponse = filterEcho(state)
	}
	return resp, nil
}

// mergeSelection overlays the path-derived facets onto the query facets; the
// path wins where both constrain the same facet
func mergeSelection(base, overlay entities.FacetSelection) entities.FacetSelection {
	if overlay.MedicalProfiles != nil {
		base.MedicalProfiles = overlay.MedicalProfiles
	}
	if overlay.Therapies != nil {
		base.Therapies = overlay.Therapies
	}
	if overlay.Diseases != nil {
		base.Diseases = overlay.Diseases
	}
	if overlay.Services != nil {
		base.Services = overlay.Services
	}
	if overlay.Moods != nil {
		base.Moods = overlay.Moods
	}
	if len(overlay.Stars) > 0 {
		base.Stars = overlay.Stars
	}
	if overlay.CountryIDs != nil {
		base.CountryIDs = overlay.CountryIDs
	}
	if overlay.RegionIDs != nil {
		base.RegionIDs = overlay.RegionIDs
	}
	if overlay.CityIDs != nil {
		base.CityIDs = overlay.CityIDs
	}
	return base
}

func filterEcho(state *entities.ResolvedFilterState) *entities.FilterResponse {
	echo := &entities.FilterResponse{
		Aliases:  state.Aliases,
		Stars:    state.Selection.Stars,
		Moods:    state.MoodAliases,
		Discount: state.Discount,
	}
	if state.Anchor != nil {
		echo.Beside = state.Anchor.Alias
	}
	return echo
}
