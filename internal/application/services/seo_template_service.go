package services

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

// SeoTemplateService selects the SEO fragments for a resolved filter page
type SeoTemplateService struct {
	seoRepo repositories.SeoRepository
}

// NewSeoTemplateService creates a new SEO template service
func NewSeoTemplateService(seoRepo repositories.SeoRepository) *SeoTemplateService {
	return &SeoTemplateService{seoRepo: seoRepo}
}

// Select returns the SEO content for a filter URL. A custom page registered
// for the literal URL overrides template selection entirely. Otherwise one
// template per active facet is collected; facets without a registered
// template are skipped.
//
// Dictionary facets activate only when exactly one value is selected: a
// multi-value selection has no single subject to write SEO copy about.
func (s *SeoTemplateService) Select(ctx context.Context, url string, locale entities.Locale, state *entities.ResolvedFilterState) ([]*entities.SeoTemplate, *entities.SeoCustomPage, error) {
	custom, err := s.seoRepo.CustomPageByURL(ctx, url, locale)
	if err == nil {
		return nil, custom, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, nil, err
	}

	templates := []*entities.SeoTemplate{}
	for _, kind := range activeFacets(state) {
		tpl, tplErr := s.seoRepo.TemplateByFacet(ctx, kind, locale)
		if tplErr != nil {
			if apperrors.IsType(tplErr, apperrors.ErrorTypeNotFound) {
				continue
			}
			return nil, nil, tplErr
		}
		templates = append(templates, tpl)
	}
	return templates, nil, nil
}

func activeFacets(state *entities.ResolvedFilterState) []entities.FacetKind {
	if state == nil {
		return nil
	}

	kinds := []entities.FacetKind{}
	if state.Discount {
		kinds = append(kinds, entities.FacetDiscount)
	}
	if len(state.Selection.Stars) > 0 {
		kinds = append(kinds, entities.FacetStars)
	}
	if state.Anchor != nil {
		kinds = append(kinds, entities.FacetBeside)
	}
	if len(state.Selection.MedicalProfiles) == 1 {
		kinds = append(kinds, entities.FacetMedicalProfile)
	}
	if len(state.Selection.Therapies) == 1 {
		kinds = append(kinds, entities.FacetTherapy)
	}
	if len(state.Selection.Diseases) == 1 {
		kinds = append(kinds, entities.FacetDisease)
	}
	if len(state.Selection.Services) == 1 {
		kinds = append(kinds, entities.FacetService)
	}
	if len(state.Selection.CountryIDs) > 0 {
		kinds = append(kinds, entities.FacetCountry)
	}
	if len(state.Selection.RegionIDs) > 0 {
		kinds = append(kinds, entities.FacetRegion)
	}
	if len(state.Selection.CityIDs) > 0 {
		kinds = append(kinds, entities.FacetCity)
	}
	return kinds
}
