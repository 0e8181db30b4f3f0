package services

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
)

// DictionarySearchService searches the medical dictionaries (profiles,
// diseases, therapies) under the common entity-search contract
type DictionarySearchService struct {
	dictRepo  repositories.DictionaryRepository
	facetRepo repositories.FacetRepository
	index     indexQuerier
}

// NewDictionarySearchService creates a new dictionary search service
func NewDictionarySearchService(
	dictRepo repositories.DictionaryRepository,
	facetRepo repositories.FacetRepository,
	index repositories.SearchIndex,
	degraded bool,
) *DictionarySearchService {
	return &DictionarySearchService{
		dictRepo:  dictRepo,
		facetRepo: facetRepo,
		index:     indexQuerier{index: index, degraded: degraded},
	}
}

// SearchProfiles searches medical profiles
func (s *DictionarySearchService) SearchProfiles(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error) {
	return s.search(ctx, q, entities.KindMedicalProfile,
		s.dictRepo.CountProfiles,
		func(ctx context.Context, dq repositories.DictionaryQuery) ([]*entities.Candidate, error) {
			profiles, err := s.dictRepo.SearchProfiles(ctx, dq)
			if err != nil {
				return nil, err
			}
			items := make([]*entities.Candidate, 0, len(profiles))
			for _, p := range profiles {
				c := &entities.Candidate{
					ID:    p.ID,
					Kind:  entities.KindMedicalProfile,
					Alias: p.Alias,
					Name:  localized(q.Locale, p.NameRU, p.NameEN),
				}
				if q.Extended {
					c.Description = localized(q.Locale, p.DescriptionRU, p.DescriptionEN)
				}
				items = append(items, c)
			}
			return items, nil
		})
}

// SearchDiseases searches the disease dictionary
func (s *DictionarySearchService) SearchDiseases(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error) {
	return s.search(ctx, q, entities.KindDisease,
		s.dictRepo.CountDiseases,
		func(ctx context.Context, dq repositories.DictionaryQuery) ([]*entities.Candidate, error) {
			diseases, err := s.dictRepo.SearchDiseases(ctx, dq)
			if err != nil {
				return nil, err
			}
			items := make([]*entities.Candidate, 0, len(diseases))
			for _, d := range diseases {
				c := &entities.Candidate{
					ID:    d.ID,
					Kind:  entities.KindDisease,
					Alias: d.Alias,
					Name:  localized(q.Locale, d.NameRU, d.NameEN),
				}
				if q.Extended {
					c.Description = localized(q.Locale, d.DescriptionRU, d.DescriptionEN)
				}
				items = append(items, c)
			}
			return items, nil
		})
}

// SearchTherapies searches the therapy dictionary
func (s *DictionarySearchService) SearchTherapies(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error) {
	return s.search(ctx, q, entities.KindTherapy,
		s.dictRepo.CountTherapies,
		func(ctx context.Context, dq repositories.DictionaryQuery) ([]*entities.Candidate, error) {
			therapies, err := s.dictRepo.SearchTherapies(ctx, dq)
			if err != nil {
				return nil, err
			}
			items := make([]*entities.Candidate, 0, len(therapies))
			for _, t := range therapies {
				c := &entities.Candidate{
					ID:    t.ID,
					Kind:  entities.KindTherapy,
					Alias: t.Alias,
					Name:  localized(q.Locale, t.NameRU, t.NameEN),
				}
				if q.Extended {
					c.Description = localized(q.Locale, t.DescriptionRU, t.DescriptionEN)
				}
				items = append(items, c)
			}
			return items, nil
		})
}

func (s *DictionarySearchService) search(
	ctx context.Context,
	q *entities.SearchQuery,
	kind entities.EntityKind,
	count func(context.Context, repositories.DictionaryQuery) (int, error),
	fetch func(context.Context, repositories.DictionaryQuery) ([]*entities.Candidate, error),
) (*entities.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.index.plan(ctx, kind, q.Locale, q.Keyword)
	if err != nil {
		return nil, err
	}

	dq := repositories.DictionaryQuery{
		CandidateIDs: plan.candidateIDs(),
		KeywordLike:  plan.like,
	}

	page := &entities.Page{
		Page:     q.Page,
		PageSize: q.PageSize,
		MaxScore: plan.maxScore(),
	}

	if plan.inMemory() {
		items, fetchErr := fetch(ctx, dq)
		if fetchErr != nil {
			return nil, fetchErr
		}
		attachHits(items, plan, q.Locale.Projection())
		sortByScore(items)
		page.Total = len(items)
		page.Items = window(items, q.Page, q.PageSize)
	} else {
		total, countErr := count(ctx, dq)
		if countErr != nil {
			return nil, countErr
		}
		dq.Limit = q.PageSize
		dq.Offset = (q.Page - 1) * q.PageSize
		items, fetchErr := fetch(ctx, dq)
		if fetchErr != nil {
			return nil, fetchErr
		}
		page.Total = total
		page.Items = items
	}

	if q.Extended {
		for _, c := range page.Items {
			n, countErr := s.facetRepo.CountObjects(ctx, kind, c.ID)
			if countErr != nil {
				return nil, countErr
			}
			c.ObjectCount = n
		}
	}
	return page, nil
}
