package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kurortly/search-backend/internal/domain/entities"
)

// EntitySearcher is one typed source the aggregator fans out to
type EntitySearcher struct {
	Kind   entities.EntityKind
	Search func(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error)
}

// DefaultSearchers wires the seven searchable entity types in canonical order
func DefaultSearchers(
	objects *ObjectSearchService,
	geo *GeoSearchService,
	dict *DictionarySearchService,
) []EntitySearcher {
	return []EntitySearcher{
		{entities.KindObject, objects.Search},
		{entities.KindCountry, geo.SearchCountries},
		{entities.KindRegion, geo.SearchRegions},
		{entities.KindCity, geo.SearchCities},
		{entities.KindMedicalProfile, dict.SearchProfiles},
		{entities.KindDisease, dict.SearchDiseases},
		{entities.KindTherapy, dict.SearchTherapies},
	}
}

// AggregateSearchService runs one keyword query across every searchable
// entity type and merges the hits into a single relevance-ordered page
type AggregateSearchService struct {
	sources     []EntitySearcher
	fanOutLimit int
}

// NewAggregateSearchService creates a new cross-type search service
func NewAggregateSearchService(sources []EntitySearcher, fanOutLimit int) *AggregateSearchService {
	if fanOutLimit < 1 {
		fanOutLimit = len(sources)
	}
	return &AggregateSearchService{
		sources:     sources,
		fanOutLimit: fanOutLimit,
	}
}

type sourceState struct {
	total    int
	maxScore float64
	items    []*entities.Candidate
	done     bool
}

// Search fans the query out to every source in rounds of one page each, with
// bounded concurrency inside a round. A source stops once the next page would
// lie past its total. After every source is drained the hits are merged, the
// totals summed, and the requested window sliced out of the global ordering.
func (s *AggregateSearchService) Search(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	states := make([]*sourceState, len(s.sources))
	for i := range states {
		states[i] = &sourceState{}
	}

	for round := 1; ; round++ {
		pages := make([]*entities.Page, len(s.sources))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.fanOutLimit)

		active := 0
		for i, src := range s.sources {
			if states[i].done {
				continue
			}
			active++
			i, src := i, src
			g.Go(func() error {
				sq := *q
				sq.Page = round
				p, err := src.Search(gctx, &sq)
				if err != nil {
					return err
				}
				pages[i] = p
				return nil
			})
		}
		if active == 0 {
			break
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// collect only after the whole round settled
		for i, p := range pages {
			if p == nil {
				continue
			}
			st := states[i]
			st.total = p.Total
			if p.MaxScore > st.maxScore {
				st.maxScore = p.MaxScore
			}
			st.items = append(st.items, p.Items...)
			if len(p.Items) == 0 || (round+1)*q.PageSize > p.Total+q.PageSize {
				st.done = true
			}
		}
	}

	merged := []*entities.Candidate{}
	total := 0
	maxScore := 0.0
	for _, st := range states {
		merged = append(merged, st.items...)
		total += st.total
		if st.maxScore > maxScore {
			maxScore = st.maxScore
		}
	}
	sortByScore(merged)

	return &entities.Page{
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    total,
		MaxScore: maxScore,
		Items:    window(merged, q.Page, q.PageSize),
	}, nil
}
