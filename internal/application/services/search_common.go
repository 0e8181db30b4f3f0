package services

import (
	"context"
	"sort"
	"strings"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
	"github.com/kurortly/search-backend/pkg/retry"
)

// keywordPlan is the outcome of resolving a keyword against the full-text
// index: either a candidate set with scores, or a degraded-mode LIKE pattern.
type keywordPlan struct {
	// index result; nil when no keyword was given or degraded mode kicked in
	res *entities.IndexResult
	// lower-cased substring for the relational fallback; empty unless degraded
	like string
}

// inMemory reports whether relevance ordering requires fetching the full
// candidate set and paginating in memory (the store knows no scores)
func (p keywordPlan) inMemory() bool {
	return p.res != nil
}

func (p keywordPlan) candidateIDs() []int64 {
	if p.res == nil {
		return nil
	}
	return p.res.IDs
}

func (p keywordPlan) hit(id int64) (entities.IndexHit, bool) {
	if p.res == nil {
		return entities.IndexHit{}, false
	}
	h, ok := p.res.Hits[id]
	return h, ok
}

func (p keywordPlan) maxScore() float64 {
	if p.res == nil {
		return 0
	}
	return p.res.MaxScore
}

// indexQuerier resolves keywords against the index with a single retry and
// the configured degradation policy. The policy is uniform across all entity
// searchers.
type indexQuerier struct {
	index    repositories.SearchIndex
	degraded bool
}

func (iq indexQuerier) plan(ctx context.Context, kind entities.EntityKind, locale entities.Locale, keyword string) (keywordPlan, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return keywordPlan{}, nil
	}

	var res *entities.IndexResult
	err := retry.Do(ctx, retry.OnceConfig(), func() error {
		r, searchErr := iq.index.Search(ctx, kind, locale, keyword)
		if searchErr != nil {
			return searchErr
		}
		res = r
		return nil
	}, nil)
	if err != nil {
		if iq.degraded && apperrors.IsType(err, apperrors.ErrorTypeIndexUnavailable) {
			return keywordPlan{like: strings.ToLower(keyword)}, nil
		}
		return keywordPlan{}, err
	}

	return keywordPlan{res: res}, nil
}

// sortByScore orders candidates by descending score; candidates without a
// score sort last, ties break on kind then id for stable pagination
func sortByScore(items []*entities.Candidate) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Score == nil && b.Score == nil:
			if a.Kind != b.Kind {
				return a.Kind < b.Kind
			}
			return a.ID < b.ID
		case a.Score == nil:
			return false
		case b.Score == nil:
			return true
		case *a.Score != *b.Score:
			return *a.Score > *b.Score
		default:
			if a.Kind != b.Kind {
				return a.Kind < b.Kind
			}
			return a.ID < b.ID
		}
	})
}

// window slices one page out of a fully sorted result set
func window(items []*entities.Candidate, page, pageSize int) []*entities.Candidate {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []*entities.Candidate{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// attachHits copies index scores and highlights onto already-built candidates
func attachHits(items []*entities.Candidate, plan keywordPlan, proj entities.Projection) {
	for _, c := range items {
		if hit, ok := plan.hit(c.ID); ok {
			c.Score = scorePtr(hit, ok)
			c.HighlightedName = hit.Highlights[proj.Name]
			c.HighlightedDescription = hit.Highlights[proj.Description]
		}
	}
}

func localized(locale entities.Locale, ru, en string) string {
	if locale == entities.LocaleEN {
		return en
	}
	return ru
}

func scorePtr(hit entities.IndexHit, ok bool) *float64 {
	if !ok {
		return nil
	}
	s := hit.Score
	return &s
}
