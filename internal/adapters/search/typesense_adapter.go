package search

import (
	"context"
	"strconv"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	tsclient "github.com/kurortly/search-backend/internal/infrastructure/clients/typesense"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

// TypesenseAdapter implements the SearchIndex gateway against Typesense
type TypesenseAdapter struct {
	client        *tsclient.Client
	timeout       time.Duration
	maxCandidates int
}

var _ repositories.SearchIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense index adapter. timeout bounds
// every index call; maxCandidates caps the candidate page pulled per query.
func NewTypesenseAdapter(client *tsclient.Client, timeout time.Duration, maxCandidates int) *TypesenseAdapter {
	return &TypesenseAdapter{
		client:        client,
		timeout:       timeout,
		maxCandidates: maxCandidates,
	}
}

// Search queries the collection of the given kind for the keyword in the
// given locale. An empty keyword returns an empty result, not an error.
// Transport failures surface as INDEX_UNAVAILABLE.
func (a *TypesenseAdapter) Search(ctx context.Context, kind entities.EntityKind, locale entities.Locale, keyword string) (*entities.IndexResult, error) {
	result := &entities.IndexResult{
		IDs:  []int64{},
		Hits: map[int64]entities.IndexHit{},
	}
	if keyword == "" {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	proj := locale.Projection()
	queryBy := proj.Name + "," + proj.Description

	params := &api.SearchCollectionParams{
		Q:               pointer.String(keyword),
		QueryBy:         pointer.String(queryBy),
		HighlightFields: pointer.String(queryBy),
		FilterBy:        pointer.String("visible:=true"),
		PerPage:         pointer.Int(a.maxCandidates),
		Page:            pointer.Int(1),
	}

	collection := tsclient.CollectionFor(kind)
	searchResult, err := a.client.Client().Collection(collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, apperrors.NewIndexUnavailableError("full-text index query failed", err)
	}

	if searchResult.Hits == nil {
		return result, nil
	}

	for _, hit := range *searchResult.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		rawID, ok := doc["entity_id"].(float64)
		if !ok {
			continue
		}
		id := int64(rawID)

		indexHit := entities.IndexHit{Highlights: map[string]string{}}
		if hit.TextMatch != nil {
			indexHit.Score = float64(*hit.TextMatch)
		}
		if hit.Highlights != nil {
			for _, hl := range *hit.Highlights {
				if hl.Field == nil || hl.Snippet == nil {
					continue
				}
				indexHit.Highlights[*hl.Field] = *hl.Snippet
			}
		}

		result.IDs = append(result.IDs, id)
		result.Hits[id] = indexHit
		if indexHit.Score > result.MaxScore {
			result.MaxScore = indexHit.Score
		}
	}

	return result, nil
}

// IndexDocument upserts a document into the collection of the given kind
func (a *TypesenseAdapter) IndexDocument(ctx context.Context, kind entities.EntityKind, document map[string]interface{}) error {
	collection := tsclient.CollectionFor(kind)
	_, err := a.client.Client().Collection(collection).Documents().Upsert(ctx, document)
	if err != nil {
		return apperrors.NewIndexUnavailableError("failed to index document", err)
	}
	return nil
}

// DeleteDocument removes a document from the collection of the given kind
func (a *TypesenseAdapter) DeleteDocument(ctx context.Context, kind entities.EntityKind, id int64) error {
	collection := tsclient.CollectionFor(kind)
	_, err := a.client.Client().Collection(collection).Document(strconv.FormatInt(id, 10)).Delete(ctx)
	if err != nil {
		return apperrors.NewIndexUnavailableError("failed to delete document from index", err)
	}
	return nil
}
