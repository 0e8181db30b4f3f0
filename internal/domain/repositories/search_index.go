package repositories

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
)

// SearchIndex is the gateway to the external full-text index. Search returns
// an empty result (not an error) when the keyword is empty or nothing
// matches; transport failures surface as INDEX_UNAVAILABLE errors.
type SearchIndex interface {
	Search(ctx context.Context, kind entities.EntityKind, locale entities.Locale, keyword string) (*entities.IndexResult, error)
	IndexDocument(ctx context.Context, kind entities.EntityKind, document map[string]interface{}) error
	DeleteDocument(ctx context.Context, kind entities.EntityKind, id int64) error
}
