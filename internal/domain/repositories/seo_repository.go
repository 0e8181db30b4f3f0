package repositories

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
)

// SeoRepository provides access to the SEO alias dictionary, templates and
// custom page overrides
type SeoRepository interface {
	// AliasByName resolves a single alias; unknown aliases yield NOT_FOUND
	AliasByName(ctx context.Context, alias string) (*entities.SeoAlias, error)

	// AliasesByNames resolves a batch of aliases; the result preserves the
	// input order and omits unknown aliases
	AliasesByNames(ctx context.Context, aliases []string) ([]*entities.SeoAlias, error)

	TemplateByFacet(ctx context.Context, kind entities.FacetKind, locale entities.Locale) (*entities.SeoTemplate, error)
	CustomPageByURL(ctx context.Context, url string, locale entities.Locale) (*entities.SeoCustomPage, error)
}
