package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

// SeoAdapter implements the SeoRepository interface
type SeoAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSeoAdapter creates a new SEO adapter
func NewSeoAdapter(client *postgres.Client) repositories.SeoRepository {
	return &SeoAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// AliasByName resolves a single SEO alias
func (a *SeoAdapter) AliasByName(ctx context.Context, alias string) (*entities.SeoAlias, error) {
	query, args, err := a.db.From("seo_aliases").
		Select("alias", "entity_kind", "entity_id", "sort_order").
		Where(goqu.Ex{"alias": alias}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build alias query", err)
	}

	result := &entities.SeoAlias{}
	var sortOrder sql.NullInt64
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&result.Alias, &result.EntityKind, &result.EntityID, &sortOrder,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("alias %q not found", alias))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get alias", err)
	}

	if sortOrder.Valid {
		order := int(sortOrder.Int64)
		result.SortOrder = &order
	}
	return result, nil
}

// AliasesByNames resolves a batch of aliases preserving input order; unknown
// aliases are omitted
func (a *SeoAdapter) AliasesByNames(ctx context.Context, aliases []string) ([]*entities.SeoAlias, error) {
	if len(aliases) == 0 {
		return []*entities.SeoAlias{}, nil
	}

	query, args, err := a.db.From("seo_aliases").
		Select("alias", "entity_kind", "entity_id", "sort_order").
		Where(goqu.Ex{"alias": aliases}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build alias batch query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query aliases", err)
	}
	defer rows.Close()

	byAlias := map[string][]*entities.SeoAlias{}
	for rows.Next() {
		sa := &entities.SeoAlias{}
		var sortOrder sql.NullInt64
		if err := rows.Scan(&sa.Alias, &sa.EntityKind, &sa.EntityID, &sortOrder); err != nil {
			return nil, apperrors.NewInternalError("failed to scan alias", err)
		}
		if sortOrder.Valid {
			order := int(sortOrder.Int64)
			sa.SortOrder = &order
		}
		byAlias[sa.Alias] = append(byAlias[sa.Alias], sa)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating aliases", err)
	}

	result := []*entities.SeoAlias{}
	for _, alias := range aliases {
		result = append(result, byAlias[alias]...)
	}
	return result, nil
}

// TemplateByFacet retrieves the SEO template for a facet kind in a locale
func (a *SeoAdapter) TemplateByFacet(ctx context.Context, kind entities.FacetKind, locale entities.Locale) (*entities.SeoTemplate, error) {
	titleCol := fmt.Sprintf("title_%s", locale)
	metaCol := fmt.Sprintf("meta_description_%s", locale)
	bodyCol := fmt.Sprintf("body_%s", locale)

	query, args, err := a.db.From("seo_templates").
		Select("id", "facet_kind", titleCol, metaCol, bodyCol).
		Where(goqu.Ex{"facet_kind": string(kind)}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build template query", err)
	}

	tpl := &entities.SeoTemplate{}
	var body sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&tpl.ID, &tpl.FacetKind, &tpl.Title, &tpl.MetaDescription, &body,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no template for facet %q", kind))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get template", err)
	}

	tpl.Body = body.String
	return tpl, nil
}

// CustomPageByURL retrieves the custom SEO override for the literal URL
func (a *SeoAdapter) CustomPageByURL(ctx context.Context, url string, locale entities.Locale) (*entities.SeoCustomPage, error) {
	titleCol := fmt.Sprintf("title_%s", locale)
	metaCol := fmt.Sprintf("meta_description_%s", locale)
	bodyCol := fmt.Sprintf("body_%s", locale)

	query, args, err := a.db.From("seo_custom_pages").
		Select("id", "url", titleCol, metaCol, bodyCol).
		Where(goqu.Ex{"url": url}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build custom page query", err)
	}

	page := &entities.SeoCustomPage{}
	var body sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&page.ID, &page.URL, &page.Title, &page.MetaDescription, &body,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no custom page for url %q", url))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get custom page", err)
	}

	page.Body = body.String
	return page, nil
}
