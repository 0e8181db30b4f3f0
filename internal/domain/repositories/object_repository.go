package repositories

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
)

// ObjectQuery restricts an object search. Nil ID slices mean "unconstrained";
// empty non-nil slices mean "requested but matched nothing" and must yield
// zero rows.
type ObjectQuery struct {
	// CandidateIDs come from the full-text index
	CandidateIDs []int64

	// EligibleIDs come from facet intersection
	EligibleIDs []int64

	Stars      []int
	Discount   bool
	OnMainPage bool
	CountryIDs []int64
	RegionIDs  []int64
	CityIDs    []int64

	// KeywordLike enables the degraded-mode substring match on lower-cased
	// localized name columns
	KeywordLike string

	// Limit 0 fetches the full eligible set (anchor-ranked searches paginate
	// in memory)
	Limit  int
	Offset int
}

// ObjectRepository provides relational access to the object catalog
type ObjectRepository interface {
	Search(ctx context.Context, q ObjectQuery) ([]*entities.Object, error)
	Count(ctx context.Context, q ObjectQuery) (int, error)
	GetByID(ctx context.Context, id int64) (*entities.Object, error)
}
