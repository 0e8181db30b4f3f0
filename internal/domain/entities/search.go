package entities

import apperrors "github.com/kurortly/search-backend/pkg/errors"

// SearchQuery carries the common parameters of every entity search
type SearchQuery struct {
	Keyword  string `json:"keyword,omitempty"`
	Locale   Locale `json:"locale"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	// Extended requests description snippets and object-count enrichment
	Extended bool `json:"extended,omitempty"`
	// SortBy, when set, takes precedence over anchor-distance ordering
	SortBy     string         `json:"sort_by,omitempty"`
	Selection  FacetSelection `json:"selection"`
	Discount   bool           `json:"discount,omitempty"`
	OnMainPage bool           `json:"on_main_page,omitempty"`
	Anchor     *Anchor        `json:"anchor,omitempty"`
}

// Validate checks the query invariants
func (q *SearchQuery) Validate() error {
	if _, err := ParseLocale(string(q.Locale)); err != nil {
		return err
	}
	if q.Page < 1 {
		return apperrors.NewValidationError("page must be >= 1")
	}
	if q.PageSize < 1 {
		return apperrors.NewValidationError("page size must be >= 1")
	}
	return nil
}

// IndexHit is a single full-text index match
type IndexHit struct {
	Score      float64           `json:"score"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// IndexResult is the outcome of one full-text index query
type IndexResult struct {
	IDs      []int64            `json:"ids"`
	Hits     map[int64]IndexHit `json:"hits"`
	MaxScore float64            `json:"max_score"`
}

// Candidate is a typed search hit after relational enrichment. It is
// request-scoped and never persisted.
type Candidate struct {
	ID                     int64      `json:"id"`
	Kind                   EntityKind `json:"type"`
	Alias                  string     `json:"alias,omitempty"`
	Name                   string     `json:"name"`
	Description            string     `json:"description,omitempty"`
	Score                  *float64   `json:"score,omitempty"`
	HighlightedName        string     `json:"highlighted_name,omitempty"`
	HighlightedDescription string     `json:"highlighted_description,omitempty"`
	Location               *Location  `json:"location,omitempty"`
	Stars                  int        `json:"stars,omitempty"`
	Rating                 float64    `json:"rating,omitempty"`
	ObjectCount            int        `json:"object_count,omitempty"`
	DistanceMeters         *float64   `json:"distance_meters,omitempty"`
}

// Page is one page of scored candidates
type Page struct {
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Total    int          `json:"total"`
	MaxScore float64      `json:"max_score"`
	Items    []*Candidate `json:"items"`
}

// FilterResponse echoes the resolved filter values back to the client
type FilterResponse struct {
	Aliases  []string `json:"aliases,omitempty"`
	Stars    []int    `json:"stars,omitempty"`
	Moods    []string `json:"moods,omitempty"`
	Discount bool     `json:"discount"`
	Beside   string   `json:"beside,omitempty"`
}

// FilterData carries derived facet availability for the current result set
type FilterData struct {
	AvailableStars []int   `json:"available_stars,omitempty"`
	Moods          []*Mood `json:"moods,omitempty"`
}

// SearchResponse is the stable wire contract of every search operation
type SearchResponse struct {
	Page           int             `json:"page"`
	PageSize       int             `json:"page_size"`
	Total          int             `json:"total"`
	Items          []*Candidate    `json:"items"`
	MaxScore       float64         `json:"max_score"`
	FilterResponse *FilterResponse `json:"filter_response,omitempty"`
	FilterData     *FilterData     `json:"filter_data,omitempty"`
	Templates      []*SeoTemplate  `json:"templates,omitempty"`
	CustomSeo      *SeoCustomPage  `json:"custom_seo,omitempty"`
}
