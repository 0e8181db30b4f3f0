package entities

// SeoAlias maps a URL alias to the entity it names. SortOrder drives the
// required ordering of aliases inside a filter path; a null value means the
// alias cannot participate in filter URLs.
type SeoAlias struct {
	Alias      string     `json:"alias" db:"alias"`
	EntityKind EntityKind `json:"entity_kind" db:"entity_kind"`
	EntityID   int64      `json:"entity_id" db:"entity_id"`
	SortOrder  *int       `json:"sort_order,omitempty" db:"sort_order"`
}

// FacetKind identifies the filter dimension a SEO template is attached to
type FacetKind string

const (
	FacetDiscount       FacetKind = "discount"
	FacetStars          FacetKind = "stars"
	FacetBeside         FacetKind = "beside"
	FacetMedicalProfile FacetKind = "medical_profile"
	FacetTherapy        FacetKind = "therapy"
	FacetDisease        FacetKind = "disease"
	FacetService        FacetKind = "service"
	FacetCountry        FacetKind = "country"
	FacetRegion         FacetKind = "region"
	FacetCity           FacetKind = "city"
)

// SeoTemplate is a reusable SEO fragment selected per active facet
type SeoTemplate struct {
	ID              int64     `json:"id" db:"id"`
	FacetKind       FacetKind `json:"facet_kind" db:"facet_kind"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	Body            string    `json:"body,omitempty"`
}

// SeoCustomPage is a hand-authored SEO override keyed by the literal URL.
// When present it replaces template selection entirely.
type SeoCustomPage struct {
	ID              int64  `json:"id" db:"id"`
	URL             string `json:"url" db:"url"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	Body            string `json:"body,omitempty"`
}
