package entities

import (
	"fmt"
	"strings"
)

// BlockKind classifies one segment of a filter path
type BlockKind int

// Canonical block order: discount < alias < beside < stars < mood.
// The numeric values are the canonical ranks.
const (
	BlockDiscount BlockKind = iota
	BlockAlias
	BlockBeside
	BlockStars
	BlockMood
)

// String returns the block kind name used in error messages
func (k BlockKind) String() string {
	switch k {
	case BlockDiscount:
		return "discount"
	case BlockAlias:
		return "alias"
	case BlockBeside:
		return "beside"
	case BlockStars:
		return "stars"
	case BlockMood:
		return "mood"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// FilterBlock is one classified segment of a filter path
type FilterBlock struct {
	Kind BlockKind `json:"kind"`
	// Position is the 1-based token index in the original path
	Position int    `json:"position"`
	Payload  string `json:"payload,omitempty"`
}

// Anchor is a resolved entity whose coordinates serve as the origin for
// proximity ranking
type Anchor struct {
	Alias    string     `json:"alias"`
	Kind     EntityKind `json:"kind"`
	EntityID int64      `json:"entity_id"`
	Location Location   `json:"location"`
}

// FacetSelection carries the resolved facet IDs of a filter state. A nil
// slice means the facet is unconstrained; an empty non-nil slice means the
// facet was requested but matched nothing.
type FacetSelection struct {
	MedicalProfiles []int64 `json:"medical_profiles,omitempty"`
	Therapies       []int64 `json:"therapies,omitempty"`
	Diseases        []int64 `json:"diseases,omitempty"`
	Services        []int64 `json:"services,omitempty"`
	Moods           []int64 `json:"moods,omitempty"`
	Stars           []int   `json:"stars,omitempty"`
	CountryIDs      []int64 `json:"country_ids,omitempty"`
	RegionIDs       []int64 `json:"region_ids,omitempty"`
	CityIDs         []int64 `json:"city_ids,omitempty"`
}

// IsZero reports whether no facet is constrained
func (s FacetSelection) IsZero() bool {
	return s.MedicalProfiles == nil && s.Therapies == nil && s.Diseases == nil &&
		s.Services == nil && s.Moods == nil && len(s.Stars) == 0 &&
		s.CountryIDs == nil && s.RegionIDs == nil && s.CityIDs == nil
}

// ResolvedFilterState is the validated outcome of parsing a filter path
type ResolvedFilterState struct {
	Blocks      []FilterBlock  `json:"blocks"`
	Selection   FacetSelection `json:"selection"`
	Aliases     []string       `json:"aliases,omitempty"`
	MoodAliases []string       `json:"mood_aliases,omitempty"`
	// MoodPicked guarantees the picked mood stays in the echoed facet list
	// even when availability pruning would drop it
	MoodPicked bool    `json:"mood_picked"`
	Discount   bool    `json:"discount"`
	OnMainPage bool    `json:"on_main_page"`
	Anchor     *Anchor `json:"anchor,omitempty"`
}

// CanonicalPath re-serializes the state into canonical block order. Parsing
// the result yields an equivalent state.
func (s *ResolvedFilterState) CanonicalPath() string {
	segments := make([]string, 0, len(s.Aliases)+len(s.Selection.Stars)+len(s.MoodAliases)+2)
	if s.Discount {
		segments = append(segments, "discount")
	}
	segments = append(segments, s.Aliases...)
	if s.Anchor != nil {
		segments = append(segments, "beside-"+s.Anchor.Alias)
	}
	for _, star := range s.Selection.Stars {
		segments = append(segments, fmt.Sprintf("stars-%d", star))
	}
	for _, mood := range s.MoodAliases {
		segments = append(segments, "mood-"+mood)
	}
	return strings.Join(segments, "/")
}
