package repositories

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
)

// FacetRepository computes per-facet eligible object-ID sets and facet
// availability. The semantics differ by facet kind:
//
//   - profiles, therapies, services: an object qualifies only when it is
//     associated with every selected value (all-match)
//   - moods: an object qualifies when associated with any selected value
//   - diseases: an object qualifies when none of the selected diseases appear
//     in its per-profile exclusion list (a NOT-IN filter, not a join)
type FacetRepository interface {
	ObjectIDsWithAllProfiles(ctx context.Context, profileIDs []int64) ([]int64, error)
	ObjectIDsWithAllTherapies(ctx context.Context, therapyIDs []int64) ([]int64, error)
	ObjectIDsWithAllServices(ctx context.Context, serviceIDs []int64) ([]int64, error)
	ObjectIDsWithAnyMood(ctx context.Context, moodIDs []int64) ([]int64, error)
	ObjectIDsNotExcludingDiseases(ctx context.Context, diseaseIDs []int64) ([]int64, error)

	// AvailableStars returns the distinct star values present among the given
	// objects (all visible objects when ids is nil), ascending
	AvailableStars(ctx context.Context, objectIDs []int64) ([]int, error)

	// AvailableMoodIDs returns the distinct moods associated with the given
	// objects (all visible objects when ids is nil)
	AvailableMoodIDs(ctx context.Context, objectIDs []int64) ([]int64, error)

	// CountObjects returns the number of visible objects attached to the
	// given entity (used for extended-mode enrichment)
	CountObjects(ctx context.Context, kind entities.EntityKind, entityID int64) (int, error)
}
