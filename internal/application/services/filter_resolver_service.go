package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

// FilterResolverService parses a canonical filter path into a validated
// ResolvedFilterState. Segment kinds and their canonical order:
//
//	discount < alias < beside-<alias> < stars-<n> < mood-<alias>
type FilterResolverService struct {
	seoRepo  repositories.SeoRepository
	dictRepo repositories.DictionaryRepository
	geoRepo  repositories.GeoRepository
	objRepo  repositories.ObjectRepository
}

// NewFilterResolverService creates a new filter resolver
func NewFilterResolverService(
	seoRepo repositories.SeoRepository,
	dictRepo repositories.DictionaryRepository,
	geoRepo repositories.GeoRepository,
	objRepo repositories.ObjectRepository,
) *FilterResolverService {
	return &FilterResolverService{
		seoRepo:  seoRepo,
		dictRepo: dictRepo,
		geoRepo:  geoRepo,
		objRepo:  objRepo,
	}
}

// Resolve parses and validates a filter path. onMainPage is supplied by the
// caller and echoed into the state.
func (s *FilterResolverService) Resolve(ctx context.Context, path string, onMainPage bool) (*entities.ResolvedFilterState, error) {
	blocks, err := classify(path)
	if err != nil {
		return nil, err
	}
	if err := checkCanonicalOrder(blocks); err != nil {
		return nil, err
	}

	state := &entities.ResolvedFilterState{
		Blocks:     blocks,
		OnMainPage: onMainPage,
	}

	var besideAlias string
	for _, block := range blocks {
		switch block.Kind {
		case entities.BlockDiscount:
			state.Discount = true
		case entities.BlockAlias:
			state.Aliases = append(state.Aliases, block.Payload)
		case entities.BlockBeside:
			if besideAlias != "" {
				return nil, apperrors.NewValidationError("only one beside block is allowed")
			}
			besideAlias = block.Payload
		case entities.BlockStars:
			star, starErr := parseStar(block.Payload, state.Selection.Stars)
			if starErr != nil {
				return nil, starErr
			}
			state.Selection.Stars = append(state.Selection.Stars, star)
		case entities.BlockMood:
			state.MoodAliases = append(state.MoodAliases, block.Payload)
			state.MoodPicked = true
		}
	}

	if err := s.resolveAliases(ctx, state); err != nil {
		return nil, err
	}
	if err := s.resolveMoods(ctx, state); err != nil {
		return nil, err
	}
	if besideAlias != "" {
		anchor, anchorErr := s.resolveAnchor(ctx, besideAlias)
		if anchorErr != nil {
			return nil, anchorErr
		}
		state.Anchor = anchor
	}

	return state, nil
}

// classify splits the path and tags every segment with its block kind and
// 1-based position
func classify(path string) ([]entities.FilterBlock, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}

	segments := strings.Split(path, "/")
	blocks := make([]entities.FilterBlock, 0, len(segments))
	for i, segment := range segments {
		if segment == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("empty filter segment at position %d", i+1))
		}
		block := entities.FilterBlock{Position: i + 1}
		switch {
		case segment == "discount":
			block.Kind = entities.BlockDiscount
		case strings.HasPrefix(segment, "beside-"):
			block.Kind = entities.BlockBeside
			block.Payload = strings.TrimPrefix(segment, "beside-")
		case isStarsSegment(segment):
			block.Kind = entities.BlockStars
			block.Payload = strings.TrimPrefix(segment, "stars-")
		case strings.HasPrefix(segment, "mood-"):
			block.Kind = entities.BlockMood
			block.Payload = strings.TrimPrefix(segment, "mood-")
		default:
			block.Kind = entities.BlockAlias
			block.Payload = segment
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

func isStarsSegment(segment string) bool {
	rest, ok := strings.CutPrefix(segment, "stars-")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// checkCanonicalOrder verifies that for every pair of blocks, the one whose
// kind sorts earlier also appears earlier in the path. The blocks are sorted
// by canonical kind rank (stable, so same-kind blocks keep path order) and a
// single linear scan checks position monotonicity.
func checkCanonicalOrder(blocks []entities.FilterBlock) error {
	ranked := make([]entities.FilterBlock, len(blocks))
	copy(ranked, blocks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Kind < ranked[j].Kind
	})

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Position < ranked[i-1].Position {
			return apperrors.NewFilterOrderError(ranked[i-1].Kind.String())
		}
	}
	return nil
}

// parseStar validates one stars-<n> payload against the accumulated list:
// 1..5 and strictly increasing
func parseStar(payload string, accumulated []int) (int, error) {
	star, err := strconv.Atoi(payload)
	if err != nil || star < 1 || star > 5 {
		return 0, apperrors.NewInvalidStarSequenceError(
			fmt.Sprintf("star value %q must be an integer between 1 and 5", payload))
	}
	if len(accumulated) > 0 && star <= accumulated[len(accumulated)-1] {
		return 0, apperrors.NewInvalidStarSequenceError(
			fmt.Sprintf("star values must be strictly increasing, got %d after %d", star, accumulated[len(accumulated)-1]))
	}
	return star, nil
}

// resolveAliases validates alias existence and ordering, then matches every
// alias against each dictionary independently. An alias list with zero
// matches against a dictionary leaves that facet unconstrained (nil), which
// is distinct from "requested but empty".
func (s *FilterResolverService) resolveAliases(ctx context.Context, state *entities.ResolvedFilterState) error {
	if len(state.Aliases) == 0 {
		return nil
	}

	resolved, err := s.seoRepo.AliasesByNames(ctx, state.Aliases)
	if err != nil {
		return err
	}
	byName := map[string]*entities.SeoAlias{}
	for _, sa := range resolved {
		byName[sa.Alias] = sa
	}

	prevOrder := -1
	for _, alias := range state.Aliases {
		sa, ok := byName[alias]
		if !ok {
			return apperrors.NewNotFoundError(fmt.Sprintf("alias %q not found", alias))
		}
		if sa.SortOrder == nil {
			return apperrors.NewInvalidAliasOrderError(alias)
		}
		if *sa.SortOrder <= prevOrder {
			return apperrors.NewInvalidAliasOrderError(alias)
		}
		prevOrder = *sa.SortOrder
	}

	sel := &state.Selection
	matchers := []struct {
		lookup func(context.Context, []string) ([]int64, error)
		target *[]int64
	}{
		{s.dictRepo.ProfileIDsByAliases, &sel.MedicalProfiles},
		{s.dictRepo.TherapyIDsByAliases, &sel.Therapies},
		{s.dictRepo.DiseaseIDsByAliases, &sel.Diseases},
		{s.dictRepo.ServiceIDsByAliases, &sel.Services},
		{s.geoRepo.CountryIDsByAliases, &sel.CountryIDs},
		{s.geoRepo.RegionIDsByAliases, &sel.RegionIDs},
		{s.geoRepo.CityIDsByAliases, &sel.CityIDs},
	}
	for _, m := range matchers {
		ids, lookupErr := m.lookup(ctx, state.Aliases)
		if lookupErr != nil {
			return lookupErr
		}
		if len(ids) > 0 {
			*m.target = ids
		}
	}

	return nil
}

func (s *FilterResolverService) resolveMoods(ctx context.Context, state *entities.ResolvedFilterState) error {
	if len(state.MoodAliases) == 0 {
		return nil
	}

	ids, err := s.dictRepo.MoodIDsByAliases(ctx, state.MoodAliases)
	if err != nil {
		return err
	}
	if len(ids) < len(state.MoodAliases) {
		return apperrors.NewNotFoundError("unknown mood alias in filter path")
	}
	state.Selection.Moods = ids
	return nil
}

// resolveAnchor resolves a beside-<alias> segment into a ranking anchor. The
// referenced entity must be a country, region, city or object and carry
// coordinates.
func (s *FilterResolverService) resolveAnchor(ctx context.Context, alias string) (*entities.Anchor, error) {
	sa, err := s.seoRepo.AliasByName(ctx, alias)
	if err != nil {
		return nil, err
	}

	var loc *entities.Location
	switch sa.EntityKind {
	case entities.KindCountry:
		country, lookupErr := s.geoRepo.CountryByID(ctx, sa.EntityID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		loc = country.Location
	case entities.KindRegion:
		region, lookupErr := s.geoRepo.RegionByID(ctx, sa.EntityID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		loc = region.Location
	case entities.KindCity:
		city, lookupErr := s.geoRepo.CityByID(ctx, sa.EntityID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		loc = city.Location
	case entities.KindObject:
		object, lookupErr := s.objRepo.GetByID(ctx, sa.EntityID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		loc = object.Location
	default:
		return nil, apperrors.NewUnsupportedAnchorTypeError(string(sa.EntityKind))
	}

	if loc == nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("anchor %q has no coordinates", alias))
	}

	return &entities.Anchor{
		Alias:    alias,
		Kind:     sa.EntityKind,
		EntityID: sa.EntityID,
		Location: *loc,
	}, nil
}
