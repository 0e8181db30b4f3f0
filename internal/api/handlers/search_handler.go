package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kurortly/search-backend/internal/application/services"
	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/infrastructure/observability"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	aggregate  *services.AggregateSearchService
	objects    *services.ObjectSearchService
	geo        *services.GeoSearchService
	dictionary *services.DictionarySearchService
	filter     *services.FilterSearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(
	aggregate *services.AggregateSearchService,
	objects *services.ObjectSearchService,
	geo *services.GeoSearchService,
	dictionary *services.DictionarySearchService,
	filter *services.FilterSearchService,
) *SearchHandler {
	return &SearchHandler{
		aggregate:  aggregate,
		objects:    objects,
		geo:        geo,
		dictionary: dictionary,
		filter:     filter,
	}
}

// SearchAll handles GET /api/v1/search
func (h *SearchHandler) SearchAll(w http.ResponseWriter, r *http.Request) {
	q := parseSearchQuery(r)
	page, err := h.aggregate.Search(r.Context(), q)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// SearchObjects handles GET /api/v1/objects/search
func (h *SearchHandler) SearchObjects(w http.ResponseWriter, r *http.Request) {
	q := parseSearchQuery(r)
	page, err := h.objects.Search(r.Context(), q)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// FilterObjects handles GET /api/v1/objects/filter/{path...}
func (h *SearchHandler) FilterObjects(w http.ResponseWriter, r *http.Request) {
	q := parseSearchQuery(r)
	path := r.PathValue("path")

	resp, err := h.filter.Search(r.Context(), path, q)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// SearchCountries handles GET /api/v1/countries/search
func (h *SearchHandler) SearchCountries(w http.ResponseWriter, r *http.Request) {
	h.respondPage(w, r, h.geo.SearchCountries)
}

// SearchRegions handles GET /api/v1/regions/search
func (h *SearchHandler) SearchRegions(w http.ResponseWriter, r *http.Request) {
	h.respondPage(w, r, h.geo.SearchRegions)
}

// SearchCities handles GET /api/v1/cities/search
func (h *SearchHandler) SearchCities(w http.ResponseWriter, r *http.Request) {
	h.respondPage(w, r, h.geo.SearchCities)
}

// SearchProfiles handles GET /api/v1/medical-profiles/search
func (h *SearchHandler) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	h.respondPage(w, r, h.dictionary.SearchProfiles)
}

// SearchDiseases handles GET /api/v1/diseases/search
func (h *SearchHandler) SearchDiseases(w http.ResponseWriter, r *http.Request) {
	h.respondPage(w, r, h.dictionary.SearchDiseases)
}

// SearchTherapies handles GET /api/v1/therapies/search
func (h *SearchHandler) SearchTherapies(w http.ResponseWriter, r *http.Request) {
	h.respondPage(w, r, h.dictionary.SearchTherapies)
}

func (h *SearchHandler) respondPage(
	w http.ResponseWriter,
	r *http.Request,
	search func(ctx context.Context, q *entities.SearchQuery) (*entities.Page, error),
) {
	q := parseSearchQuery(r)
	page, err := search(r.Context(), q)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// parseSearchQuery extracts the common search parameters from the request
func parseSearchQuery(r *http.Request) *entities.SearchQuery {
	query := r.URL.Query()

	q := &entities.SearchQuery{
		Keyword:  query.Get("q"),
		Locale:   entities.Locale(query.Get("locale")),
		Page:     1,
		PageSize: defaultPageSize,
		Extended: query.Get("extended") == "true",
		SortBy:   query.Get("sort_by"),
		Discount: query.Get("discount") == "true",
	}
	if q.Locale == "" {
		q.Locale = entities.LocaleRU
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if size, err := strconv.Atoi(query.Get("page_size")); err == nil && size > 0 {
		if size > maxPageSize {
			size = maxPageSize
		}
		q.PageSize = size
	}
	q.OnMainPage = query.Get("on_main_page") == "true"
	return q
}

// respondWithAppError maps typed application errors to HTTP status codes
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.LoggerFromContext(r.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("unexpected error", err)
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeValidation,
		apperrors.ErrorTypeUnsupportedLocale,
		apperrors.ErrorTypeFilterOrder,
		apperrors.ErrorTypeInvalidStarSequence,
		apperrors.ErrorTypeInvalidAliasOrder,
		apperrors.ErrorTypeUnsupportedAnchorType:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeIndexUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}

	respondWithJSON(w, status, map[string]string{
		"error": appErr.Message,
		"code":  string(appErr.Type),
	})
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
