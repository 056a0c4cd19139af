package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/brad-richardson/overture-geocode/pkg/geocoder"
	"github.com/brad-richardson/overture-geocode/pkg/version"
)

// maxLimit caps the per-request result limit.
const maxLimit = 40

// HandleSearch answers GET /search?q=...&limit=...&countrycodes=US,CA.
// The first country code becomes the location bias. The requester's country,
// used to pick the optional country shard, comes from the CF-IPCountry
// header or an explicit country parameter.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	text := params.Get("q")
	if text == "" {
		s.writeError(w, http.StatusBadRequest, "missing_query", "q parameter is required")
		return
	}

	query := geocoder.NewQuery(text).WithLimit(s.defaultLimit)
	if limitStr := params.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		query = query.WithLimit(limit)
	}
	if params.Get("autocomplete") == "1" {
		query = query.WithAutocomplete(true)
	}
	if codes := params.Get("countrycodes"); codes != "" {
		first, _, _ := strings.Cut(codes, ",")
		if first = strings.ToUpper(strings.TrimSpace(first)); first != "" {
			query = query.WithBias(geocoder.CountryBias(first))
		}
	}

	results, err := s.geocoder.Search(r.Context(), query, s.requestCountry(r))
	if err != nil {
		s.logger.Errorf("search %q failed: %v", text, err)
		s.writeError(w, upstreamStatus(err), "search_failed", err.Error())
		return
	}

	out := make([]SearchResult, 0, len(results))
	for _, res := range results {
		out = append(out, toSearchResult(res))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// HandleReverse answers GET /reverse?lat=...&lon=....
func (s *Server) HandleReverse(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	lat, latErr := strconv.ParseFloat(params.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(params.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_coordinates", "lat and lon must be numbers")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		s.writeError(w, http.StatusBadRequest, "invalid_coordinates", "lat/lon out of range")
		return
	}

	result, err := s.geocoder.ReverseGeocode(r.Context(), lat, lon, s.requestCountry(r))
	if err != nil {
		s.logger.Errorf("reverse geocode (%f, %f) failed: %v", lat, lon, err)
		s.writeError(w, upstreamStatus(err), "reverse_failed", err.Error())
		return
	}
	if result == nil {
		s.writeError(w, http.StatusNotFound, "no_division", "no division contains this point")
		return
	}

	s.writeJSON(w, http.StatusOK, toReverseResult(*result))
}

// HandleHealth answers GET /health.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.APIVersion(),
	})
}

func (s *Server) requestCountry(r *http.Request) string {
	if country := r.URL.Query().Get("country"); country != "" {
		return strings.ToUpper(country)
	}
	return strings.ToUpper(r.Header.Get("CF-IPCountry"))
}

// upstreamStatus maps catalog/shard failures to 502 since they indicate a
// broken published dataset rather than a bad request or a bug here.
func upstreamStatus(err error) int {
	if errors.Is(err, geocoder.ErrNotFound) || errors.Is(err, geocoder.ErrParse) || errors.Is(err, geocoder.ErrIndex) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
