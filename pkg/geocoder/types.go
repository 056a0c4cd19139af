// Package geocoder contains the domain types and the ranking pipeline for
// division lookups: query preparation, population-aware scoring, cross-shard
// merging and location-bias re-ranking. It has no I/O of its own; shards are
// fetched and queried by the shard and index packages.
package geocoder

// DefaultLimit is the number of results returned when a query does not ask
// for a specific limit.
const DefaultLimit = 10

// BiasKind discriminates the active variant of a LocationBias.
type BiasKind int

const (
	// BiasNone applies no re-ranking.
	BiasNone BiasKind = iota
	// BiasCountry elevates results whose country matches the bias code.
	BiasCountry
)

// LocationBias is a tagged re-ranking hint. Exactly one kind is active.
type LocationBias struct {
	Kind    BiasKind
	Country string
}

// NoBias returns the no-op bias.
func NoBias() LocationBias {
	return LocationBias{Kind: BiasNone}
}

// CountryBias returns a bias that elevates results from the given ISO country
// code.
func CountryBias(code string) LocationBias {
	return LocationBias{Kind: BiasCountry, Country: code}
}

// Query describes a free-text division lookup.
type Query struct {
	Text         string
	Limit        int
	Autocomplete bool
	Bias         LocationBias
}

// NewQuery creates a query with the default limit and no bias.
func NewQuery(text string) Query {
	return Query{
		Text:  text,
		Limit: DefaultLimit,
		Bias:  NoBias(),
	}
}

// WithLimit returns a copy of the query with the given result limit.
// Values below 1 are coerced to 1.
func (q Query) WithLimit(limit int) Query {
	if limit < 1 {
		limit = 1
	}
	q.Limit = limit
	return q
}

// WithAutocomplete returns a copy of the query with prefix matching enabled
// for the final token.
func (q Query) WithAutocomplete(enabled bool) Query {
	q.Autocomplete = enabled
	return q
}

// WithBias returns a copy of the query with the given location bias.
func (q Query) WithBias(bias LocationBias) Query {
	q.Bias = bias
	return q
}

// Bbox is an axis-aligned bounding rectangle in lon/lat degrees.
type Bbox struct {
	Xmin float64 `json:"xmin"`
	Ymin float64 `json:"ymin"`
	Xmax float64 `json:"xmax"`
	Ymax float64 `json:"ymax"`
}

// Contains reports whether the point lies inside the box (edges inclusive).
func (b Bbox) Contains(lat, lon float64) bool {
	return b.Xmin <= lon && lon <= b.Xmax && b.Ymin <= lat && lat <= b.Ymax
}

// DivisionRow is a raw full-text match as returned by a single shard, before
// population boosting. BM25Score follows the index engine's convention:
// lower is a better match.
type DivisionRow struct {
	RowID       int64
	GersID      string
	Type        string
	PrimaryName string
	Lat         float64
	Lon         float64
	Bbox        Bbox
	Population  int64
	Country     string
	Region      string
	BM25Score   float64
}

// Result converts the raw row into a public result, computing importance
// from the BM25 score and population.
func (r DivisionRow) Result() Result {
	return Result{
		GersID:      r.GersID,
		Type:        r.Type,
		PrimaryName: r.PrimaryName,
		Lat:         r.Lat,
		Lon:         r.Lon,
		Bbox:        r.Bbox,
		Population:  r.Population,
		Country:     r.Country,
		Region:      r.Region,
		Importance:  Importance(r.BM25Score, r.Population),
	}
}

// Result is a scored division match. Importance is higher-is-better.
type Result struct {
	GersID      string  `json:"gers_id"`
	Type        string  `json:"type"`
	PrimaryName string  `json:"primary_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Bbox        Bbox    `json:"bbox"`
	Population  int64   `json:"population,omitempty"`
	Country     string  `json:"country,omitempty"`
	Region      string  `json:"region,omitempty"`
	Importance  float64 `json:"importance"`
}

// ReverseResult is the smallest-area division containing a reverse-geocoded
// point.
type ReverseResult struct {
	GersID      string  `json:"gers_id"`
	Subtype     string  `json:"subtype"`
	PrimaryName string  `json:"primary_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Bbox        Bbox    `json:"bbox"`
	Area        float64 `json:"area"`
	Population  int64   `json:"population,omitempty"`
	Country     string  `json:"country,omitempty"`
	Region      string  `json:"region,omitempty"`
}
