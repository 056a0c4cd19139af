package api

import "github.com/brad-richardson/overture-geocode/pkg/geocoder"

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SearchResult is the wire form of a forward-geocode match. Boundingbox
// follows the [ymin, ymax, xmin, xmax] convention clients expect.
type SearchResult struct {
	GersID      string     `json:"gers_id"`
	PrimaryName string     `json:"primary_name"`
	Type        string     `json:"type"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Boundingbox [4]float64 `json:"boundingbox"`
	Importance  float64    `json:"importance"`
	Population  int64      `json:"population,omitempty"`
	Country     string     `json:"country,omitempty"`
	Region      string     `json:"region,omitempty"`
}

// ReverseResult is the wire form of a reverse-geocode match.
type ReverseResult struct {
	GersID      string     `json:"gers_id"`
	PrimaryName string     `json:"primary_name"`
	Subtype     string     `json:"subtype"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Boundingbox [4]float64 `json:"boundingbox"`
	Area        float64    `json:"area"`
	Population  int64      `json:"population,omitempty"`
	Country     string     `json:"country,omitempty"`
	Region      string     `json:"region,omitempty"`
}

// HealthResponse is the health-check body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func boundingbox(b geocoder.Bbox) [4]float64 {
	return [4]float64{b.Ymin, b.Ymax, b.Xmin, b.Xmax}
}

func toSearchResult(r geocoder.Result) SearchResult {
	return SearchResult{
		GersID:      r.GersID,
		PrimaryName: r.PrimaryName,
		Type:        r.Type,
		Lat:         r.Lat,
		Lon:         r.Lon,
		Boundingbox: boundingbox(r.Bbox),
		Importance:  r.Importance,
		Population:  r.Population,
		Country:     r.Country,
		Region:      r.Region,
	}
}

func toReverseResult(r geocoder.ReverseResult) ReverseResult {
	return ReverseResult{
		GersID:      r.GersID,
		PrimaryName: r.PrimaryName,
		Subtype:     r.Subtype,
		Lat:         r.Lat,
		Lon:         r.Lon,
		Boundingbox: boundingbox(r.Bbox),
		Area:        r.Area,
		Population:  r.Population,
		Country:     r.Country,
		Region:      r.Region,
	}
}
