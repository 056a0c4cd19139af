// Package api exposes the geocoder over HTTP: GET /search for text queries,
// GET /reverse for coordinate lookups and GET /health.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brad-richardson/overture-geocode/pkg/geocoder"
	"github.com/brad-richardson/overture-geocode/pkg/log"
)

// Geocoder is the query surface the server fronts. *shard.Service is the
// production implementation.
type Geocoder interface {
	Search(ctx context.Context, query geocoder.Query, countryHint string) ([]geocoder.Result, error)
	ReverseGeocode(ctx context.Context, lat, lon float64, countryHint string) (*geocoder.ReverseResult, error)
}

type Server struct {
	geocoder     Geocoder
	defaultLimit int
	logger       *log.Logger
}

// NewServer creates a server over the given geocoder. defaultLimit applies
// to searches that do not pass one.
func NewServer(g Geocoder, defaultLimit int) *Server {
	if defaultLimit < 1 {
		defaultLimit = geocoder.DefaultLimit
	}
	return &Server{
		geocoder:     g,
		defaultLimit: defaultLimit,
		logger:       log.ForService("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, errName, message string) {
	s.writeJSON(w, status, ErrorResponse{
		Error:   errName,
		Message: message,
	})
}

// CorsMiddleware allows browser clients on any origin.
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
