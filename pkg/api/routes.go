package api

import "net/http"

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /search", s.HandleSearch)
	mux.HandleFunc("GET /reverse", s.HandleReverse)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
