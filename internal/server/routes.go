package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tubeideas/internal/handlers"
	"tubeideas/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.RequestLogger)
	r.Use(middlewares.Instrument)
	r.Use(middlewares.Cors(s.cfg.AllowedOrigins))

	ch := handlers.NewCommonHandler(s.cfg)
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET", "OPTIONS")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.registerAnalyzeRoutes(r)

	return r
}

func (s *Server) registerAnalyzeRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.Limit)

	ah := handlers.NewAnalyzeHandler(s.analyzer, s.cfg.AnalyzeTimeout)
	api.HandleFunc("/analyze", ah.Analyze).Methods("POST", "OPTIONS")
}
