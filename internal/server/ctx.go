package server

import (
	"net/http"

	"github.com/woozymasta/geokit/internal/config"
	"github.com/woozymasta/geokit/internal/geo"
	"github.com/woozymasta/geokit/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config   *config.Config
	Decoder  geo.Decoder
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewServerContext registers the service metrics on a fresh registry.
func NewServerContext(cfg *config.Config) *ServerContext {
	if cfg == nil {
		cfg = config.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log.Info().
		Int64("max_body_bytes", cfg.MaxBodyBytes).
		Int("equivalence_limit", cfg.EquivalenceLimit).
		Msg("Server context initialized")

	return &ServerContext{
		Config:   cfg,
		Metrics:  metrics.NewMetrics(reg),
		Gatherer: reg,
	}
}

// Routes returns the service handler wrapped in the request logger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/decode", s.HandleDecode)
	mux.HandleFunc("POST /api/normalize", s.HandleNormalize)
	mux.HandleFunc("POST /api/validate", s.HandleValidate)
	mux.HandleFunc("POST /api/equivalent", s.HandleEquivalent)
	mux.HandleFunc("GET /healthz", s.HandleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	return RequestLogger(s.Metrics, mux)
}
