package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"

	"github.com/socialchef/sous/internal/middleware"
	"github.com/socialchef/sous/internal/sentry"
)

const healthPath = "/health"

// Routes builds the router with the full middleware stack.
func (s *Server) Routes() http.Handler {
	serverName := s.cfg.ServiceName
	if serverName == "" {
		serverName = "sous"
	}

	r := chi.NewRouter()

	r.Use(otelchi.Middleware(serverName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != healthPath
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(serverName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(healthPath))
	r.Use(sentry.HTTPMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get(healthPath, s.HandleHealth)

	r.Get("/", s.HandleIndex)
	r.Post("/suggest", s.HandleSuggest)
	r.Post("/api/suggest", s.HandleSuggestAPI)

	return r
}
