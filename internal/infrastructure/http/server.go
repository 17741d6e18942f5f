package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/markethub/products-api/internal/domain"
	"github.com/markethub/products-api/internal/infrastructure/auth"
	"github.com/markethub/products-api/internal/infrastructure/config"
	"github.com/markethub/products-api/internal/infrastructure/http/handler"
	"github.com/markethub/products-api/internal/infrastructure/http/middleware"
	"github.com/markethub/products-api/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// Server represents the HTTP server.
type Server struct {
	router    *chi.Mux
	config    *config.ServerConfig
	handler   *handler.ProductHandler
	tokens    *auth.Manager
	repo      domain.ProductRepository
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	productHandler *handler.ProductHandler,
	tokens *auth.Manager,
	repo domain.ProductRepository,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		handler:   productHandler,
		tokens:    tokens,
		repo:      repo,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.HTTPRouteContext())

	meter := s.telemetry.MeterProvider.Meter("products-api")
	s.router.Use(middleware.ActiveRequests(meter))
}

// setupRoutes configures the product routes. Every /product route runs the
// authentication gate; the role, id-format and ownership gates are stacked
// per route exactly as the contract requires.
func (s *Server) setupRoutes() {
	s.router.Route("/product", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.tokens))

		seller := middleware.RequireRole(domain.RoleSeller)
		buyer := middleware.RequireRole(domain.RoleBuyer)

		r.With(seller).Post("/add", s.handler.AddProduct)
		r.With(middleware.RequireValidID).Get("/details/{id}", s.handler.GetProductDetails)
		r.With(seller, middleware.RequireValidID, middleware.RequireOwnership(s.repo)).
			Delete("/delete/{id}", s.handler.DeleteProduct)
		r.With(seller, middleware.RequireValidID, middleware.RequireOwnership(s.repo)).
			Put("/edit/{id}", s.handler.EditProduct)
		r.With(buyer).Post("/buyer/list", s.handler.ListForBuyer)
		r.With(seller).Post("/seller/list", s.handler.ListForSeller)
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint for the OpenTelemetry metrics.
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Handler returns the fully wired handler, wrapped with otelhttp for
// automatic HTTP metrics and tracing.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			routePattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					routePattern = pattern
				}
			}
			return []attribute.KeyValue{
				attribute.String("http.route", routePattern),
			}
		}),
	)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	s.logger.Info("Starting HTTP server",
		slog.String("address", addr),
	)

	return http.ListenAndServe(addr, s.Handler())
}
