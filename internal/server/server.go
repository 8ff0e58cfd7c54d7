package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

type Server struct {
	dashboard     *services.Dashboard
	router        chi.Router
	logger        *slog.Logger
	metrics       *observability.Metrics
	apiHandlers   *handlers.APIHandlers
	sseHandlers   *handlers.SSEHandlers
	chartHandlers *handlers.ChartHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(dashboard *services.Dashboard, logger *slog.Logger, templateHandlers *TemplateHandlers, metrics *observability.Metrics) *Server {
	s := &Server{
		dashboard:     dashboard,
		router:        chi.NewRouter(),
		logger:        logger,
		metrics:       metrics,
		apiHandlers:   handlers.NewAPIHandlers(dashboard, metrics, logger),
		sseHandlers:   handlers.NewSSEHandlers(dashboard, metrics, logger),
		chartHandlers: handlers.NewChartHandlers(dashboard, metrics, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	s.router.Use(middleware.Metrics(s.metrics))

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, r, s.logger, errors.NotFound("resource not found"))
	})

	// Dashboard routes
	s.router.Get("/", templateHandlers.Dashboard)
	s.router.Get("/health", s.apiHandlers.HandleHealth)
	s.router.Get("/admin/stats", s.apiHandlers.HandleStats)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// REST API endpoints
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/options", s.apiHandlers.HandleOptions)
		r.Get("/summary", s.apiHandlers.HandleSummary)
		r.Get("/sales-by-product-line", s.apiHandlers.HandleSalesByProductLine)
		r.Get("/sales-by-hour", s.apiHandlers.HandleSalesByHour)
		r.Get("/transactions", s.apiHandlers.HandleTransactions)
	})

	// Chart images
	s.router.Get("/charts/product-line.svg", s.chartHandlers.HandleProductLine)
	s.router.Get("/charts/hourly.svg", s.chartHandlers.HandleHourly)

	// Datastar SSE endpoints
	s.router.Get("/sse/filter", s.sseHandlers.HandleFilter)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
