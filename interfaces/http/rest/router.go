package rest

import (
	"net/http"

	commandbus "coursemap-backend/application/commands/bus"
	querybus "coursemap-backend/application/queries/bus"
	"coursemap-backend/application/services"
	"coursemap-backend/infrastructure/config"
	"coursemap-backend/interfaces/http/rest/handlers"
	"coursemap-backend/interfaces/http/rest/middleware"
	"coursemap-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg          *config.Config
	commandBus   *commandbus.CommandBus
	queryBus     *querybus.QueryBus
	catalogs     *services.CatalogService
	sessions     *services.SessionService
	jwtValidator *auth.JWTValidator
	rateLimiter  *auth.SlidingWindowLimiter
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	catalogs *services.CatalogService,
	sessions *services.SessionService,
	jwtValidator *auth.JWTValidator,
	rateLimiter *auth.SlidingWindowLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		commandBus:   commandBus,
		queryBus:     queryBus,
		catalogs:     catalogs,
		sessions:     sessions,
		jwtValidator: jwtValidator,
		rateLimiter:  rateLimiter,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.coursemap.app"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(rt.rateLimiter))

		catalogHandler := handlers.NewCatalogHandler(rt.queryBus, rt.logger)
		graphHandler := handlers.NewGraphHandler(rt.queryBus, rt.catalogs, rt.logger)
		sessionHandler := handlers.NewSessionHandler(rt.sessions, rt.logger)

		// Catalogue endpoints
		r.Get("/programs", catalogHandler.ListPrograms)
		r.Get("/programs/{program}/graph", graphHandler.GetProgramGraph)
		r.Get("/graph", graphHandler.GetFullGraph)
		r.Get("/courses/{code}", catalogHandler.GetCourse)
		r.Get("/search", catalogHandler.Search)

		// View session endpoints
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Get("/{sessionID}", sessionHandler.Get)
			r.Post("/{sessionID}/events", sessionHandler.ApplyEvent)
		})

		// Admin endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(rt.jwtValidator, rt.logger))

			adminHandler := handlers.NewAdminHandler(rt.commandBus, rt.logger)
			r.Post("/catalog/reload", adminHandler.ReloadCatalog)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready once a catalog has been loaded
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if rt.catalogs.Version() == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"loading"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
