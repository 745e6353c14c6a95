// Package httpapi wires the HTTP surface of the service.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lunargrid/lunargrid/internal/transport/httpapi/handler"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi/middleware"
	"github.com/lunargrid/lunargrid/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	TransactionHandler *handler.TransactionHandler
	CategoryHandler    *handler.CategoryHandler
	GridHandler        *handler.GridHandler
	HealthHandler      *handler.HealthHandler
	JWTMiddleware      func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // 100 req/s with burst of 20

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				if cfg.TransactionHandler != nil {
					r.Post("/transactions", cfg.TransactionHandler.CreateTransaction)
					r.Get("/transactions", cfg.TransactionHandler.ListTransactions)
					r.Get("/transactions/{id}", cfg.TransactionHandler.GetTransaction)
					r.Put("/transactions/{id}", cfg.TransactionHandler.UpdateTransaction)
					r.Delete("/transactions/{id}", cfg.TransactionHandler.DeleteTransaction)
				}

				if cfg.CategoryHandler != nil {
					r.Get("/categories", cfg.CategoryHandler.ListCategories)
					r.Post("/categories", cfg.CategoryHandler.CreateCategory)
					r.Put("/categories/{id}", cfg.CategoryHandler.UpdateCategory)
					r.Delete("/categories/{id}", cfg.CategoryHandler.DeleteCategory)
				}

				if cfg.GridHandler != nil {
					r.Route("/grid/{year}/{month}", func(r chi.Router) {
						r.Get("/", cfg.GridHandler.GetMonth)
						r.Put("/expanded", cfg.GridHandler.SetExpandState)
						r.Post("/rows/{rowID}/toggle", cfg.GridHandler.ToggleRow)
						r.Post("/expand-all", cfg.GridHandler.ExpandAll)
						r.Post("/collapse-all", cfg.GridHandler.CollapseAll)
						r.Put("/cells/{category}/{subcategory}/{day}", cfg.GridHandler.EditCell)
						r.Delete("/cells/{category}/{subcategory}/{day}", cfg.GridHandler.ClearCell)
						r.Get("/orphans", cfg.GridHandler.GetOrphans)
						r.Delete("/orphans", cfg.GridHandler.CleanOrphans)
					})
				}
			})
		}
	})

	return r
}
