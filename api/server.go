/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend
  5. RateLimit:  Per-client token bucket (golang.org/x/time/rate)

SEE ALSO:
  - handlers.go: Handler implementations
  - ratelimit.go: Rate limit middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries the router's tunables.
type RouterConfig struct {
	CORSOrigins  []string
	RateLimitRPS float64
	RateBurst    int
}

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if cfg.RateLimitRPS > 0 {
		r.Use(RateLimit(NewClientLimiter(cfg.RateLimitRPS, cfg.RateBurst)))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/period", func(r chi.Router) {
			r.Get("/", h.SelectPeriod)
			r.Get("/state", h.GetState)
			r.Put("/budget", h.SetBudget)
			r.Put("/currency", h.SetCurrency)
			r.Put("/note", h.SetNote)

			r.Route("/entries", func(r chi.Router) {
				r.Post("/", h.AppendEntry)
				r.Delete("/", h.ClearPeriod)
				r.Put("/{index}", h.UpdateEntry)
				r.Delete("/{index}", h.RemoveEntry)
			})

			r.Get("/export", h.ExportCSV)
			r.Post("/import", h.ImportCSV)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
