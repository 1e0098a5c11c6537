// ABOUTME: HTTP server wiring for the portfolio content API
// ABOUTME: chi router with CORS, rate limiting, logging, and auth-gated routes

package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/shuvo-dev/portfolio-server/internal/auth"
	"github.com/shuvo-dev/portfolio-server/internal/config"
	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// Server holds the dependencies for the portfolio content API
type Server struct {
	store       store.Store
	gate        *auth.Gate
	verifier    auth.TokenVerifier
	cfg         *config.Config
	logger      *slog.Logger
	validate    *validator.Validate
	rateLimiter *rateLimiter
}

// New creates a Server with the given store and auth gate
func New(st store.Store, gate *auth.Gate, verifier auth.TokenVerifier, cfg *config.Config) *Server {
	return &Server{
		store:       st,
		gate:        gate,
		verifier:    verifier,
		cfg:         cfg,
		logger:      slog.Default().With("component", "server"),
		validate:    validator.New(),
		rateLimiter: newRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests),
	}
}

// Close releases server resources
func (s *Server) Close() {
	s.rateLimiter.close()
}

// Router builds the full route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(s.rateLimiter.middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.With(auth.RequireAuth(s.verifier)).Get("/verify", s.handleVerify)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/config", s.handleGetConfig)
			r.Get("/projects", s.handleListProjects)
			r.Get("/skills", s.handleListSkills)
			r.Get("/social-links", s.handleListSocialLinks)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(s.verifier))
				r.Put("/config", s.handleUpdateConfig)
				r.Post("/projects", s.handleCreateProject)
				r.Put("/projects/{id}", s.handleUpdateProject)
				r.Delete("/projects/{id}", s.handleDeleteProject)
				r.Post("/skills", s.handleCreateSkill)
				r.Put("/skills/{id}", s.handleUpdateSkill)
				r.Delete("/skills/{id}", s.handleDeleteSkill)
				r.Put("/social-links", s.handleUpdateSocialLinks)
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", s.handleCreateMessage)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(s.verifier))
				r.Get("/", s.handleListMessages)
				r.Get("/stats/summary", s.handleMessageStats)
				r.Get("/{id}", s.handleGetMessage)
				r.Put("/{id}/read", s.handleMarkMessageRead)
				r.Put("/{id}/unread", s.handleMarkMessageUnread)
				r.Delete("/{id}", s.handleDeleteMessage)
			})
		})
	})

	return r
}

// handleHealth reports liveness and the configured environment name
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Server is running",
		Data:    map[string]string{"environment": s.cfg.Server.Environment},
	})
}
