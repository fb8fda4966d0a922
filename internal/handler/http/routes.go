package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// public surface: user lifecycle
	router.Route("/api/user", func(r chi.Router) {
		r.Post("/", h.createUser)
		r.Get("/{loginID}", h.viewUser)
		r.Patch("/{loginID}", h.editUser)
		r.Post("/{loginID}/activate", h.activateUser)
		r.Post("/{loginID}/deactivate", h.deactivateUser)
		r.Get("/{loginID}/audit", h.userAudit)
	})

	// internal surface: consumed by sibling services
	router.Route("/internal", func(r chi.Router) {
		r.Get("/users", h.listUsers)
		r.Get("/users/{loginID}", h.getUser)
		r.Post("/verify", h.verifyCredentials)
		r.Post("/validate-role", h.validateRole)
		r.Get("/roles/{userID}", h.getRole)
		r.Get("/status/{loginID}", h.getStatus)
		r.Post("/bulk-validate", h.bulkValidate)
	})

	router.Get("/health", h.healthCheck)

	return router
}
