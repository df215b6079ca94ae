package routes

import (
	"abrigo/backend/internal/api"
	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies, limiter *middleware.RateLimiter) {

	r.Route("/api/v1", func(v1 chi.Router) {

		// Public self-service, rate limited per IP
		v1.Group(func(public chi.Router) {
			public.Use(limiter.Middleware)
			public.Post("/users", handlers.RegisterUser())
			public.Post("/users/{user_id}/adotante", handlers.GrantAdotante())
		})

		// Everything else needs an acting user
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Services.Tokens, deps.Repo.Keys))

			authed.Get("/users/{user_id}", handlers.GetUser())
			authed.Get("/users/{user_id}/memberships", handlers.GetUserMemberships())
			authed.Post("/users/{user_id}/superadmin", handlers.PromoteUser())
			authed.Post("/users/{user_id}/roles/reconcile", handlers.ReconcileRoles())
			authed.With(middleware.RequireRoles(deps.Services.Gate, constants.RevokeAdotanteAllowed)).
				Delete("/users/{user_id}/adotante", handlers.RevokeAdotante())

			authed.Route("/projects", func(p chi.Router) {
				p.Post("/", handlers.CreateProject())
				p.Get("/", handlers.ListProjects())
				p.Get("/{project_id}", handlers.GetProject())
				p.Patch("/{project_id}", handlers.UpdateProject())
				p.Delete("/{project_id}", handlers.DeactivateProject())
			})

			authed.Route("/memberships/{role}", func(m chi.Router) {
				m.Post("/", handlers.GrantMembership())
				m.Get("/projects/{project_id}", handlers.ListMembershipsByProject())
				m.Get("/users/{user_id}", handlers.ListMembershipsByUser())
				m.Get("/users/{user_id}/projects/{project_id}", handlers.GetMembership())
				m.Patch("/users/{user_id}/projects/{project_id}", handlers.UpdateMembership())
				m.Delete("/users/{user_id}/projects/{project_id}", handlers.RevokeMembership())
			})
		})
	})
}
