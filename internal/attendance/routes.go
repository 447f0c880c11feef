package attendance

import (
	"net/http"

	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		// Resolves the caller's role into context; students only ever see
		// their own records inside ListHandler.
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleFaculty, auth.RoleStudent)).
			Get("/", ListHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleFaculty))
			r.Post("/", MarkHandler)
			r.Post("/batch", BatchMarkHandler)
		})
	})

	return r
}
