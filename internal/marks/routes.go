package marks

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

		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleFaculty, auth.RoleStudent)).
			Get("/", ListHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleFaculty))
			r.Post("/", CreateHandler)
			r.Patch("/{id}", UpdateHandler)
			r.Delete("/{id}", DeleteHandler)
		})
	})

	return r
}
