package auth

import (
	"net/http"

	"github.com/SmartAcademic/SA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(10))
		r.Post("/register", RegisterHandler)
		r.Post("/login", LoginHandler)
	})

	r.Post("/refresh", RefreshHandler)
	r.Post("/logout", LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/session", SessionHandler)
		r.Get("/me", MeHandler)
		r.Patch("/me", UpdateProfileHandler)
		r.Post("/password", UpdatePasswordHandler)
	})

	return r
}
