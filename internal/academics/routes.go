package academics

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

		r.Get("/subjects", SubjectListHandler)
		r.Get("/enrollments", EnrollmentListHandler)
		r.Get("/assignments", AssignmentListHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware())
			r.Post("/subjects", CreateSubjectHandler)
			r.Patch("/subjects/{id}", UpdateSubjectHandler)
			r.Delete("/subjects/{id}", DeleteSubjectHandler)
			r.Post("/enrollments", EnrollHandler)
			r.Post("/assignments", AssignHandler)
		})
	})

	return r
}
