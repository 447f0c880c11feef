package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/SmartAcademic/SA-Backend/internal/academics"
	"github.com/SmartAcademic/SA-Backend/internal/attendance"
	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/dashboard"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/events"
	"github.com/SmartAcademic/SA-Backend/internal/marks"
	"github.com/SmartAcademic/SA-Backend/internal/middleware"
	"github.com/SmartAcademic/SA-Backend/internal/notices"
	"github.com/SmartAcademic/SA-Backend/internal/users"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	academics.Init()
	attendance.Init()
	marks.Init()
	notices.Init()
	events.Init()
	dashboard.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.RequestMetrics)
	r.Get("/", RootHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/users", users.SetupRoutes())
	r.Mount("/academics", academics.SetupRoutes())
	r.Mount("/attendance", attendance.SetupRoutes())
	r.Mount("/marks", marks.SetupRoutes())
	r.Mount("/notices", notices.SetupRoutes())
	r.Mount("/events", events.SetupRoutes())
	r.Mount("/dashboard", dashboard.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
