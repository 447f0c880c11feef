package main

import (
	"log"

	"github.com/SmartAcademic/SA-Backend/internal/academics"
	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/events"
	"github.com/SmartAcademic/SA-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load(".env.local")
	db.Connect()

	auth.Init()
	academics.Init()
	events.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
