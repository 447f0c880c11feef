package events

import (
	"log"

	"github.com/SmartAcademic/SA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_events"); err != nil {
		log.Fatal("Failed to ensure schema app_events: ", err)
	}

	if err := db.DB.AutoMigrate(&Event{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
