package attendance

import (
	"log"

	"github.com/SmartAcademic/SA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_attendance"); err != nil {
		log.Fatal("Failed to ensure schema app_attendance: ", err)
	}

	if err := db.DB.AutoMigrate(&Record{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
