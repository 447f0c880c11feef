package notices

import (
	"log"

	"github.com/SmartAcademic/SA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_notices"); err != nil {
		log.Fatal("Failed to ensure schema app_notices: ", err)
	}

	if err := db.DB.AutoMigrate(&Notice{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
