package marks

import (
	"log"

	"github.com/SmartAcademic/SA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_marks"); err != nil {
		log.Fatal("Failed to ensure schema app_marks: ", err)
	}

	if err := db.DB.AutoMigrate(&Mark{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
