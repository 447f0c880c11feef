package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/events"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seedEvent struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	EventDate   string `yaml:"event_date"`
	EventType   string `yaml:"event_type"`
	Location    string `yaml:"location"`
}

func SeedEvents() error {
	file, err := os.ReadFile("internal/seeds/data/events.yaml")
	if err != nil {
		return fmt.Errorf("could not read events.yaml: %w", err)
	}

	var items []seedEvent
	if err := yaml.Unmarshal(file, &items); err != nil {
		return fmt.Errorf("failed to parse events.yaml: %w", err)
	}

	created := 0
	for _, e := range items {
		if !events.ValidType(e.EventType) {
			return fmt.Errorf("event %s has invalid type %q", e.Title, e.EventType)
		}

		var existing events.Event
		err := db.DB.First(&existing, "title = ? AND event_date = ?", e.Title, e.EventDate).Error
		if err == nil {
			log.Printf("⚠️ Event exists, skipping: %s", e.Title)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on event %s: %w", e.Title, err)
		}

		event := events.Event{
			ID:          uuid.NewString(),
			Title:       e.Title,
			Description: e.Description,
			EventDate:   e.EventDate,
			EventType:   e.EventType,
			Location:    e.Location,
		}
		if err := db.DB.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create event %s: %w", e.Title, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d events", created)
	return nil
}
