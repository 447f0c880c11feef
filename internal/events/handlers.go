package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func parseDate(value string) (string, bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// ListHandler returns events soonest-first. upcoming=true hides past events.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&Event{})

	if r.URL.Query().Get("upcoming") == "true" {
		query = query.Where("event_date >= ?", time.Now().Format("2006-01-02"))
	}
	if eventType := r.URL.Query().Get("event_type"); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	var events []Event
	if err := query.Order("event_date ASC").Find(&events).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

func CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		EventType   string `json:"event_type"`
		EventDate   string `json:"event_date"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		Location    string `json:"location"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	date, ok := parseDate(input.EventDate)
	if !ok {
		http.Error(w, "event_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if input.EventType == "" {
		input.EventType = TypeOther
	}
	if !ValidType(input.EventType) {
		http.Error(w, "Invalid event_type", http.StatusBadRequest)
		return
	}

	createdBy, _ := utils.GetUserIDFromContext(r.Context())

	event := Event{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		EventType:   input.EventType,
		EventDate:   date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Location:    input.Location,
		CreatedBy:   createdBy,
	}

	if err := db.DB.Create(&event).Error; err != nil {
		http.Error(w, "Failed to create event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(event)
}

func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var event Event
	if err := db.DB.First(&event, "id = ?", id).Error; err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		EventType   *string `json:"event_type"`
		EventDate   *string `json:"event_date"`
		StartTime   *string `json:"start_time"`
		EndTime     *string `json:"end_time"`
		Location    *string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.EventType != nil {
		if !ValidType(*input.EventType) {
			http.Error(w, "Invalid event_type", http.StatusBadRequest)
			return
		}
		updates["event_type"] = *input.EventType
	}
	if input.EventDate != nil {
		date, ok := parseDate(*input.EventDate)
		if !ok {
			http.Error(w, "event_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		updates["event_date"] = date
	}
	if input.StartTime != nil {
		updates["start_time"] = *input.StartTime
	}
	if input.EndTime != nil {
		updates["end_time"] = *input.EndTime
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&event).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update event", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Where("id = ?", id).Delete(&Event{})
	if result.Error != nil {
		http.Error(w, "Failed to delete event", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Event deleted")
}
