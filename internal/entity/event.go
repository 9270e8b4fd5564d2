package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEventNotFound = errors.New("event not found")

// Event is a calendar entry (visit, call, demo) linked to a contact. It has
// no pipeline invariants; it only reads/writes its own record.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM
	Type        string    `json:"type"` // visita, call, demo
	Contact     string    `json:"contact,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewEvent(title, date, timeOfDay, eventType, createdBy string) (*Event, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}
	return &Event{
		ID:        uuid.New().String(),
		Title:     title,
		Date:      date,
		Time:      timeOfDay,
		Type:      eventType,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}, nil
}
