package types

import "fmt"

// Event is an event as listed and detailed by the API
type Event struct {
	ID          int    `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Month       *int   `json:"month"`
	Day         *int   `json:"day"`
}

// DateLabel renders the known parts of the event date
func (e Event) DateLabel() string {
	switch {
	case e.Month != nil && e.Day != nil:
		return fmt.Sprintf("%02d/%02d/%d", *e.Day, *e.Month, e.Year)
	case e.Month != nil:
		return fmt.Sprintf("%02d/%d", *e.Month, e.Year)
	default:
		return fmt.Sprintf("%d", e.Year)
	}
}

// EventCreate is the create request
type EventCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Month       *int   `json:"month"`
	Day         *int   `json:"day"`
}

// Validate mirrors the server's bounds
func (e EventCreate) Validate() error {
	checks := []error{
		Required("name", e.Name),
		MaxLen("name", e.Name, 45),
		Required("description", e.Description),
		MaxLen("description", e.Description, 45),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if e.Year <= 0 {
		return &FieldError{Field: "year", Message: "debe ser positivo"}
	}
	if e.Month != nil && (*e.Month < 1 || *e.Month > 12) {
		return &FieldError{Field: "month", Message: "debe estar entre 1 y 12"}
	}
	if e.Day != nil && (*e.Day < 1 || *e.Day > 31) {
		return &FieldError{Field: "day", Message: "debe estar entre 1 y 31"}
	}
	return nil
}

// EventUpdate is the partial update request
type EventUpdate struct {
	ID          int     `json:"event_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Year        *int    `json:"year"`
	Month       *int    `json:"month"`
	Day         *int    `json:"day"`
}
