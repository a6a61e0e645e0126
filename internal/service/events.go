package service

import (
	"context"
	"net/http"
	"time"

	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// EventService manages events
type EventService struct {
	api Doer
	now func() time.Time
}

// List returns the events of year; zero means the current year
func (s *EventService) List(ctx context.Context, year int) ([]types.Event, error) {
	if year == 0 {
		year = s.now().Year()
	}
	return get[[]types.Event](ctx, s.api, "/event/events_list", map[string]any{"year": year})
}

// Get returns one event
func (s *EventService) Get(ctx context.Context, eventID int) (*types.Event, error) {
	event, err := get[types.Event](ctx, s.api, "/event/event_details", map[string]any{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create creates an event
func (s *EventService) Create(ctx context.Context, event types.EventCreate) error {
	return send(ctx, s.api, client.Request{Method: http.MethodPost, Path: "/event/create_event", Body: event}, http.StatusCreated)
}

// Update applies a partial update
func (s *EventService) Update(ctx context.Context, event types.EventUpdate) error {
	return send(ctx, s.api, client.Request{Method: http.MethodPost, Path: "/event/update_event", Body: event}, http.StatusOK)
}
