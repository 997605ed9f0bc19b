package calendar

import (
	"context"

	"calendar-assistant/internal/model"
)

// Repository is the calendar backend the assistant schedules into.
type Repository interface {
	CreateEvent(ctx context.Context, opt CreateEventOptions) (model.Event, error)
	// UpdateEvent applies the set fields of opt to event id and returns the stored event.
	UpdateEvent(ctx context.Context, id string, opt UpdateEventOptions) (model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (model.Event, error)
	// ListEvents returns events overlapping [From, To) ordered by start.
	ListEvents(ctx context.Context, opt ListEventsOptions) ([]model.Event, error)
}
