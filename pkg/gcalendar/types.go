package gcalendar

import (
	"errors"
	"time"
)

// DefaultCalendarID is used when a request leaves CalendarID empty.
const DefaultCalendarID = "primary"

// ErrNotFound is returned when the API answers 404 or 410 for an event.
var ErrNotFound = errors.New("calendar event not found")

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	Location    string
	Attendees   []string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Europe/Berlin"
}

// PatchEventRequest carries the fields to change; nil pointers are left untouched.
type PatchEventRequest struct {
	CalendarID  string
	EventID     string
	Summary     *string
	Description *string
	Location    *string
	Attendees   []string // replaces the attendee list when non-nil
	StartTime   *time.Time
	EndTime     *time.Time
	Timezone    string
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	Attendees   []string
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}
