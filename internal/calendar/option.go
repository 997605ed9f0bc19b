package calendar

import "time"

// CreateEventOptions holds the parameters for creating an event.
type CreateEventOptions struct {
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Attendees   []string
	Description string
}

// UpdateEventOptions holds the fields to change. Nil pointers are left
// untouched; a non-nil Attendees replaces the whole list.
type UpdateEventOptions struct {
	Title       *string
	Start       *time.Time
	End         *time.Time
	Location    *string
	Attendees   []string
	Description *string
}

// IsEmpty reports whether the options change nothing.
func (o UpdateEventOptions) IsEmpty() bool {
	return o.Title == nil && o.Start == nil && o.End == nil &&
		o.Location == nil && o.Attendees == nil && o.Description == nil
}

// ListEventsOptions holds the time window to list.
type ListEventsOptions struct {
	From time.Time
	To   time.Time
}

// WindowAround returns the window of span on both sides of t.
func WindowAround(t time.Time, span time.Duration) ListEventsOptions {
	return ListEventsOptions{From: t.Add(-span), To: t.Add(span)}
}
