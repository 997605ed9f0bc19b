package google

import (
	"context"
	"errors"
	"fmt"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/gcalendar"
	pkgLog "calendar-assistant/pkg/log"
)

const logPrefix = "google calendar repository"

type implRepository struct {
	client     *gcalendar.Client
	calendarID string
	timezone   string
	l          pkgLog.Logger
}

// New creates a calendar repository backed by Google Calendar.
func New(client *gcalendar.Client, calendarID, timezone string, l pkgLog.Logger) calendar.Repository {
	if calendarID == "" {
		calendarID = gcalendar.DefaultCalendarID
	}
	return &implRepository{
		client:     client,
		calendarID: calendarID,
		timezone:   timezone,
		l:          l,
	}
}

func (r *implRepository) CreateEvent(ctx context.Context, opt calendar.CreateEventOptions) (model.Event, error) {
	if opt.End.Before(opt.Start) {
		return model.Event{}, calendar.ErrInvalidEvent
	}

	ev, err := r.client.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  r.calendarID,
		Summary:     opt.Title,
		Description: opt.Description,
		Location:    opt.Location,
		Attendees:   opt.Attendees,
		StartTime:   opt.Start,
		EndTime:     opt.End,
		Timezone:    r.timezone,
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to create event: %v", logPrefix, err)
		return model.Event{}, err
	}
	return toModel(ev), nil
}

func (r *implRepository) UpdateEvent(ctx context.Context, id string, opt calendar.UpdateEventOptions) (model.Event, error) {
	if opt.IsEmpty() {
		return r.GetEvent(ctx, id)
	}

	ev, err := r.client.PatchEvent(ctx, gcalendar.PatchEventRequest{
		CalendarID:  r.calendarID,
		EventID:     id,
		Summary:     opt.Title,
		Description: opt.Description,
		Location:    opt.Location,
		Attendees:   opt.Attendees,
		StartTime:   opt.Start,
		EndTime:     opt.End,
		Timezone:    r.timezone,
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to update event %s: %v", logPrefix, id, err)
		return model.Event{}, mapErr(err)
	}
	return toModel(ev), nil
}

func (r *implRepository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.client.DeleteEvent(ctx, r.calendarID, id); err != nil {
		r.l.Errorf(ctx, "%s: failed to delete event %s: %v", logPrefix, id, err)
		return mapErr(err)
	}
	return nil
}

func (r *implRepository) GetEvent(ctx context.Context, id string) (model.Event, error) {
	ev, err := r.client.GetEvent(ctx, r.calendarID, id)
	if err != nil {
		return model.Event{}, mapErr(err)
	}
	return toModel(ev), nil
}

func (r *implRepository) ListEvents(ctx context.Context, opt calendar.ListEventsOptions) ([]model.Event, error) {
	if opt.To.Before(opt.From) {
		return nil, calendar.ErrInvalidWindow
	}

	events, err := r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: r.calendarID,
		TimeMin:    opt.From,
		TimeMax:    opt.To,
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to list events: %v", logPrefix, err)
		return nil, err
	}

	out := make([]model.Event, 0, len(events))
	for i := range events {
		out = append(out, toModel(&events[i]))
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, gcalendar.ErrNotFound) {
		return fmt.Errorf("%w: %v", calendar.ErrEventNotFound, err)
	}
	return err
}

func toModel(ev *gcalendar.Event) model.Event {
	return model.Event{
		ID:          ev.ID,
		Title:       ev.Summary,
		Start:       ev.StartTime,
		End:         ev.EndTime,
		Location:    ev.Location,
		Attendees:   ev.Attendees,
		Description: ev.Description,
		HTMLLink:    ev.HtmlLink,
	}
}
