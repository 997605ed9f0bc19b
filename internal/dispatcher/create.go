package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
)

func (d *implDispatcher) handleCreate(ctx context.Context, v model.ValidationResult, _ []model.Turn) model.ActionResult {
	f, _ := v.Bound.(model.CreateEventFields)

	day, err := d.dm.Parse(f.Date, d.now())
	if err != nil {
		return failure(model.KindClarification, fmt.Sprintf(MsgBadDate, f.Date))
	}
	clock, err := d.dm.ParseClock(f.Time)
	if err != nil {
		return failure(model.KindClarification, fmt.Sprintf(MsgBadTime, f.Time))
	}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		title = fmt.Sprintf(DefaultTitleFormat, f.Date, f.Time)
	}

	duration := f.Duration
	if duration <= 0 {
		duration = d.cfg.DefaultDurationMinutes
	}

	event, err := d.schedule(ctx, schedule{
		Title:       title,
		Start:       d.dm.Combine(day, clock),
		Duration:    time.Duration(duration) * time.Minute,
		Location:    f.Location,
		Attendees:   f.Attendees,
		Description: f.Description,
	})
	if err != nil {
		d.l.Errorf(ctx, "%s: failed to create %q: %v", LogPrefixCreate, title, err)
		return failure(model.KindCalendarAction, MsgCreateFailed)
	}

	msg := fmt.Sprintf(MsgCreated, event.Title, d.when(event.Start), minutes(event.Duration()))
	if len(event.Attendees) > 0 {
		msg = fmt.Sprintf(MsgCreatedWithGuests, event.Title, d.when(event.Start), minutes(event.Duration()), strings.Join(event.Attendees, ", "))
	}
	return model.ActionResult{Success: true, Kind: model.KindCalendarAction, Message: msg, Payload: event}
}

// schedule inserts s, inviting valid emails and noting the other names in
// the description.
func (d *implDispatcher) schedule(ctx context.Context, s schedule) (model.Event, error) {
	emails, others := d.splitAttendees(s.Attendees)
	return d.cal.CreateEvent(ctx, calendar.CreateEventOptions{
		Title:       s.Title,
		Start:       s.Start,
		End:         s.Start.Add(s.Duration),
		Location:    s.Location,
		Attendees:   emails,
		Description: withOtherAttendees(s.Description, others),
	})
}
