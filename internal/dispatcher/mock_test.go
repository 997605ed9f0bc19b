package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/log"
)

var errBackend = errors.New("backend unavailable")

// memCalendar is an in-memory calendar.Repository.
type memCalendar struct {
	events  map[string]model.Event
	nextID  int
	failAll bool
	created []calendar.CreateEventOptions
	updated []calendar.UpdateEventOptions
}

func newMemCalendar(events ...model.Event) *memCalendar {
	m := &memCalendar{events: map[string]model.Event{}}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *memCalendar) CreateEvent(ctx context.Context, opt calendar.CreateEventOptions) (model.Event, error) {
	m.created = append(m.created, opt)
	if m.failAll {
		return model.Event{}, errBackend
	}
	m.nextID++
	e := model.Event{
		ID:          fmt.Sprintf("new-%d", m.nextID),
		Title:       opt.Title,
		Start:       opt.Start,
		End:         opt.End,
		Location:    opt.Location,
		Attendees:   opt.Attendees,
		Description: opt.Description,
	}
	m.events[e.ID] = e
	return e, nil
}

func (m *memCalendar) UpdateEvent(ctx context.Context, id string, opt calendar.UpdateEventOptions) (model.Event, error) {
	m.updated = append(m.updated, opt)
	if m.failAll {
		return model.Event{}, errBackend
	}
	e, ok := m.events[id]
	if !ok {
		return model.Event{}, calendar.ErrEventNotFound
	}
	if opt.Title != nil {
		e.Title = *opt.Title
	}
	if opt.Start != nil {
		e.Start = *opt.Start
	}
	if opt.End != nil {
		e.End = *opt.End
	}
	if opt.Location != nil {
		e.Location = *opt.Location
	}
	if opt.Description != nil {
		e.Description = *opt.Description
	}
	if opt.Attendees != nil {
		e.Attendees = opt.Attendees
	}
	m.events[id] = e
	return e, nil
}

func (m *memCalendar) DeleteEvent(ctx context.Context, id string) error {
	if m.failAll {
		return errBackend
	}
	if _, ok := m.events[id]; !ok {
		return calendar.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memCalendar) GetEvent(ctx context.Context, id string) (model.Event, error) {
	if m.failAll {
		return model.Event{}, errBackend
	}
	e, ok := m.events[id]
	if !ok {
		return model.Event{}, calendar.ErrEventNotFound
	}
	return e, nil
}

func (m *memCalendar) ListEvents(ctx context.Context, opt calendar.ListEventsOptions) ([]model.Event, error) {
	if m.failAll {
		return nil, errBackend
	}
	var out []model.Event
	for _, e := range m.events {
		if e.End.After(opt.From) && e.Start.Before(opt.To) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// mockText answers GenerateText.
type mockText struct {
	reply   string
	err     error
	prompts []string
}

func (m *mockText) ExtractIntent(ctx context.Context, req nlu.ExtractRequest) (json.RawMessage, error) {
	return nil, errors.New("unused")
}

func (m *mockText) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

func (m *mockText) FindMatchingEvent(ctx context.Context, query string, candidates []model.Event, turns []model.Turn) (nlu.MatchResult, error) {
	return nlu.MatchResult{}, errors.New("unused")
}

var testNow = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

func newTestDispatcher(cal calendar.Repository, text nlu.Client) *implDispatcher {
	dm, err := datemath.NewParser("UTC")
	if err != nil {
		panic(err)
	}
	d := New(log.NewNop(), cal, text, dm, Config{}).(*implDispatcher)
	d.now = func() time.Time { return testNow }
	return d
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 11, day, hour, minute, 0, 0, time.UTC)
}
