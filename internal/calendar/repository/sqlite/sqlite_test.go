package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/repository/sqlite"
	"calendar-assistant/pkg/log"
)

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "data", "calendar.db"), time.UTC, log.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func strPtr(s string) *string { return &s }

func TestCreateGetUpdateDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	start := time.Date(2025, 11, 3, 14, 0, 0, 0, time.UTC)

	created, err := repo.CreateEvent(ctx, calendar.CreateEventOptions{
		Title:     "Sync",
		Start:     start,
		End:       start.Add(time.Hour),
		Attendees: []string{"a@example.com"},
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := repo.GetEvent(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.Title != "Sync" || !got.Start.Equal(start) || len(got.Attendees) != 1 {
		t.Errorf("unexpected event: %+v", got)
	}

	newStart := start.Add(2 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	updated, err := repo.UpdateEvent(ctx, created.ID, calendar.UpdateEventOptions{
		Start:     &newStart,
		End:       &newEnd,
		Location:  strPtr("Room 4"),
		Attendees: []string{"a@example.com", "b@example.com"},
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Title != "Sync" {
		t.Errorf("title should be untouched, got %q", updated.Title)
	}
	if !updated.Start.Equal(newStart) || updated.Location != "Room 4" || len(updated.Attendees) != 2 {
		t.Errorf("unexpected update: %+v", updated)
	}

	if err := repo.DeleteEvent(ctx, created.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := repo.GetEvent(ctx, created.ID); !errors.Is(err, calendar.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound after delete, got %v", err)
	}
	if err := repo.DeleteEvent(ctx, created.ID); !errors.Is(err, calendar.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound on second delete, got %v", err)
	}
	if _, err := repo.UpdateEvent(ctx, created.ID, calendar.UpdateEventOptions{Title: strPtr("x")}); !errors.Is(err, calendar.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound on update, got %v", err)
	}
}

func TestListEventsWindow(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	day := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"Standup", "Lunch", "Retro"} {
		start := day.Add(time.Duration(9+3*i) * time.Hour)
		if _, err := repo.CreateEvent(ctx, calendar.CreateEventOptions{Title: title, Start: start, End: start.Add(time.Hour)}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}
	if _, err := repo.CreateEvent(ctx, calendar.CreateEventOptions{Title: "Tomorrow", Start: day.AddDate(0, 0, 1).Add(9 * time.Hour), End: day.AddDate(0, 0, 1).Add(10 * time.Hour)}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := repo.ListEvents(ctx, calendar.ListEventsOptions{From: day, To: day.AddDate(0, 0, 1)})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events on the day, got %d", len(events))
	}
	if events[0].Title != "Standup" || events[2].Title != "Retro" {
		t.Errorf("expected start order, got %s..%s", events[0].Title, events[2].Title)
	}

	if _, err := repo.ListEvents(ctx, calendar.ListEventsOptions{From: day, To: day.Add(-time.Hour)}); !errors.Is(err, calendar.ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.db")
	ctx := context.Background()
	start := time.Date(2025, 11, 3, 14, 0, 0, 0, time.UTC)

	repo, err := sqlite.New(ctx, path, time.UTC, log.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	created, err := repo.CreateEvent(ctx, calendar.CreateEventOptions{Title: "Sync", Start: start, End: start.Add(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	repo.Close()

	reopened, err := sqlite.New(ctx, path, time.UTC, log.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if _, err := reopened.GetEvent(ctx, created.ID); err != nil {
		t.Errorf("expected event to survive reopen: %v", err)
	}
}
