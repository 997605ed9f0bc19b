package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
	pkgLog "calendar-assistant/pkg/log"
)

const logPrefix = "sqlite calendar repository"

// Repository is a local calendar stored in a single SQLite file.
type Repository struct {
	db       *sql.DB
	location *time.Location
	l        pkgLog.Logger
}

// New opens (or creates) the database at dbPath and prepares the schema.
func New(ctx context.Context, dbPath string, location *time.Location, l pkgLog.Logger) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single writer avoids SQLITE_BUSY under concurrent users.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if location == nil {
		location = time.UTC
	}
	r := &Repository{db: db, location: location, l: l}
	if err := r.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return r, nil
}

func (r *Repository) initSchema(ctx context.Context) error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		start_at INTEGER NOT NULL,
		end_at INTEGER NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		attendees_json TEXT NOT NULL DEFAULT '[]',
		description TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at);
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping verifies database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) CreateEvent(ctx context.Context, opt calendar.CreateEventOptions) (model.Event, error) {
	if opt.End.Before(opt.Start) {
		return model.Event{}, calendar.ErrInvalidEvent
	}

	ev := model.Event{
		ID:          uuid.NewString(),
		Title:       opt.Title,
		Start:       opt.Start.In(r.location),
		End:         opt.End.In(r.location),
		Location:    opt.Location,
		Attendees:   opt.Attendees,
		Description: opt.Description,
	}
	attendees, err := encodeAttendees(ev.Attendees)
	if err != nil {
		return model.Event{}, err
	}

	now := time.Now().Unix()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO events (id, title, start_at, end_at, location, attendees_json, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Title, ev.Start.Unix(), ev.End.Unix(), ev.Location, attendees, ev.Description, now, now,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to insert event: %v", logPrefix, err)
		return model.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return ev, nil
}

func (r *Repository) UpdateEvent(ctx context.Context, id string, opt calendar.UpdateEventOptions) (model.Event, error) {
	var sets []string
	var args []any

	if opt.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *opt.Title)
	}
	if opt.Start != nil {
		sets = append(sets, "start_at = ?")
		args = append(args, opt.Start.Unix())
	}
	if opt.End != nil {
		sets = append(sets, "end_at = ?")
		args = append(args, opt.End.Unix())
	}
	if opt.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *opt.Location)
	}
	if opt.Attendees != nil {
		attendees, err := encodeAttendees(opt.Attendees)
		if err != nil {
			return model.Event{}, err
		}
		sets = append(sets, "attendees_json = ?")
		args = append(args, attendees)
	}
	if opt.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *opt.Description)
	}

	if len(sets) == 0 {
		return r.GetEvent(ctx, id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().Unix(), id)

	res, err := r.db.ExecContext(ctx, "UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to update event %s: %v", logPrefix, id, err)
		return model.Event{}, fmt.Errorf("update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Event{}, calendar.ErrEventNotFound
	}

	ev, err := r.GetEvent(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	if ev.End.Before(ev.Start) {
		r.l.Warnf(ctx, "%s: event %s now ends before it starts", logPrefix, id)
	}
	return ev, nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to delete event %s: %v", logPrefix, id, err)
		return fmt.Errorf("delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendar.ErrEventNotFound
	}
	return nil
}

func (r *Repository) GetEvent(ctx context.Context, id string) (model.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, start_at, end_at, location, attendees_json, description
		FROM events WHERE id = ?`, id)

	ev, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, calendar.ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("scan event row: %w", err)
	}
	return ev, nil
}

func (r *Repository) ListEvents(ctx context.Context, opt calendar.ListEventsOptions) ([]model.Event, error) {
	if opt.To.Before(opt.From) {
		return nil, calendar.ErrInvalidWindow
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, start_at, end_at, location, attendees_json, description
		FROM events
		WHERE start_at < ? AND end_at > ?
		ORDER BY start_at, id`, opt.To.Unix(), opt.From.Unix())
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		ev, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scan(s scanner) (model.Event, error) {
	var ev model.Event
	var startAt, endAt int64
	var attendees string

	if err := s.Scan(&ev.ID, &ev.Title, &startAt, &endAt, &ev.Location, &attendees, &ev.Description); err != nil {
		return model.Event{}, err
	}

	ev.Start = time.Unix(startAt, 0).In(r.location)
	ev.End = time.Unix(endAt, 0).In(r.location)
	if err := json.Unmarshal([]byte(attendees), &ev.Attendees); err != nil {
		r.l.Warnf(context.Background(), "%s: bad attendees for %s: %v", logPrefix, ev.ID, err)
	}
	if len(ev.Attendees) == 0 {
		ev.Attendees = nil
	}
	return ev, nil
}

func encodeAttendees(attendees []string) (string, error) {
	if attendees == nil {
		attendees = []string{}
	}
	b, err := json.Marshal(attendees)
	if err != nil {
		return "", fmt.Errorf("encode attendees: %w", err)
	}
	return string(b), nil
}

var _ calendar.Repository = (*Repository)(nil)
