package resolver

import (
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
	pkgLog "calendar-assistant/pkg/log"
)

// Status is the verdict of a resolution.
type Status string

const (
	StatusFound     Status = "found"
	StatusAmbiguous Status = "ambiguous"
	StatusNotFound  Status = "not_found"
)

// Resolution is the result of Resolve. Event is set only when Status is
// StatusFound. Events lists the competing candidates of an ambiguous match
// when the matcher names them; it is empty otherwise.
type Resolution struct {
	Status Status
	Event  *model.Event
	Events []model.Event
}

// Config tunes the resolver.
type Config struct {
	ConfidenceFloor float64
	Window          time.Duration
	ContextTurns    int
}

type implResolver struct {
	l       pkgLog.Logger
	cal     calendar.Repository
	matcher nlu.Client
	cfg     Config
	now     func() time.Time
}
