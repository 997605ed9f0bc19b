package dispatcher

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
	"calendar-assistant/pkg/datemath"
	pkgLog "calendar-assistant/pkg/log"
)

// Config holds handler defaults.
type Config struct {
	DefaultDurationMinutes int
	FollowupDays           int
	ContextTurns           int
	ListWindow             time.Duration
}

func (c Config) withDefaults() Config {
	if c.DefaultDurationMinutes <= 0 {
		c.DefaultDurationMinutes = DefaultDurationMinutes
	}
	if c.FollowupDays <= 0 {
		c.FollowupDays = DefaultFollowupDays
	}
	if c.ContextTurns <= 0 {
		c.ContextTurns = DefaultContextTurns
	}
	if c.ListWindow <= 0 {
		c.ListWindow = DefaultListWindow
	}
	return c
}

type handlerFunc func(ctx context.Context, v model.ValidationResult, history []model.Turn) model.ActionResult

type implDispatcher struct {
	l        pkgLog.Logger
	cal      calendar.Repository
	nlu      nlu.Client
	dm       *datemath.Parser
	validate *validator.Validate
	cfg      Config
	now      func() time.Time
	handlers map[model.Intent]handlerFunc
}

// schedule is what create and followup both end up inserting.
type schedule struct {
	Title       string
	Start       time.Time
	Duration    time.Duration
	Location    string
	Attendees   []string
	Description string
}
