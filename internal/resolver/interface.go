package resolver

import (
	"context"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
	pkgLog "calendar-assistant/pkg/log"
)

// Resolver maps a free-text event reference to a stored event.
type Resolver interface {
	Resolve(ctx context.Context, identifier string, history []model.Turn) Resolution
}

// New creates a Resolver over the calendar and the NLU matcher.
func New(l pkgLog.Logger, cal calendar.Repository, matcher nlu.Client, cfg Config) Resolver {
	if cfg.ConfidenceFloor <= 0 {
		cfg.ConfidenceFloor = DefaultConfidenceFloor
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.ContextTurns <= 0 {
		cfg.ContextTurns = DefaultContextTurns
	}
	return &implResolver{
		l:       l,
		cal:     cal,
		matcher: matcher,
		cfg:     cfg,
		now:     time.Now,
	}
}
