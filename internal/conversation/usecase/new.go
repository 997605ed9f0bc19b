package usecase

import (
	"time"

	"calendar-assistant/internal/continuation"
	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/dispatcher"
	"calendar-assistant/internal/intent"
	"calendar-assistant/internal/session"
	"calendar-assistant/internal/validator"
	pkgLog "calendar-assistant/pkg/log"
)

// Config tunes the orchestrator.
type Config struct {
	HistoryLimit   int
	PendingTTL     time.Duration
	MessageTimeout time.Duration
	MaxMessageLen  int
}

// Deps are the pipeline stages the orchestrator drives.
type Deps struct {
	Sessions     session.Store
	Extractor    *intent.Extractor
	Splitter     *intent.Splitter
	Validator    validator.Validator
	Dispatcher   dispatcher.Dispatcher
	Continuation continuation.Handler
	Metrics      *Metrics
}

type implUseCase struct {
	l            pkgLog.Logger
	sessions     session.Store
	extractor    *intent.Extractor
	splitter     *intent.Splitter
	validator    validator.Validator
	dispatcher   dispatcher.Dispatcher
	continuation continuation.Handler
	metrics      *Metrics
	cfg          Config
	now          func() time.Time
}

var _ conversation.UseCase = (*implUseCase)(nil)

// New creates the conversation UseCase.
func New(l pkgLog.Logger, deps Deps, cfg Config) conversation.UseCase {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = session.DefaultHistoryLimit
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = DefaultPendingTTL
	}
	if cfg.MaxMessageLen <= 0 {
		cfg.MaxMessageLen = DefaultMaxMessageLen
	}
	return &implUseCase{
		l:            l,
		sessions:     deps.Sessions,
		extractor:    deps.Extractor,
		splitter:     deps.Splitter,
		validator:    deps.Validator,
		dispatcher:   deps.Dispatcher,
		continuation: deps.Continuation,
		metrics:      deps.Metrics,
		cfg:          cfg,
		now:          time.Now,
	}
}
