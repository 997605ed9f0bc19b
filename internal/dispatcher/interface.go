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

// Dispatcher executes validated intents against the calendar.
type Dispatcher interface {
	// Execute runs the handler of v.Intent. Collaborator failures come back
	// as unsuccessful results; the error is only set for intents with no
	// handler.
	Execute(ctx context.Context, v model.ValidationResult, history []model.Turn) (model.ActionResult, error)
}

// New creates a Dispatcher with a handler for every known intent.
func New(l pkgLog.Logger, cal calendar.Repository, text nlu.Client, dm *datemath.Parser, cfg Config) Dispatcher {
	d := &implDispatcher{
		l:        l,
		cal:      cal,
		nlu:      text,
		dm:       dm,
		validate: validator.New(),
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
	d.handlers = map[model.Intent]handlerFunc{
		model.IntentCreateEvent:    d.handleCreate,
		model.IntentUpdateEvent:    d.handleUpdate,
		model.IntentCancelEvent:    d.handleCancel,
		model.IntentPrepareEvent:   d.handlePrepare,
		model.IntentFollowupEvent:  d.handleFollowup,
		model.IntentListEvents:     d.handleList,
		model.IntentGetInformation: d.handleInformation,
		model.IntentHelpRequest:    d.handleHelp,
		model.IntentGeneralChat:    d.handleChat,
	}
	return d
}
