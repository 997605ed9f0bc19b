package continuation

import (
	"time"

	"calendar-assistant/internal/dispatcher"
	pkgLog "calendar-assistant/pkg/log"
)

// PatchKind names the field a follow-up message changes.
type PatchKind string

const (
	PatchAttendees   PatchKind = "attendees"
	PatchLocation    PatchKind = "location"
	PatchDescription PatchKind = "description"
)

// Patch is a recognised follow-up edit.
type Patch struct {
	Kind   PatchKind
	Emails []string
	Text   string
}

type implHandler struct {
	l          pkgLog.Logger
	dispatcher dispatcher.Dispatcher
	ttl        time.Duration
	now        func() time.Time
}
