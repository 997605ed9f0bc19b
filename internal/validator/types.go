package validator

import (
	"time"

	"calendar-assistant/internal/resolver"
	pkgLog "calendar-assistant/pkg/log"
)

// Mode tells Validate whether it runs for a whole message or one step of a
// compound message.
type Mode int

const (
	ModeSingle Mode = iota
	ModeStep
)

type implValidator struct {
	l        pkgLog.Logger
	resolver resolver.Resolver
	now      func() time.Time
}
