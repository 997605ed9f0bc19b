package continuation

import "time"

const (
	LogPrefix  = "internal.continuation.Handle"
	DefaultTTL = 30 * time.Minute
)
