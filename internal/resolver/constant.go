package resolver

import "time"

const (
	LogPrefix = "internal.resolver.Resolve"

	DefaultConfidenceFloor = 0.6
	DefaultWindow          = 365 * 24 * time.Hour
	DefaultContextTurns    = 6
)
