package middleware

import (
	"calendar-assistant/pkg/log"
)

// Config tunes the chat middlewares.
type Config struct {
	// RateLimitPerMin is the sustained number of messages one user may send
	// per minute. Zero disables rate limiting.
	RateLimitPerMin int
}

type Middleware struct {
	l       log.Logger
	limiter *Limiter
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{l: l}
	if cfg.RateLimitPerMin > 0 {
		mw.limiter = NewLimiter(cfg.RateLimitPerMin)
	}
	return mw
}

// Limiter returns the shared per-user limiter, or nil when disabled.
func (mw Middleware) Limiter() *Limiter {
	return mw.limiter
}
