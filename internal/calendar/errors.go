package calendar

import "errors"

// Domain-specific errors for the calendar package.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidWindow = errors.New("list window end is before its start")
	ErrInvalidEvent  = errors.New("event end is before its start")
)
