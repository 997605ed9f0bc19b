package datemath

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedDate is returned for date expressions the parser does not understand.
	ErrUnrecognizedDate = errors.New("unrecognized date")
	// ErrUnrecognizedTime is returned for clock expressions the parser does not understand.
	ErrUnrecognizedTime = errors.New("unrecognized time")
)

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
