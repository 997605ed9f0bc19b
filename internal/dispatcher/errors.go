package dispatcher

import "errors"

var (
	ErrUnsupportedIntent = errors.New("no handler for intent")
)
