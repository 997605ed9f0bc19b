package nlu

import "errors"

var (
	ErrMalformedResponse = errors.New("malformed model response")
	ErrNoCandidates      = errors.New("no candidate events")
)
