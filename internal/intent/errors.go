package intent

import "errors"

var (
	ErrUnknownIntent = errors.New("unknown intent name")
	ErrLowConfidence = errors.New("confidence below threshold")
)
