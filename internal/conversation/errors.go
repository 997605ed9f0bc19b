package conversation

import "errors"

// Domain-specific errors for the conversation package.
var (
	ErrEmptyMessage   = errors.New("message text is empty")
	ErrEmptyUserID    = errors.New("user id is empty")
	ErrMessageTooLong = errors.New("message text is too long")
)
