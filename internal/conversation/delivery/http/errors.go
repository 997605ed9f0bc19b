package http

import (
	"context"
	"errors"
	"net/http"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/session"
	"calendar-assistant/pkg/response"
)

var (
	errUserIDRequired  = response.NewHTTPError(http.StatusBadRequest, "user_id is required")
	errTextRequired    = response.NewHTTPError(http.StatusBadRequest, "text is required")
	errTextTooLong     = response.NewHTTPError(http.StatusRequestEntityTooLarge, "text is too long")
	errProcessTimedOut = response.NewHTTPError(http.StatusGatewayTimeout, "message processing timed out")
)

// mapError translates use-case errors into HTTP errors. Unknown errors are
// reported to the caller as nil and answered with a 500.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, conversation.ErrEmptyUserID), errors.Is(err, session.ErrInvalidUserID):
		return errUserIDRequired
	case errors.Is(err, conversation.ErrEmptyMessage):
		return errTextRequired
	case errors.Is(err, conversation.ErrMessageTooLong):
		return errTextTooLong
	case errors.Is(err, context.DeadlineExceeded):
		return errProcessTimedOut
	default:
		return nil
	}
}
