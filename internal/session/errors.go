package session

import "errors"

var (
	ErrInvalidUserID = errors.New("user id is empty")
)
