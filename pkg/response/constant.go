package response

import "time"

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong, please try again later"
	InternalServerErrorCode = 500
	BadRequestErrorCode     = 1

	DateTimeFormat = time.RFC3339
)
