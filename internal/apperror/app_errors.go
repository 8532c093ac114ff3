package apperror

import "errors"

var (
	ErrInvalidCell        = errors.New("invalid cell index")
	ErrMissingCell        = errors.New("cell is required")
	ErrUnknownAction      = errors.New("unknown action")
	ErrTooManyRequests    = errors.New("too many requests")
	ErrSessionNotStarted  = errors.New("session is not started")
	ErrEventFeedQueueFull = errors.New("event feed queue is full")
)
