package async

import "errors"

var (
	// ErrTimeout is returned when waiting on a future exceeds the given timeout.
	ErrTimeout = errors.New("async: await timed out")
)
