package room

import "errors"

var (
	// ErrMalformedBody is returned by Publish when the request declared a
	// JSON content type but the body does not parse. It is the only failure
	// surfaced to publishers; everything else is contained.
	ErrMalformedBody = errors.New("room: malformed broadcast body")
)
