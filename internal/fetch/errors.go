package fetch

import "errors"

var (
	// ErrInvalidURL is returned when a URL cannot be fetched over HTTP(S).
	ErrInvalidURL = errors.New("invalid URL")

	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)
