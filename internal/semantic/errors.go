package semantic

import "errors"

var (
	// ErrUnexpectedStatus is returned when the model endpoint answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status from model endpoint")

	// ErrEmptyResponse is returned when the model answers without any content.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrNoAdapter is recorded when no model endpoint is configured.
	ErrNoAdapter = errors.New("no language model configured")
)
