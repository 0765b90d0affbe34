package scoring

import "errors"

var (
	// ErrUnknownWeight is returned when a weight table names a finding
	// that the combiner does not know.
	ErrUnknownWeight = errors.New("unknown weight key")

	// ErrNegativeWeight is returned when a weight is below zero.
	// Negative weights would let a finding lower the risk score.
	ErrNegativeWeight = errors.New("weight must be non-negative")
)
