package config

import "errors"

// Configuration validation errors returned by Config.Validate and
// ValidateInput. Callers can match them with errors.Is.
var (
	// ErrNoInput is returned when no posting text, posting URL or list file is given.
	ErrNoInput = errors.New("no input: provide posting text with --text, --file or stdin, a posting --url, or use --list")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidEndpoint is returned when the LLM endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid LLM endpoint: must be an absolute http or https URL")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidCacheTTL is returned when the company cache TTL is not positive.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be positive")

	// ErrInvalidWeight is returned when a weight override is negative.
	// Negative weights would let a warning sign raise the trust score.
	ErrInvalidWeight = errors.New("invalid weight: must be non-negative")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
